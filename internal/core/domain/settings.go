package domain

import (
	"net/url"
	"strings"
	"time"
)

// Default gateway endpoints, matching the backend's route layout.
const (
	DefaultBaseURL       = "http://localhost:3000"
	DefaultDocumentsPath = "/api/extractedData"
	DefaultReportPath    = "/api/aiReport"
	DefaultChatPath      = "/api/chat"
)

// GatewaySettings locates the three remote contracts.
type GatewaySettings struct {
	// BaseURL is the scheme and host of the backend.
	BaseURL string

	// DocumentsPath serves GET {data: [...documents]}.
	DocumentsPath string

	// ReportPath accepts POST extracted data and returns a report.
	ReportPath string

	// ChatPath accepts POST questions and returns {answer}.
	ChatPath string

	// Timeout bounds each request. Zero leaves the transport default.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
}

// Validate checks the settings can address a backend.
func (g GatewaySettings) Validate() error {
	if strings.TrimSpace(g.BaseURL) == "" {
		return ErrInvalidInput
	}
	u, err := url.Parse(g.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidInput
	}
	if g.Timeout < 0 || g.RequestsPerSecond < 0 {
		return ErrInvalidInput
	}
	return nil
}

// LogSettings configures where logs are written.
type LogSettings struct {
	// File is the rotating log file path. Empty logs to stderr.
	File string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Gateway holds the backend endpoints.
	Gateway GatewaySettings

	// Log holds logging settings.
	Log LogSettings
}

// DefaultAppSettings returns settings pointing at a local backend.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Gateway: GatewaySettings{
			BaseURL:       DefaultBaseURL,
			DocumentsPath: DefaultDocumentsPath,
			ReportPath:    DefaultReportPath,
			ChatPath:      DefaultChatPath,
		},
	}
}
