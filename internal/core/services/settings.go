package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driven"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBaseURL           = "gateway.base_url"
	KeyDocumentsPath     = "gateway.documents_path"
	KeyReportPath        = "gateway.report_path"
	KeyChatPath          = "gateway.chat_path"
	KeyTimeoutSeconds    = "gateway.timeout_seconds"
	KeyRequestsPerSecond = "gateway.requests_per_second"
	KeyLogFile           = "log.file"
)

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	KeyBaseURL,
	KeyDocumentsPath,
	KeyReportPath,
	KeyChatPath,
	KeyTimeoutSeconds,
	KeyRequestsPerSecond,
	KeyLogFile,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Gateway: domain.GatewaySettings{
			BaseURL:           s.getString(KeyBaseURL, defaults.Gateway.BaseURL),
			DocumentsPath:     s.getString(KeyDocumentsPath, defaults.Gateway.DocumentsPath),
			ReportPath:        s.getString(KeyReportPath, defaults.Gateway.ReportPath),
			ChatPath:          s.getString(KeyChatPath, defaults.Gateway.ChatPath),
			Timeout:           time.Duration(s.configStore.GetInt(KeyTimeoutSeconds)) * time.Second,
			RequestsPerSecond: s.configStore.GetFloat(KeyRequestsPerSecond),
		},
		Log: domain.LogSettings{
			File: s.configStore.GetString(KeyLogFile),
		},
	}

	if err := settings.Gateway.Validate(); err != nil {
		return nil, fmt.Errorf("gateway settings: %w", err)
	}
	return settings, nil
}

// Set validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeyBaseURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL", domain.ErrInvalidInput, key)
		}
		stored = strings.TrimRight(value, "/")
	case KeyDocumentsPath, KeyReportPath, KeyChatPath:
		if !strings.HasPrefix(value, "/") {
			return fmt.Errorf("%w: %s must start with /", domain.ErrInvalidInput, key)
		}
		stored = value
	case KeyTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case KeyLogFile:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getString returns a config value or the default if unset.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}
