// Package backend provides the assistant gateway over the tax backend's
// HTTP API: the extracted-documents listing, the report producer and the
// chat endpoint.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driven"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AssistantGateway = (*Client)(nil)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the scheme and host of the backend (default: http://localhost:3000).
	BaseURL string

	// DocumentsPath, ReportPath and ChatPath locate the three endpoints.
	DocumentsPath string
	ReportPath    string
	ChatPath      string

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client config from gateway settings.
func ConfigFromSettings(s domain.GatewaySettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		DocumentsPath:     s.DocumentsPath,
		ReportPath:        s.ReportPath,
		ChatPath:          s.ChatPath,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// Client talks to the tax backend. Each call makes exactly one request.
type Client struct {
	mu       sync.RWMutex
	http     *http.Client
	baseURL  string
	paths    [3]string
	throttle *Throttle
}

const (
	pathDocuments = iota
	pathReport
	pathChat
)

// NewClient creates a backend client. Empty fields take the defaults.
func NewClient(cfg Config) *Client {
	c := &Client{}
	c.Reconfigure(cfg)
	return c
}

// Reconfigure replaces the client's endpoints, timeout and throttle.
// Requests already in flight finish with the old configuration.
func (c *Client) Reconfigure(cfg Config) {
	defaults := domain.DefaultAppSettings().Gateway
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.DocumentsPath == "" {
		cfg.DocumentsPath = defaults.DocumentsPath
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = defaults.ReportPath
	}
	if cfg.ChatPath == "" {
		cfg.ChatPath = defaults.ChatPath
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.http = client
	c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	c.paths = [3]string{cfg.DocumentsPath, cfg.ReportPath, cfg.ChatPath}
	c.throttle = NewThrottle(cfg.RequestsPerSecond)
}

// endpoint returns the transport, throttle and URL for the path at index.
func (c *Client) endpoint(index int) (*http.Client, *Throttle, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.http, c.throttle, c.baseURL + c.paths[index]
}

// FetchDocuments lists the extracted documents.
func (c *Client) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	body, err := c.do(ctx, http.MethodGet, pathDocuments, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoad, err)
	}
	docs, err := decodeDocuments(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoad, err)
	}
	return docs, nil
}

// GenerateReport posts extracted data to the report producer.
// nil is sent as an empty object.
func (c *Client) GenerateReport(ctx context.Context, extracted map[string]any) (*domain.AIReport, error) {
	if extracted == nil {
		extracted = map[string]any{}
	}
	body, err := c.do(ctx, http.MethodPost, pathReport, extracted)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	report, err := decodeReport(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return report, nil
}

// Ask posts a question with the report and document data it concerns.
func (c *Client) Ask(ctx context.Context, req domain.AskRequest) (string, error) {
	userData := req.UserData
	if userData == nil {
		userData = map[string]any{}
	}
	payload := chatRequest{
		Message:  req.Message,
		TaxData:  encodeReport(req.Report),
		UserData: userData,
	}

	body, err := c.do(ctx, http.MethodPost, pathChat, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAsk, err)
	}
	answer, err := decodeAnswer(body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAsk, err)
	}
	return answer, nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// do sends one request and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, method string, endpoint int, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpClient, throttle, url := c.endpoint(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := throttle.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle: %w", err)
	}

	logger.Debug("%s %s (request %s)", method, url, requestID)
	start := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logger.Debug("%s %s -> %d in %s (request %s)", method, url, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			URL:    url,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(truncate(string(body), 200)),
		}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
