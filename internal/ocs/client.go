package ocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/metrics"
)

const defaultHTTPTimeout = 30 * time.Second

// ClientConfig configures the OCS provisioning API client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client. Tests inject a fake
	// transport here.
	HTTPClient *http.Client
}

// Client is a thin HTTP wrapper around the OCS provisioning REST API.
// It is stateless per call and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// APIError is the single failure shape for downstream calls. Upstream
// errors keep their status code; transport failures map to 503 and any
// other local failure to 500.
type APIError struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OCS API Error %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a new OCS provisioning API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("ocs base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// Request performs one call against the OCS API. When transactionID is
// empty a fresh UUID is generated; either way the id is attached as the
// X-Transaction-ID header. A 204 response yields a nil payload; any other
// 2xx/3xx yields the raw JSON body.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any, transactionID string) (json.RawMessage, error) {
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	logEvent := log.Debug().
		Str("method", method).
		Str("path", path).
		Str("transactionId", transactionID)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.internalError(method, path, transactionID, fmt.Errorf("marshal request body: %w", err))
		}
		reader = bytes.NewReader(payload)
		logEvent = logEvent.RawJSON("body", payload)
	}
	logEvent.Msg("ocs request")

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, c.internalError(method, path, transactionID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-Transaction-ID", transactionID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest(method, "error", time.Since(start))
		apiErr := &APIError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    fmt.Sprintf("Service Unavailable: %s", err),
		}
		log.Error().Err(err).
			Str("method", method).
			Str("path", path).
			Str("transactionId", transactionID).
			Msg("network error accessing ocs api")
		return nil, apiErr
	}
	defer resp.Body.Close()
	metrics.ObserveUpstreamRequest(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.internalError(method, path, transactionID, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode >= 400 {
		apiErr := parseErrorBody(resp.StatusCode, raw)
		log.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("transactionId", transactionID).
			Str("message", apiErr.Message).
			Msg("ocs api error")
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		log.Debug().
			Str("method", method).
			Str("path", path).
			Str("transactionId", transactionID).
			Msg("ocs response: 204 no content")
		return nil, nil
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Str("method", method).
		Str("path", path).
		Str("transactionId", transactionID).
		RawJSON("body", raw).
		Msg("ocs response")
	return json.RawMessage(raw), nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, transactionID string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, query, nil, transactionID)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, transactionID string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, path, nil, body, transactionID)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, transactionID string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, path, nil, body, transactionID)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, transactionID string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPatch, path, nil, body, transactionID)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, transactionID string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil, transactionID)
}

// Close releases idle HTTP transport connections held by the client.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil || c.httpClient.Transport == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(interface{ CloseIdleConnections() }); ok {
		transport.CloseIdleConnections()
	}
}

func (c *Client) internalError(method, path, transactionID string, err error) *APIError {
	log.Error().Err(err).
		Str("method", method).
		Str("path", path).
		Str("transactionId", transactionID).
		Msg("unexpected ocs client error")
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Internal Client Error: %s", err),
	}
}

// parseErrorBody prefers the JSON "message" field, then the raw body text,
// then the HTTP status text.
func parseErrorBody(statusCode int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var errBody struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Message != "" {
		apiErr.Message = errBody.Message
		apiErr.Details = errBody.Details
		return apiErr
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
		return apiErr
	}

	apiErr.Message = http.StatusText(statusCode)
	return apiErr
}
