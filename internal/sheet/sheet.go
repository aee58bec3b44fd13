// Package sheet implements the client for the remote spreadsheet-backed
// action endpoint. All business data in the system is persisted through this
// single endpoint; its internals are a black box that accepts an action name
// and returns a JSON envelope.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
)

// Result is the canonical response envelope. The endpoint historically also
// emitted {status:"success"} shapes; those are not supported here.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *ErrorBody     `json:"error,omitempty"`
	// Mock marks results synthesized in demo mode without a network call.
	Mock bool `json:"mock,omitempty"`
}

// ErrorBody carries the server-provided failure message.
type ErrorBody struct {
	Message string `json:"message"`
}

// Gateway is the call surface every business service depends on. Call sends
// a mutating request, Query a read-only one. Both attach the session token
// found in ctx (possibly empty) and never mutate it.
type Gateway interface {
	Call(ctx context.Context, action string, data map[string]any) (*Result, error)
	Query(ctx context.Context, action string, params map[string]string) (*Result, error)
}

// Client talks to the configured endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a Client for the given endpoint URL. An empty endpoint is
// allowed; every call then fails fast with ErrNotConfigured.
func NewClient(endpoint string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient, log: log}
}

// Configured reports whether an endpoint URL is set.
func (c *Client) Configured() bool { return c.endpoint != "" }

// callRequest is the wire shape of a mutating request.
type callRequest struct {
	Action string         `json:"action"`
	Token  string         `json:"token"`
	Data   map[string]any `json:"data"`
}

// Call sends a mutating request: POST {action, token, data} with a text/plain
// content type, which keeps the endpoint's CORS handling preflight-free.
func (c *Client) Call(ctx context.Context, action string, data map[string]any) (*Result, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}
	if data == nil {
		data = map[string]any{}
	}

	body, err := json.Marshal(callRequest{
		Action: action,
		Token:  TokenFromContext(ctx),
		Data:   data,
	})
	if err != nil {
		return nil, &TransportError{Action: action, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Action: action, Err: err}
	}
	req.Header.Set("Content-Type", "text/plain")

	return c.do(req, action)
}

// Query sends a read-only request: GET with action, token, and any extra
// string parameters serialized into the query string.
func (c *Client) Query(ctx context.Context, action string, params map[string]string) (*Result, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &TransportError{Action: action, Err: err}
	}
	q := u.Query()
	q.Set("action", action)
	q.Set("token", TokenFromContext(ctx))
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Action: action, Err: err}
	}

	return c.do(req, action)
}

func (c *Client) do(req *http.Request, action string) (*Result, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(action, "transport_error", start)
		return nil, &TransportError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(action, "transport_error", start)
		return nil, &TransportError{Action: action, Err: err}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		c.observe(action, "transport_error", start)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &TransportError{Action: action, Err: fmt.Errorf("status %d with undecodable body", resp.StatusCode)}
		}
		return nil, &TransportError{Action: action, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	if !result.Success {
		msg := genericErrMsg
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		c.observe(action, "app_error", start)
		c.log.Warn().Str("action", action).Str("message", msg).Msg("sheet call rejected")
		return nil, &AppError{Action: action, Message: msg}
	}

	c.observe(action, "success", start)
	return &result, nil
}

func (c *Client) observe(action, outcome string, start time.Time) {
	metrics.SheetCallsTotal.WithLabelValues(action, outcome).Inc()
	metrics.SheetCallDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}
