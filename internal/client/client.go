// Package client talks to the taskmate HTTP API.
//
// Methods never return transport errors. Failures are logged and turned
// into a benign value (an empty list, false, the default category set) so
// callers can keep rendering.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rezkam/taskmate/internal/api"
)

// Default client settings.
const (
	DefaultBaseURL     = "http://localhost:8081"
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 8
)

// Config configures a Client. Zero values take the defaults above.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Concurrency bounds the number of in-flight requests of bulk operations.
	Concurrency int
	// HTTPClient replaces the instrumented default client, for tests.
	HTTPClient *http.Client
}

// Client is a taskmate API client. It is safe for concurrent use.
type Client struct {
	base        string
	http        *http.Client
	concurrency int
}

// New creates a client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		base:        strings.TrimRight(cfg.BaseURL, "/"),
		http:        hc,
		concurrency: cfg.Concurrency,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.base
}

// statusError is a non-2xx response.
type statusError struct {
	Status  int
	Code    string
	Message string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s: %s", e.Status, e.Code, e.Message)
}

// do sends a request and decodes a 2xx JSON response into out when out is
// non-nil. Error bodies in the API error format are surfaced in the error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &statusError{Status: resp.StatusCode}
		var apiErr api.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil {
			serr.Code = apiErr.Error.Code
			serr.Message = apiErr.Error.Message
		}
		return fmt.Errorf("%s %s: %w", method, path, serr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}
