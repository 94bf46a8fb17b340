// Package backend provides the gateway to the remote Ardex API.
//
// Every call resolves to a uniform interfaces.Result: transport faults,
// timeouts and non-2xx statuses never surface as Go errors to callers,
// so the flows can render failures inline.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
)

const (
	DefaultTimeout   = 12 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the BackendClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	timeout    time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the default per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new backend gateway for the given base URL
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		timeout:    DefaultTimeout,
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HTTPError represents a non-2xx response from the backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.Status)
	}
	return fmt.Sprintf("HTTP %d - %s", e.Status, body)
}

// resolveURL resolves path against the base URL. Absolute URLs pass
// through; a leading "/" appends to the base; anything else is joined
// with a single separator.
func resolveURL(base, path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}

// Request performs an HTTP call and folds every outcome into a Result.
// The body, when non-nil, is sent as JSON. A JSON response body is
// decoded into Result.Data; any other content type is carried as raw
// text.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts interfaces.RequestOptions) interfaces.Result {
	status, data, contentType, err := c.do(ctx, method, path, body, opts.Headers, opts.Timeout)
	if err != nil {
		return interfaces.Result{OK: false, Err: err}
	}
	if status < 200 || status > 299 {
		return interfaces.Result{OK: false, Err: &HTTPError{Status: status, Body: string(data)}}
	}

	if strings.Contains(contentType, "application/json") {
		var parsed any
		if err := json.Unmarshal(data, &parsed); err == nil {
			return interfaces.Result{OK: true, Data: parsed}
		}
	}
	return interfaces.Result{OK: true, Data: string(data)}
}

// do is the shared transport for Request and the typed endpoint
// wrappers. It returns the status, raw body, and content type; err is
// non-nil only for transport-level failures (including timeout).
func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, timeout time.Duration) (int, []byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, "", fmt.Errorf("rate limit wait: %w", err)
	}

	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, "", fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	reqURL := resolveURL(c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return 0, nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug().Str("method", method).Str("url", path).Msg("Backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, data, resp.Header.Get("Content-Type"), nil
}

// Ensure Client implements BackendClient
var _ interfaces.BackendClient = (*Client)(nil)
