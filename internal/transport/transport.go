// Package transport performs the single HTTP GET every fetcher in this
// module is built on, and classifies its failures.
//
// The classification is four-way: BadURLError for an input that never made
// it onto the wire, BadStatusError for a non-2xx response (preserving the
// literal body for diagnostics), IOError for a failure while reading the
// body, and InternalError for everything the underlying transport reports
// (dial, DNS, TLS). Exactly one outbound request is issued per call; there
// are no retries, no caching and no pacing.
package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 30 * time.Second

// BadURLError reports a request URL that could not be parsed or is not
// absolute.
type BadURLError struct {
	URL string
	Err error
}

func (e *BadURLError) Error() string {
	return fmt.Sprintf("bad url %q: %v", e.URL, e.Err)
}

func (e *BadURLError) Unwrap() error { return e.Err }

// BadStatusError reports a non-2xx HTTP response. Body holds the server's
// literal response text, which is preserved even on failure so the caller
// can diagnose without re-fetching.
type BadStatusError struct {
	StatusCode int
	Body       string
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// IOError reports a failure while reading the response body.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading response body: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// InternalError reports a transport-level failure: connection refused, DNS
// resolution, TLS handshake, or a cancelled context.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Client issues classified HTTP GETs with a caller-supplied User-Agent.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. The default is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client identifying itself as userAgent. The API requires a
// descriptive User-Agent and may reject requests without one, so an empty
// string is a construction error rather than a silent default.
func New(userAgent string, opts ...Option) (*Client, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("user agent must not be empty")
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get fetches rawurl and returns the response body. It issues exactly one
// outbound GET per call.
func (c *Client) Get(ctx context.Context, rawurl string) ([]byte, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, &BadURLError{URL: rawurl, Err: err}
	}
	if !u.IsAbs() {
		return nil, &BadURLError{URL: rawurl, Err: fmt.Errorf("url is not absolute")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &BadURLError{URL: rawurl, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("issuing request", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &IOError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BadStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug("request completed", "url", u.String(), "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}
