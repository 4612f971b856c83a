// Package transport provides the authenticated, rate limited HTTP client
// shared by every remote source.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/logging"
)

// AcceptJSON is the media type sent by the JSON helpers.
const AcceptJSON = "application/json"

// Client provides HTTP client functionality with authentication.
type Client struct {
	name      string
	http      *http.Client
	auth      Authenticator
	token     string
	userAgent string
	limiter   *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithName sets the provider name used in errors and log lines.
func WithName(name string) Option {
	return func(c *Client) {
		c.name = name
	}
}

// WithAuth applies auth with token to every request. An empty token
// disables authentication.
func WithAuth(auth Authenticator, token string) Option {
	return func(c *Client) {
		c.auth = auth
		c.token = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit limits the client to rps requests per second. A
// non-positive rate disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a new transport client.
func New(opts ...Option) *Client {
	c := &Client{
		name:      "http",
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:      &NoAuth{},
		userAgent: constants.DefaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(constants.DefaultRequestsPerSecond), constants.BurstSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name of the client.
func (c *Client) Name() string {
	return c.name
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for rate limiter: %w", errors.ErrCanceled, err)
		}
	}

	if c.token != "" {
		c.auth.Apply(req, c.token)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Content-Type") == "" && (req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch) {
		req.Header.Set("Content-Type", AcceptJSON)
	}

	logging.FromContext(ctx).Trace().
		Str("provider", c.name).
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Msg("Sending request")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, ctx.Err())
		}
		return nil, errors.WrapAPI(c.name, 0, err)
	}
	return resp, nil
}

// Get performs a GET request without an Accept header.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.GetAccept(ctx, url, "")
}

// GetAccept performs a GET request asking for the given media types.
func (c *Client) GetAccept(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewValidationError("url", url, err.Error())
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.Do(ctx, req)
}

// PostJSON encodes body as JSON and POSTs it to url.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewValidationError("url", url, err.Error())
	}
	req.Header.Set("Accept", AcceptJSON)
	return c.Do(ctx, req)
}

// GetJSON performs a GET request and decodes the JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.GetAccept(ctx, url, AcceptJSON)
	if err != nil {
		return err
	}
	return c.DecodeResponse(ctx, resp, target)
}

// HTTPClient returns an *http.Client that sends every request through c, so
// third-party API clients get the same rate limiting, auth and error
// mapping. Non-2xx responses are returned as errors by the round trip.
func (c *Client) HTTPClient() *http.Client {
	return &http.Client{Transport: &roundTripper{client: c}}
}

type roundTripper struct {
	client *Client
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", AcceptJSON)
	}

	resp, err := rt.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, err := rt.client.ReadBody(ctx, resp)
		return nil, err
	}
	resp.Body = limitedBody{Reader: io.LimitReader(resp.Body, constants.MaxResponseBytes), Closer: resp.Body}
	return resp, nil
}

// ReadBody checks the response status and returns the body, bounded by
// constants.MaxResponseBytes. The body is always closed.
func (c *Client) ReadBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("provider", c.name).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	if len(body) > constants.MaxResponseBytes {
		return nil, errors.NewAPIError(c.name, resp.StatusCode,
			fmt.Sprintf("response body exceeds %d bytes", constants.MaxResponseBytes))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.NewAuthenticationError(c.name, method(c.auth),
			fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(body)), nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		apiErr := errors.NewAPIError(c.name, resp.StatusCode, truncate(body))
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.Redacted()
		}
		return nil, apiErr
	}

	return body, nil
}

// DecodeResponse decodes a JSON response into the target structure.
func (c *Client) DecodeResponse(ctx context.Context, resp *http.Response, target any) error {
	body, err := c.ReadBody(ctx, resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", c.name+" response", err)
	}
	return nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
