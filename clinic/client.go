// Package clinic is the typed client for the clinic backend's JSON-over-HTTPS
// contract. The backend owns all business state; every call here is a
// read-through fetch or a mutation whose outcome the backend decides.
package clinic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/md-rashed-zaman/clinicbook/libs/config"
	"github.com/md-rashed-zaman/clinicbook/libs/httpx"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

type options struct {
	timeout time.Duration
	token   string
	logger  *slog.Logger
	tracing bool
	base    http.RoundTripper
}

type Option func(*options)

// WithTimeout overrides the default 10s transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithAccessToken seeds the bearer token, e.g. from a stored session.
func WithAccessToken(token string) Option {
	return func(o *options) { o.token = token }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracing enables otel instrumentation of the transport.
func WithTracing(enabled bool) Option {
	return func(o *options) { o.tracing = enabled }
}

// WithTransport replaces the innermost transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("clinic: base URL is required")
	}

	o := options{
		timeout: httpx.DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		baseURL: baseURL,
		logger:  o.logger,
		token:   o.token,
	}
	c.httpc = httpx.NewClient(httpx.ClientConfig{
		Timeout:     o.timeout,
		TokenSource: c.accessToken,
		Logger:      o.logger,
		Tracing:     o.tracing,
		Base:        o.base,
	})
	return c, nil
}

// NewFromEnv builds a client from CLINIC_API_BASE_URL, CLINIC_API_TIMEOUT and
// CLINIC_ACCESS_TOKEN.
func NewFromEnv(opts ...Option) (*Client, error) {
	baseURL, err := config.BaseURL("CLINIC_API_BASE_URL")
	if err != nil {
		return nil, err
	}
	timeout, err := config.Duration("CLINIC_API_TIMEOUT", httpx.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	all := append([]Option{
		WithTimeout(timeout),
		WithAccessToken(config.String("CLINIC_ACCESS_TOKEN", "")),
	}, opts...)
	return New(baseURL, all...)
}

// SetAccessToken replaces the bearer token used for subsequent calls.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any, header http.Header) error {
	return c.do(ctx, http.MethodPost, path, body, out, header)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("clinic: encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("clinic: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("clinic: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("clinic: decode %s %s: %w", method, path, err)
	}
	return nil
}
