// Package httpx builds the outbound HTTP plumbing shared by API clients:
// request-ID stamping, bearer auth, access logging and otel instrumentation.
package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout matches the backend contract's client-side transport timeout.
const DefaultTimeout = 10 * time.Second

// ClientConfig controls the transport chain of NewClient.
type ClientConfig struct {
	Timeout time.Duration
	// TokenSource returns the current bearer token; called per request so a
	// refreshed token takes effect without rebuilding the client. Nil or an
	// empty result leaves the request unauthenticated.
	TokenSource func() string
	Logger      *slog.Logger
	// Tracing wraps the transport with otelhttp when true.
	Tracing bool
	// Base is the innermost transport; http.DefaultTransport when nil.
	Base http.RoundTripper
}

// NewClient returns an *http.Client with the transport chain
// request-id -> auth -> logging -> (otel) -> base.
func NewClient(cfg ClientConfig) *http.Client {
	rt := cfg.Base
	if rt == nil {
		rt = http.DefaultTransport
	}
	if cfg.Tracing {
		rt = otelhttp.NewTransport(rt)
	}
	if cfg.Logger != nil {
		rt = &loggingTransport{next: rt, logger: cfg.Logger}
	}
	if cfg.TokenSource != nil {
		rt = &authTransport{next: rt, tokenSource: cfg.TokenSource}
	}
	rt = &requestIDTransport{next: rt}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: rt,
		Timeout:   timeout,
	}
}

type authTransport struct {
	next        http.RoundTripper
	tokenSource func() string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.tokenSource(); tok != "" && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.next.RoundTrip(req)
}
