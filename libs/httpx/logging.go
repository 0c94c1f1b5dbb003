package httpx

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs one line per outbound request in the same shape the
// backend's access logs use, so traces line up across both sides.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	attrs := []any{
		"request_id", req.Header.Get(RequestIDHeader),
		"method", req.Method,
		"path", req.URL.Path,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		t.logger.Warn("backend request failed", append(attrs, "err", err)...)
		return resp, err
	}
	t.logger.Info("backend request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
