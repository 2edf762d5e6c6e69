package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// bearerTransport attaches the current bearer credential to every outgoing
// request, the way the web client's interceptor did.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func NewBearerTransport(next http.RoundTripper, tokens TokenSource) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &bearerTransport{next: next, tokens: tokens}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {

	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			// Clone before mutating; RoundTrippers must not modify the caller's request.
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return t.next.RoundTrip(req)
}

// loggingTransport logs each outgoing request with a correlation ID, so a
// flow spanning several calls can be stitched together from the log stream.
type loggingTransport struct {
	next http.RoundTripper
}

func NewLoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {

	start := time.Now()

	correlationID := req.Header.Get("X-Request-ID")
	if correlationID == "" {
		correlationID = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", correlationID)
	}

	requestLogger := slog.Default().With(
		slog.String("correlation_id", correlationID),
		slog.String("http_method", req.Method),
		slog.String("url", req.URL.String()),
	)

	requestLogger.Debug("Outgoing request")

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		requestLogger.Warn("Request failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))

		return nil, err
	}

	requestLogger.Debug("Request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration))

	return resp, nil
}
