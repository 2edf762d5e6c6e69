package api

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

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/config"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/errors"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer credential attached to every outgoing
// request. An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// envelope is the backend's uniform response shape. On failure, data may be a
// field-keyed error map instead of a payload.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the storefront backend. All business state lives on the
// server; this type only moves JSON back and forth.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// onUnauthorized fires once per 401 response so the session layer can
	// clear its stored credential, mirroring a forced sign-out redirect.
	onUnauthorized func()
}

type Option func(*Client)

func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(cfg *config.Backend, tokens TokenSource, opts ...Option) *Client {

	// Innermost first: otel tracing, then metrics, then logging, then the
	// bearer header just before the wire.
	var transport http.RoundTripper = otelhttp.NewTransport(http.DefaultTransport)
	transport = metrics.NewTransport(transport)
	transport = NewLoggingTransport(transport)
	transport = NewBearerTransport(transport, tokens)

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured backend root, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.BadRequestError("failed to encode request body").WithError(err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.BadRequestError("failed to build request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("request failed").WithError(err)
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NetworkError("failed to read response body").WithError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}

		return unauthorizedFromBody(raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromBody(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.ServerError("unexpected response from server").WithError(err)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.ServerError("failed to decode response data").WithError(err)
	}

	return nil
}

func unauthorizedFromBody(raw []byte) *errors.AppError {

	message := "Phiên đăng nhập đã hết hạn"

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		message = env.Message
	}

	return errors.UnauthorizedError(message)
}

// errorFromBody maps a non-2xx response onto the client error taxonomy. A 4xx
// whose data is an object of strings carries per-field validation messages.
func errorFromBody(statusCode int, raw []byte) *errors.AppError {

	var env envelope

	if err := json.Unmarshal(raw, &env); err != nil {
		appErr := errors.ServerError(fmt.Sprintf("server returned status %d", statusCode))
		appErr.StatusCode = statusCode

		return appErr
	}

	message := env.Message
	if message == "" {
		message = fmt.Sprintf("server returned status %d", statusCode)
	}

	var appErr *errors.AppError

	switch {
	case statusCode == http.StatusNotFound:
		appErr = errors.NotFoundError(message)
	case statusCode == http.StatusForbidden:
		appErr = errors.ForbiddenError(message)
	case statusCode >= 400 && statusCode < 500:
		appErr = errors.BadRequestError(message)
		appErr.StatusCode = statusCode

		var fields map[string]string
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &fields) == nil && len(fields) > 0 {
			appErr.Code = errors.ErrCodeValidation
			appErr.WithFieldErrors(fields)
		}
	default:
		appErr = errors.ServerError(message)
		appErr.StatusCode = statusCode
	}

	return appErr
}

// doWithTimeout is a convenience for one-off calls that should not inherit the
// client default (e.g. quick health probes).
func (c *Client) doWithTimeout(ctx context.Context, timeout time.Duration, method, path string, out any) error {

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.do(ctx, method, path, nil, nil, out)
}
