package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const TraceHeader = "X-Trace-ID"

// TokenSource yields the bearer token for the next request. An empty string
// means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// UnauthorizedHandler runs once for every 401 response before the error is
// returned to the caller.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}

type UnauthorizedFunc func(ctx context.Context)

func (f UnauthorizedFunc) HandleUnauthorized(ctx context.Context) { f(ctx) }

// API is the request surface the resource services depend on.
type API interface {
	Do(ctx context.Context, req Request, out interface{}) error
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON encoded. Form wins when both are set.
	Body interface{}
	Form url.Values
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	TokenSource    TokenSource
	OnUnauthorized UnauthorizedHandler
	// Transport defaults to http.DefaultTransport. It is always wrapped with
	// otelhttp so spans follow the globally installed tracer provider.
	Transport http.RoundTripper
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	logger         *slog.Logger
}

func NewClient(config Config, lg *slog.Logger) *Client {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}

	base := config.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	tokens := config.TokenSource
	if tokens == nil {
		tokens = TokenSourceFunc(func() string { return "" })
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(base),
		},
		tokens:         tokens,
		onUnauthorized: config.OnUnauthorized,
		logger:         lg,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Form: form}, out)
}

// Do sends one request and decodes a 2xx body into out. Any other outcome is
// returned as *internal.AppError.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	httpReq, payload, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	traceID := httpReq.Header.Get(TraceHeader)
	start := time.Now()
	c.logger.Debug("api request",
		"traceID", traceID,
		"method", req.Method,
		"path", httpReq.URL.Path,
		"query", httpReq.URL.RawQuery,
		"headers", logger.RedactHeaders(httpReq.Header),
		"body", logger.RedactBody(payload),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("api request failed", "traceID", traceID, "method", req.Method, "path", httpReq.URL.Path, "error", err)
		return internal.NewNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return internal.NewNetworkError(fmt.Errorf("read response: %w", err))
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 500 {
		level = slog.LevelWarn
	}
	c.logger.Log(ctx, level, "api response",
		"traceID", traceID,
		"method", req.Method,
		"path", httpReq.URL.Path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"body", logger.RedactBody(respBody),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := internal.NewFromStatus(resp.StatusCode, ExtractMessage(respBody))
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized.HandleUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return internal.NewInternalError("unexpected response from server", err).
			WithDetails(map[string]interface{}{"path": httpReq.URL.Path, "status": resp.StatusCode})
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, []byte, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		payload     []byte
		contentType = "application/json"
	)
	switch {
	case req.Form != nil:
		payload = []byte(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, nil, internal.NewInternalError("failed to encode request", err)
		}
		payload = encoded
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, nil, internal.NewInternalError("failed to build request", err)
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	traceID := logger.TraceIDFrom(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}
	httpReq.Header.Set(TraceHeader, traceID)

	if token := c.tokens.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, payload, nil
}
