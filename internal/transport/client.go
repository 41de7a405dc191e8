// Package transport implements the low-level HTTP layer: base URL joining,
// JSON encoding, auth headers, retries and debug logging. Response status
// classification is left to the caller.
package transport

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

	"github.com/hashicorp/go-retryablehttp"
)

// Logger is the structured logging interface the transport reports through.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenProvider supplies the bearer token for outgoing requests. A nil
// provider sends unauthenticated requests.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type staticToken string

func (t staticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// StaticToken wraps a fixed token string as a TokenProvider.
func StaticToken(token string) TokenProvider {
	return staticToken(token)
}

// Request describes one HTTP exchange. The Path may already carry a query
// string; Query values are merged onto it.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the raw result of an exchange. A non-2xx status is not an
// error at this layer.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is a thin wrapper around a retrying HTTP client bound to one base
// URL.
type Client struct {
	baseURL   string
	retry     *retryablehttp.Client
	tokens    TokenProvider
	logger    Logger
	debug     bool
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger installs a structured logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDebug logs every request and response through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

// WithTimeout bounds each attempt. Context deadlines still apply on top.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.retry.HTTPClient.Timeout = timeout }
}

// WithRetryConfig enables retries on connection failures, 5xx responses and
// rate limiting. Retries are off unless configured.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// NewClient creates a transport client for the given base URL.
func NewClient(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 0
	retry.Logger = nil
	// Hand the last response back instead of failing once retries run out;
	// the caller owns status classification.
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		retry:     retry,
		tokens:    tokens,
		userAgent: "hubuum-go/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do performs one exchange and reads the full response body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(fullURL, "?") {
			separator = "&"
		}

		fullURL += separator + req.Query.Encode()
	}

	var payload []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		payload = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("obtaining token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   string(payload),
		})
	}

	httpResp, err := c.retry.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, fullURL, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"body":   string(body),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
