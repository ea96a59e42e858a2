package httpkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client composes a Configuration, a Transport, and a frozen middleware
// pipeline. It holds no per-request mutable state: construct it once and
// share it across goroutines for the life of the process.
type Client struct {
	config    Config
	transport Transport
	pipeline  pipeline
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithMiddleware appends middleware to the pipeline. Registration order is
// execution order for both the pre-send and post-receive passes; the list
// is frozen once New returns.
func WithMiddleware(ms ...Middleware) Option {
	return func(c *Client) {
		c.pipeline.middlewares = append(c.pipeline.middlewares, ms...)
	}
}

// WithTransport replaces the default net/http transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// New creates a client from the given configuration. No network I/O occurs
// here; the transport is parametrized but idle.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewTransport(cfg)
	}
	return c, nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// MiddlewareCount returns the number of registered middlewares.
func (c *Client) MiddlewareCount() int {
	return len(c.pipeline.middlewares)
}

// Close releases idle transport resources.
func (c *Client) Close() error {
	return c.transport.Close()
}

// requestSpec collects the caller's intent before the descriptor is built.
type requestSpec struct {
	method  string
	path    string
	headers map[string]string
	query   url.Values
	body    any
}

// RequestOption configures a single request.
type RequestOption func(*requestSpec)

// WithHeader sets a request header. It is validated for wire-safety before
// the pipeline runs.
func WithHeader(name, value string) RequestOption {
	return func(s *requestSpec) {
		if s.headers == nil {
			s.headers = make(map[string]string)
		}
		s.headers[name] = value
	}
}

// WithQueryParam adds a query parameter to the request URL.
func WithQueryParam(key, value string) RequestOption {
	return func(s *requestSpec) {
		if s.query == nil {
			s.query = url.Values{}
		}
		s.query.Add(key, value)
	}
}

// WithQueryValues adds all the given query parameters to the request URL.
func WithQueryValues(values url.Values) RequestOption {
	return func(s *requestSpec) {
		if s.query == nil {
			s.query = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				s.query.Add(k, v)
			}
		}
	}
}

// Get sends a GET request and returns the raw response. Non-2xx statuses
// are not treated as errors here; use the typed helpers for that.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Execute(ctx, http.MethodGet, path, nil, opts...)
}

// Post sends a POST request with the given body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Execute(ctx, http.MethodPost, path, body, opts...)
}

// Put sends a PUT request with the given body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Execute(ctx, http.MethodPut, path, body, opts...)
}

// Patch sends a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Execute(ctx, http.MethodPatch, path, body, opts...)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Execute(ctx, http.MethodDelete, path, nil, opts...)
}

// Head sends a HEAD request.
func (c *Client) Head(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Execute(ctx, http.MethodHead, path, nil, opts...)
}

// RequestWithHeaders sends a request with additional per-request headers.
func (c *Client) RequestWithHeaders(ctx context.Context, method, path string, headers map[string]string) (*Response, error) {
	spec := requestSpec{method: method, path: path, headers: headers}
	return c.execute(ctx, spec)
}

// RequestWithQuery sends a request with query parameters derived from
// params: a url.Values, a map[string]string, or any JSON-encodable struct.
func (c *Client) RequestWithQuery(ctx context.Context, method, path string, params any) (*Response, error) {
	query, err := coerceQuery(params)
	if err != nil {
		return nil, err
	}
	spec := requestSpec{method: method, path: path, query: query}
	return c.execute(ctx, spec)
}

// Execute builds, decorates, sends, and post-processes a single request.
// This is the engine behind every convenience method.
func (c *Client) Execute(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	spec := requestSpec{method: method, path: path, body: body}
	for _, opt := range opts {
		opt(&spec)
	}
	return c.execute(ctx, spec)
}

// execute runs one execution through its forward-only stages: build the
// descriptor, pre-send pass, transport send, post-receive pass. The first
// failure at any stage aborts the rest.
func (c *Client) execute(ctx context.Context, spec requestSpec) (*Response, error) {
	req, err := c.buildRequest(spec)
	if err != nil {
		return nil, err
	}

	if err := c.pipeline.runRequest(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return resp, err
	}

	// The response is already valid at this point; a post-receive failure
	// is returned together with it so callers can tell a post-processor
	// objection apart from an unanswered request.
	if err := c.pipeline.runResponse(ctx, resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// executeStream is the streaming variant of execute: the response body is
// handed over unread and the caller must close it.
func (c *Client) executeStream(ctx context.Context, spec requestSpec) (*Response, error) {
	req, err := c.buildRequest(spec)
	if err != nil {
		return nil, err
	}

	if err := c.pipeline.runRequest(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.transport.Stream(ctx, req)
	if err != nil {
		return resp, err
	}

	if err := c.pipeline.runResponse(ctx, resp); err != nil {
		_ = resp.Close()
		return resp, err
	}
	return resp, nil
}

// buildRequest assembles the request descriptor: resolved URL, default
// headers first (so middleware and per-request headers can override them),
// then the encoded body.
func (c *Client) buildRequest(spec requestSpec) (*Request, error) {
	target := ResolveURL(c.config.BaseURL, spec.path)
	if len(spec.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + spec.query.Encode()
	}

	body, reader, contentType, forceType, err := encodeBody(spec.body)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:     spec.method,
		URL:        target,
		Header:     make(http.Header),
		Body:       body,
		BodyReader: reader,
	}

	for name, value := range c.config.Headers {
		req.Header.Set(name, value)
	}
	// Structured bodies carry their own content type past config defaults:
	// a form or multipart payload is unparseable under a defaulted
	// application/json label. Per-request headers and middleware can still
	// override it.
	if forceType {
		req.Header.Set("Content-Type", contentType)
	}
	for name, value := range spec.headers {
		if err := validateHeader(name, value); err != nil {
			return nil, err
		}
		req.Header.Set(name, value)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// encodeBody converts a body value into bytes (or a streaming reader) and
// an inferred content type. force is set for body shapes whose encoding
// dictates the content type (form, multipart, JSON); raw strings only
// suggest one.
func encodeBody(body any) (data []byte, reader io.Reader, contentType string, force bool, err error) {
	switch v := body.(type) {
	case nil:
		return nil, nil, "", false, nil
	case io.Reader:
		return nil, v, "", false, nil
	case []byte:
		return v, nil, "", false, nil
	case string:
		return []byte(v), nil, "text/plain", false, nil
	case url.Values:
		return []byte(v.Encode()), nil, "application/x-www-form-urlencoded", true, nil
	case *MultipartBody:
		encoded, boundaryType, encErr := v.encode()
		if encErr != nil {
			return nil, nil, "", false, NewSerializationError(fmt.Sprintf("encode multipart body: %v", encErr), encErr)
		}
		return encoded, nil, boundaryType, true, nil
	default:
		encoded, encErr := json.Marshal(v)
		if encErr != nil {
			return nil, nil, "", false, NewSerializationError(fmt.Sprintf("encode request body: %v", encErr), encErr)
		}
		return encoded, nil, "application/json", true, nil
	}
}

// coerceQuery normalizes the accepted query-parameter shapes.
func coerceQuery(params any) (url.Values, error) {
	switch v := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return v, nil
	case map[string]string:
		values := url.Values{}
		for k, val := range v {
			values.Set(k, val)
		}
		return values, nil
	default:
		return ToQueryParams(v)
	}
}
