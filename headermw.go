package httpkit

import (
	"context"
	"fmt"

	"golang.org/x/net/http/httpguts"
)

// HeaderMiddleware inserts a fixed set of headers into every request,
// overwriting existing values. Responses are ignored.
type HeaderMiddleware struct {
	headers map[string]string
}

// Headers creates an empty header middleware. Populate it with WithHeader
// before registering it on a client; the map is not safe to grow afterwards.
func Headers() *HeaderMiddleware {
	return &HeaderMiddleware{headers: make(map[string]string)}
}

// WithHeader adds a header entry and returns the middleware for chaining.
func (m *HeaderMiddleware) WithHeader(name, value string) *HeaderMiddleware {
	m.headers[name] = value
	return m
}

// OnRequest writes all configured headers into the request.
func (m *HeaderMiddleware) OnRequest(_ context.Context, req *Request) error {
	for name, value := range m.headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return NewMiddlewareError(m.Name(), fmt.Sprintf("invalid header name: %s", name))
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return NewMiddlewareError(m.Name(), fmt.Sprintf("invalid header value: %s", value))
		}
		req.Header.Set(name, value)
	}
	return nil
}

// OnResponse is a no-op.
func (m *HeaderMiddleware) OnResponse(_ context.Context, _ *Response) error {
	return nil
}

// Name returns the middleware identifier.
func (m *HeaderMiddleware) Name() string {
	return "HeaderMiddleware"
}
