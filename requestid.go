package httpkit

import (
	"context"

	"github.com/google/uuid"
)

const defaultRequestIDHeader = "X-Request-Id"

// RequestIDMiddleware injects a unique request ID header into every request
// that does not already carry one. Responses are ignored.
type RequestIDMiddleware struct {
	header string
}

// RequestID creates request-ID middleware using the X-Request-Id header.
func RequestID() *RequestIDMiddleware {
	return &RequestIDMiddleware{header: defaultRequestIDHeader}
}

// RequestIDHeader creates request-ID middleware with a custom header name.
func RequestIDHeader(header string) *RequestIDMiddleware {
	return &RequestIDMiddleware{header: header}
}

// OnRequest sets a fresh UUID unless the header is already present.
func (m *RequestIDMiddleware) OnRequest(_ context.Context, req *Request) error {
	if req.Header.Get(m.header) == "" {
		req.Header.Set(m.header, uuid.New().String())
	}
	return nil
}

// OnResponse is a no-op.
func (m *RequestIDMiddleware) OnResponse(_ context.Context, _ *Response) error {
	return nil
}

// Name returns the middleware identifier.
func (m *RequestIDMiddleware) Name() string {
	return "RequestIDMiddleware"
}
