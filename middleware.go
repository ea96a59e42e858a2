package httpkit

import "context"

// Middleware observes and mutates a request before it is sent and a
// response after it is received. Implementations must be safe for
// concurrent use: the client invokes the same middleware value from
// arbitrarily many goroutines and grants no exclusivity, so any internal
// mutable state must be self-synchronized.
type Middleware interface {
	// OnRequest may inspect and mutate the request headers and body in
	// place. Returning an error aborts the execution before the transport
	// is invoked.
	OnRequest(ctx context.Context, req *Request) error

	// OnResponse may inspect and mutate the response headers. The status
	// and body have already been received and must not be altered.
	OnResponse(ctx context.Context, resp *Response) error

	// Name is a stable identifier used in diagnostics and error wrapping.
	Name() string
}

// pipeline is the frozen, ordered middleware chain. Registration order is
// the sole determinant of execution order, and the post-receive pass runs
// in the same order as the pre-send pass (not reversed).
type pipeline struct {
	middlewares []Middleware
}

// runRequest executes the pre-send pass, stopping at the first failure.
// The returned error names the failing middleware.
func (p *pipeline) runRequest(ctx context.Context, req *Request) error {
	for _, m := range p.middlewares {
		if err := m.OnRequest(ctx, req); err != nil {
			return wrapMiddlewareError(m.Name(), err)
		}
	}
	return nil
}

// runResponse executes the post-receive pass, stopping at the first failure.
func (p *pipeline) runResponse(ctx context.Context, resp *Response) error {
	for _, m := range p.middlewares {
		if err := m.OnResponse(ctx, resp); err != nil {
			return wrapMiddlewareError(m.Name(), err)
		}
	}
	return nil
}

// wrapMiddlewareError attaches the failing middleware's name unless the
// middleware already produced a named middleware error. The caller's error
// value is never mutated; middleware may return a shared sentinel.
func wrapMiddlewareError(name string, err error) error {
	if e, ok := err.(*Error); ok && e.Kind == KindMiddleware {
		if e.Middleware != "" {
			return e
		}
		named := *e
		named.Middleware = name
		return &named
	}
	we := NewMiddlewareError(name, err.Error())
	we.Err = err
	return we
}
