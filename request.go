package httpkit

import (
	"io"
	"net/http"
)

// Request is the in-flight description of an outgoing request. It is built
// by the client for a single execution, mutated in place by the middleware
// pipeline, and handed to the transport. It is never shared across calls.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, HEAD).
	Method string
	// URL is the fully resolved absolute URL, query string included.
	URL string
	// Header is the mutable header collection. Keys are case-insensitive
	// and writes are last-write-wins (http.Header semantics).
	Header http.Header
	// Body is the materialized request body, nil when there is none.
	Body []byte
	// BodyReader streams the body instead of Body when set (uploads too
	// large to buffer). Middleware cannot inspect a streamed body.
	BodyReader io.Reader
}

// Response is the in-flight description of a received response. The
// middleware pipeline may inspect and mutate headers but not the status or
// body content.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// URL is the final request URL (after any redirects).
	URL string
	// Header is the response header collection.
	Header http.Header
	// Body is the materialized response body. Nil when the response is
	// streamed (see Stream) or the body could not be read.
	Body []byte
	// Stream is the lazily-materialized body for streaming executions.
	// The caller owns it and must close it.
	Stream io.ReadCloser
}

// IsSuccess returns true for 2xx status codes.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true for 4xx and 5xx status codes.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Close releases the streamed body, if any.
func (r *Response) Close() error {
	if r.Stream != nil {
		return r.Stream.Close()
	}
	return nil
}

// bodyText returns the body for diagnostics. A nil body (unreadable or
// never materialized) yields a placeholder rather than an empty string.
func (r *Response) bodyText() string {
	if r.Body == nil {
		return "could not read error body"
	}
	return string(r.Body)
}
