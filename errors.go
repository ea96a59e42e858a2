package httpkit

import (
	"errors"
	"fmt"
)

// Kind classifies client errors.
type Kind int

const (
	// KindTransport indicates a network, connection, or timeout failure.
	KindTransport Kind = iota
	// KindSerialization indicates a body could not be encoded or decoded.
	KindSerialization
	// KindResponse indicates a non-2xx HTTP response.
	KindResponse
	// KindHeader indicates an invalid header name or value.
	KindHeader
	// KindMiddleware indicates a middleware rejected the request or response.
	KindMiddleware
	// KindConfig indicates invalid client configuration.
	KindConfig
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindSerialization:
		return "serialization"
	case KindResponse:
		return "response"
	case KindHeader:
		return "header"
	case KindMiddleware:
		return "middleware"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a structured client error with classification. Callers match on
// Kind (or use the Is* predicates) to decide whether to retry, fall back,
// or propagate.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// StatusCode is the HTTP status code (KindResponse only, 0 otherwise).
	StatusCode int
	// Body is the response body captured best-effort (KindResponse only).
	Body string
	// Middleware is the name of the failing middleware (KindMiddleware only).
	Middleware string
	// Message describes the error.
	Message string
	// Retryable indicates whether the operation could be retried.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindResponse:
		return fmt.Sprintf("httpkit: response (HTTP %d): %s", e.StatusCode, e.Body)
	case KindMiddleware:
		return fmt.Sprintf("httpkit: middleware %s: %s", e.Middleware, e.Message)
	default:
		return fmt.Sprintf("httpkit: %s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport error wrapping the underlying cause.
func NewTransportError(err error) *Error {
	return &Error{
		Kind:      KindTransport,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewSerializationError creates a serialization error.
func NewSerializationError(msg string, err error) *Error {
	return &Error{
		Kind:    KindSerialization,
		Message: msg,
		Err:     err,
	}
}

// NewResponseError creates an error for a non-2xx response. The body is
// captured best-effort for diagnostics.
func NewResponseError(statusCode int, body string) *Error {
	return &Error{
		Kind:       KindResponse,
		StatusCode: statusCode,
		Body:       body,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  statusCode == 429 || statusCode >= 500,
	}
}

// NewHeaderError creates an error for an invalid header name or value.
func NewHeaderError(msg string) *Error {
	return &Error{
		Kind:    KindHeader,
		Message: msg,
	}
}

// NewMiddlewareError creates an error for a middleware rejection.
func NewMiddlewareError(name, reason string) *Error {
	return &Error{
		Kind:       KindMiddleware,
		Middleware: name,
		Message:    reason,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(msg string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: msg,
	}
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport
}

// IsSerialization checks if an error is a serialization error.
func IsSerialization(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindSerialization
}

// IsResponse checks if an error is a non-2xx response error.
func IsResponse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindResponse
}

// IsHeader checks if an error is a header validation error.
func IsHeader(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindHeader
}

// IsMiddleware checks if an error is a middleware rejection.
func IsMiddleware(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindMiddleware
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConfig
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
