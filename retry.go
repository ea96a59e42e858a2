package httpkit

import (
	"context"
	"time"
)

// RetryMiddleware holds retry configuration. Both hooks are no-ops: a
// single pipeline pass cannot re-drive the transport, so retry
// orchestration would have to live in the client's execution loop, which
// does not consult this configuration. The type exists so callers can
// declare intent alongside their other middleware and read the settings
// back for their own retry loops.
type RetryMiddleware struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	MaxAttempts int
	// Delay is the pause between attempts.
	Delay time.Duration
}

// Retry creates a retry configuration holder with a 1s delay.
func Retry(maxAttempts int) *RetryMiddleware {
	return &RetryMiddleware{MaxAttempts: maxAttempts, Delay: time.Second}
}

// WithDelay sets the delay between attempts.
func (m *RetryMiddleware) WithDelay(d time.Duration) *RetryMiddleware {
	m.Delay = d
	return m
}

// OnRequest is a no-op.
func (m *RetryMiddleware) OnRequest(_ context.Context, _ *Request) error {
	return nil
}

// OnResponse is a no-op.
func (m *RetryMiddleware) OnResponse(_ context.Context, _ *Response) error {
	return nil
}

// Name returns the middleware identifier.
func (m *RetryMiddleware) Name() string {
	return "RetryMiddleware"
}
