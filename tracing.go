package httpkit

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware propagates the caller's trace context onto outgoing
// requests and records the response status as a span event. It is stateless:
// all trace state travels in the context, so the same middleware value is
// safe across concurrent executions.
type TracingMiddleware struct {
	propagator propagation.TextMapPropagator
}

// Tracing creates tracing middleware using the globally registered
// propagator.
func Tracing() *TracingMiddleware {
	return &TracingMiddleware{propagator: otel.GetTextMapPropagator()}
}

// TracingWithPropagator creates tracing middleware with an explicit
// propagator.
func TracingWithPropagator(p propagation.TextMapPropagator) *TracingMiddleware {
	return &TracingMiddleware{propagator: p}
}

// OnRequest injects trace propagation headers from the context.
func (m *TracingMiddleware) OnRequest(ctx context.Context, req *Request) error {
	m.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	return nil
}

// OnResponse records the response status on the active span, if any.
func (m *TracingMiddleware) OnResponse(ctx context.Context, resp *Response) error {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("http.response", trace.WithAttributes(
			attribute.Int("http.status_code", resp.StatusCode),
			attribute.String("url.full", resp.URL),
		))
	}
	return nil
}

// Name returns the middleware identifier.
func (m *TracingMiddleware) Name() string {
	return "TracingMiddleware"
}
