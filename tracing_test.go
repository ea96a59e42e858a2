package httpkit

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func testSpanContext() trace.SpanContext {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
}

func TestTracingInjectsTraceparent(t *testing.T) {
	ctx := trace.ContextWithSpanContext(context.Background(), testSpanContext())
	req := &Request{Method: http.MethodGet, URL: "https://api.example.com/x", Header: make(http.Header)}

	m := TracingWithPropagator(propagation.TraceContext{})
	if err := m.OnRequest(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tp := req.Header.Get("Traceparent")
	if tp == "" {
		t.Fatal("expected traceparent header")
	}
	if !strings.Contains(tp, "4bf92f3577b34da6a3ce929d0e0e4736") {
		t.Errorf("traceparent=%q missing trace id", tp)
	}
}

func TestTracingNoSpanContext(t *testing.T) {
	req := &Request{Method: http.MethodGet, URL: "https://api.example.com/x", Header: make(http.Header)}

	m := TracingWithPropagator(propagation.TraceContext{})
	if err := m.OnRequest(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("Traceparent"); got != "" {
		t.Errorf("traceparent=%q, want unset without an active span", got)
	}
}

func TestTracingResponseNeverFails(t *testing.T) {
	m := TracingWithPropagator(propagation.TraceContext{})
	resp := &Response{StatusCode: 500, URL: "https://api.example.com/x", Header: make(http.Header)}
	if err := m.OnResponse(context.Background(), resp); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
