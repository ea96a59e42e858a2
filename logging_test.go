package httpkit

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/taluhq/httpkit/logger"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf, "test")

	m := Logging(log)
	req := &Request{Method: http.MethodGet, URL: "https://api.example.com/x", Header: make(http.Header)}
	if err := m.OnRequest(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := &Response{StatusCode: 200, URL: "https://api.example.com/x", Header: make(http.Header)}
	if err := m.OnResponse(context.Background(), resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "http request") {
		t.Errorf("missing request line in %q", out)
	}
	if !strings.Contains(out, "http response") {
		t.Errorf("missing response line in %q", out)
	}
	if !strings.Contains(out, `"method":"GET"`) {
		t.Errorf("missing method field in %q", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Errorf("missing status field in %q", out)
	}
}

func TestLoggingRequestsOnly(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf, "test")

	m := LoggingRequestsOnly(log)
	req := &Request{Method: http.MethodGet, URL: "https://api.example.com/x", Header: make(http.Header)}
	resp := &Response{StatusCode: 200, URL: "https://api.example.com/x", Header: make(http.Header)}
	m.OnRequest(context.Background(), req)
	m.OnResponse(context.Background(), resp)

	out := buf.String()
	if !strings.Contains(out, "http request") {
		t.Errorf("missing request line in %q", out)
	}
	if strings.Contains(out, "http response") {
		t.Errorf("unexpected response line in %q", out)
	}
}

func TestLoggingNilLoggerDefaults(t *testing.T) {
	m := Logging(nil)
	if m.Name() != "LoggingMiddleware" {
		t.Errorf("Name()=%q", m.Name())
	}
	resp := &Response{StatusCode: 200, URL: "https://api.example.com/x", Header: make(http.Header)}
	if err := m.OnResponse(context.Background(), resp); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
