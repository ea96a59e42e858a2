package httpkit

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDownloadBytes(t *testing.T) {
	payload := strings.Repeat("chunk-", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	defer c.Close()

	data, err := c.DownloadBytes(context.Background(), "/file")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != payload {
		t.Errorf("got %d bytes, want %d", len(data), len(payload))
	}
}

func TestDownloadBytesNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte("forbidden"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	defer c.Close()

	_, err := c.DownloadBytes(context.Background(), "/file")
	if !IsResponse(err) {
		t.Fatalf("expected response error, got %v", err)
	}
	e := err.(*Error)
	if e.StatusCode != 403 || e.Body != "forbidden" {
		t.Errorf("got status=%d body=%q", e.StatusCode, e.Body)
	}
}

func TestDownloadToWriter(t *testing.T) {
	payload := strings.Repeat("x", 256*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	defer c.Close()

	var buf bytes.Buffer
	n, err := c.DownloadToWriter(context.Background(), "/big", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("copied %d bytes, want %d", n, len(payload))
	}
	if buf.String() != payload {
		t.Error("payload mismatch")
	}
}

func TestDownloadToWriterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	defer c.Close()

	var buf bytes.Buffer
	n, err := c.DownloadToWriter(context.Background(), "/big", &buf)
	if !IsResponse(err) {
		t.Fatalf("expected response error, got %v", err)
	}
	if n != 0 {
		t.Errorf("copied %d bytes, want 0", n)
	}
	if buf.Len() != 0 {
		t.Error("error body must not leak into the writer")
	}
	e := err.(*Error)
	if e.Body != "boom" {
		t.Errorf("Body=%q", e.Body)
	}
}

func TestDownloadPipelineRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization=%q", got)
		}
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL}, WithMiddleware(BearerAuth("tok")))
	defer c.Close()

	if _, err := c.DownloadBytes(context.Background(), "/file"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
