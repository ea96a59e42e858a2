package httpkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Transport sends a fully-decorated request over the wire. It owns sockets,
// TLS, connection pooling, and redirect following; the client never touches
// any of these.
type Transport interface {
	// Send transmits the request and returns the response with its body
	// fully read. Failures are transport errors carrying the cause.
	Send(ctx context.Context, req *Request) (*Response, error)

	// Stream transmits the request and returns the response with its body
	// left unread as Response.Stream. The caller must close it.
	Stream(ctx context.Context, req *Request) (*Response, error)

	// Close releases idle transport resources.
	Close() error
}

// httpTransport adapts net/http to the Transport contract, parametrized
// once from Config.
type httpTransport struct {
	client *http.Client
	// streamClient shares the connection pool but has no global timeout;
	// streaming reads outlive any sane request deadline and rely on ctx.
	streamClient *http.Client
}

// NewTransport builds the default net/http-backed transport from the given
// configuration.
func NewTransport(cfg Config) Transport {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.DialContext = (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext
	base.IdleConnTimeout = cfg.PoolIdleTimeout
	base.MaxIdleConnsPerHost = cfg.PoolMaxIdlePerHost
	if cfg.TLS != nil {
		base.TLSClientConfig = cfg.TLS
	}

	redirect := redirectPolicy(cfg)
	return &httpTransport{
		client: &http.Client{
			Transport:     base,
			Timeout:       cfg.Timeout,
			CheckRedirect: redirect,
		},
		streamClient: &http.Client{
			Transport:     base,
			CheckRedirect: redirect,
		},
	}
}

// redirectPolicy translates the configured redirect policy into a
// net/http CheckRedirect func.
func redirectPolicy(cfg Config) func(*http.Request, []*http.Request) error {
	if cfg.DisableRedirects {
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	max := cfg.MaxRedirects
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		return nil
	}
}

// Send implements Transport.
func (t *httpTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	resp, err := t.roundTrip(ctx, t.client, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	result := &Response{
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.String(),
		Header:     resp.Header,
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// Status and headers arrived; the body is lost. Surface the read
		// failure but keep the partial response for diagnostics.
		return result, NewTransportError(fmt.Errorf("read response body: %w", err))
	}
	result.Body = body
	return result, nil
}

// Stream implements Transport.
func (t *httpTransport) Stream(ctx context.Context, req *Request) (*Response, error) {
	resp, err := t.roundTrip(ctx, t.streamClient, req)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.String(),
		Header:     resp.Header,
		Stream:     resp.Body,
	}, nil
}

// Close implements Transport.
func (t *httpTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// roundTrip converts the descriptor to an *http.Request and sends it.
func (t *httpTransport) roundTrip(ctx context.Context, client *http.Client, req *Request) (*http.Response, error) {
	var body io.Reader
	if req.BodyReader != nil {
		body = req.BodyReader
	} else if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("create request: %v", err))
	}
	for name, values := range req.Header {
		httpReq.Header[name] = values
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, NewTransportError(err)
	}
	return resp, nil
}
