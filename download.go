package httpkit

import (
	"context"
	"io"
	"net/http"
)

// downloadErrorBodyLimit caps how much of a failed download's body is read
// for diagnostics.
const downloadErrorBodyLimit = 64 * 1024

// DownloadBytes GETs the path and returns the full body. Non-2xx statuses
// become response errors with the body captured for diagnostics.
func (c *Client) DownloadBytes(ctx context.Context, path string, opts ...RequestOption) ([]byte, error) {
	spec := requestSpec{method: http.MethodGet, path: path}
	for _, opt := range opts {
		opt(&spec)
	}
	resp, err := c.execute(ctx, spec)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, NewResponseError(resp.StatusCode, resp.bodyText())
	}
	return resp.Body, nil
}

// DownloadToWriter GETs the path and streams the body into w without
// buffering it in memory. It returns the number of bytes copied.
func (c *Client) DownloadToWriter(ctx context.Context, path string, w io.Writer, opts ...RequestOption) (int64, error) {
	spec := requestSpec{method: http.MethodGet, path: path}
	for _, opt := range opts {
		opt(&spec)
	}
	resp, err := c.executeStream(ctx, spec)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Close() }()

	if !resp.IsSuccess() {
		body, _ := io.ReadAll(io.LimitReader(resp.Stream, downloadErrorBodyLimit))
		return 0, NewResponseError(resp.StatusCode, string(body))
	}

	n, err := io.Copy(w, resp.Stream)
	if err != nil {
		return n, NewTransportError(err)
	}
	return n, nil
}
