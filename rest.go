package httpkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GetJSON performs a GET request and decodes the JSON response into T.
func GetJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// PostJSON performs a POST request with a JSON body and decodes the
// response into T.
func PostJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodPost, path, body, opts...)
}

// PutJSON performs a PUT request with a JSON body and decodes the response
// into T.
func PutJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodPut, path, body, opts...)
}

// PatchJSON performs a PATCH request with a JSON body and decodes the
// response into T.
func PatchJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// DeleteJSON performs a DELETE request and decodes the JSON response into T.
func DeleteJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// PostForm submits an application/x-www-form-urlencoded body and decodes
// the JSON response into T.
func PostForm[T any](ctx context.Context, c *Client, path string, form url.Values, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodPost, path, form, opts...)
}

// PostMultipart submits a multipart/form-data body and decodes the JSON
// response into T.
func PostMultipart[T any](ctx context.Context, c *Client, path string, form *MultipartBody, opts ...RequestOption) (T, error) {
	return doJSON[T](ctx, c, http.MethodPost, path, form, opts...)
}

// doJSON executes a request and decodes a successful JSON response.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var zero T
	resp, err := c.Execute(ctx, method, path, body, opts...)
	if err != nil {
		return zero, err
	}
	return DecodeJSON[T](resp)
}

// DecodeJSON converts a raw response into a decoded value. A 2xx response
// is unmarshaled into T; anything else becomes a response error carrying
// the status and the body read best-effort.
func DecodeJSON[T any](resp *Response) (T, error) {
	var data T
	if !resp.IsSuccess() {
		return data, NewResponseError(resp.StatusCode, resp.bodyText())
	}
	if len(resp.Body) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return data, NewSerializationError(fmt.Sprintf("decode response: %v", err), err)
	}
	return data, nil
}
