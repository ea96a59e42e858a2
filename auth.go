package httpkit

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/net/http/httpguts"
)

// AuthScheme identifies the authentication method.
type AuthScheme int

const (
	// AuthBearer sends Authorization: Bearer <token>.
	AuthBearer AuthScheme = iota
	// AuthBasic sends Authorization: Basic <token> with pre-encoded
	// credentials.
	AuthBasic
	// AuthAPIKey sends the raw token in a named header.
	AuthAPIKey
)

// AuthMiddleware injects authentication headers on the pre-send pass and
// ignores responses.
type AuthMiddleware struct {
	scheme AuthScheme
	token  string
	header string
}

// BearerAuth creates middleware that sets "Authorization: Bearer <token>".
func BearerAuth(token string) *AuthMiddleware {
	return &AuthMiddleware{scheme: AuthBearer, token: token}
}

// BasicAuth creates middleware that sets "Authorization: Basic <token>".
// The token must already be base64-encoded; see BasicAuthCredentials.
func BasicAuth(token string) *AuthMiddleware {
	return &AuthMiddleware{scheme: AuthBasic, token: token}
}

// BasicAuthCredentials creates basic-auth middleware from a username and
// password, encoding them per RFC 7617.
func BasicAuthCredentials(username, password string) *AuthMiddleware {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return BasicAuth(token)
}

// APIKeyAuth creates middleware that sets the named header to the raw key.
func APIKeyAuth(headerName, key string) *AuthMiddleware {
	return &AuthMiddleware{scheme: AuthAPIKey, token: key, header: headerName}
}

// OnRequest sets the authentication header on the request.
func (m *AuthMiddleware) OnRequest(_ context.Context, req *Request) error {
	switch m.scheme {
	case AuthBearer:
		value := "Bearer " + m.token
		if !httpguts.ValidHeaderFieldValue(value) {
			return NewMiddlewareError(m.Name(), "invalid bearer token")
		}
		req.Header.Set("Authorization", value)
	case AuthBasic:
		value := "Basic " + m.token
		if !httpguts.ValidHeaderFieldValue(value) {
			return NewMiddlewareError(m.Name(), "invalid basic auth token")
		}
		req.Header.Set("Authorization", value)
	case AuthAPIKey:
		if !httpguts.ValidHeaderFieldName(m.header) {
			return NewMiddlewareError(m.Name(), fmt.Sprintf("invalid header name: %s", m.header))
		}
		if !httpguts.ValidHeaderFieldValue(m.token) {
			return NewMiddlewareError(m.Name(), "invalid API key")
		}
		req.Header.Set(m.header, m.token)
	}
	return nil
}

// OnResponse is a no-op.
func (m *AuthMiddleware) OnResponse(_ context.Context, _ *Response) error {
	return nil
}

// Name returns the middleware identifier.
func (m *AuthMiddleware) Name() string {
	return "AuthMiddleware"
}
