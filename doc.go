// Package httpkit provides a configurable HTTP client facade: requests are
// built from a declarative configuration, routed through an ordered chain
// of middleware, and exposed through typed convenience operations (JSON
// helpers, form submission, streaming download).
//
// The middleware pipeline runs every middleware's OnRequest hook in
// registration order before the transport sends the request, and every
// OnResponse hook in the same registration order after the response
// arrives. The first failure in either pass aborts the execution.
//
// # Basic Usage
//
//	cfg, err := httpkit.NewConfig().
//	    WithBaseURL("https://api.example.com").
//	    WithJSONHeaders().
//	    Build()
//	if err != nil {
//	    return err
//	}
//
//	client, err := httpkit.New(cfg,
//	    httpkit.WithMiddleware(
//	        httpkit.Logging(nil),
//	        httpkit.BearerAuth("my-token"),
//	    ),
//	)
//
//	user, err := httpkit.GetJSON[User](ctx, client, "/users/123")
//
// The transport (sockets, TLS, pooling, redirects) is pluggable via the
// Transport interface; the default adapts net/http.
package httpkit
