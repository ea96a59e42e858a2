package httpkit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ResolveURL joins a path with a base URL. Paths that already carry a
// scheme are returned verbatim. The join point always normalizes to
// exactly one separating slash.
func ResolveURL(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// URLBuilder assembles a URL from a base, path segments, and query
// parameters. Segments and parameter values are percent-encoded.
type URLBuilder struct {
	base     string
	segments []string
	query    url.Values
}

// URL creates a builder rooted at the given base URL.
func URL(base string) *URLBuilder {
	return &URLBuilder{base: base, query: url.Values{}}
}

// Path appends a path segment.
func (b *URLBuilder) Path(segment string) *URLBuilder {
	b.segments = append(b.segments, segment)
	return b
}

// Query adds a query parameter.
func (b *URLBuilder) Query(key, value string) *URLBuilder {
	b.query.Add(key, value)
	return b
}

// Build renders the final URL string.
func (b *URLBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(b.base, "/"))
	for _, segment := range b.segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(segment))
	}
	if len(b.query) > 0 {
		sb.WriteByte('?')
		sb.WriteString(b.query.Encode())
	}
	return sb.String()
}

// QueryBuilder assembles URL query parameters.
type QueryBuilder struct {
	values url.Values
}

// Query creates an empty query builder.
func Query() *QueryBuilder {
	return &QueryBuilder{values: url.Values{}}
}

// Param adds a query parameter.
func (b *QueryBuilder) Param(key, value string) *QueryBuilder {
	b.values.Add(key, value)
	return b
}

// OptionalParam adds the parameter only when the value is non-empty.
func (b *QueryBuilder) OptionalParam(key, value string) *QueryBuilder {
	if value != "" {
		b.values.Add(key, value)
	}
	return b
}

// Params adds all entries from the map.
func (b *QueryBuilder) Params(params map[string]string) *QueryBuilder {
	for k, v := range params {
		b.values.Add(k, v)
	}
	return b
}

// Values returns the accumulated parameters.
func (b *QueryBuilder) Values() url.Values {
	return b.values
}

// Encode renders the parameters as an encoded query string without the
// leading "?".
func (b *QueryBuilder) Encode() string {
	return b.values.Encode()
}

// ToQueryParams converts a struct (or map) into query parameters by way of
// its JSON representation. Scalar fields become single values, arrays
// become repeated values, and nulls and nested objects are skipped.
func ToQueryParams(params any) (url.Values, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, NewSerializationError(fmt.Sprintf("encode query params: %v", err), err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, NewSerializationError("query params must encode to a JSON object", err)
	}

	values := url.Values{}
	for key, value := range m {
		switch v := value.(type) {
		case string:
			values.Add(key, v)
		case float64:
			values.Add(key, formatJSONNumber(v))
		case bool:
			values.Add(key, fmt.Sprintf("%t", v))
		case []any:
			for _, item := range v {
				switch iv := item.(type) {
				case string:
					values.Add(key, iv)
				case float64:
					values.Add(key, formatJSONNumber(iv))
				case bool:
					values.Add(key, fmt.Sprintf("%t", iv))
				}
			}
		}
	}
	return values, nil
}

// formatJSONNumber renders a JSON number without a spurious decimal point
// for integral values.
func formatJSONNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// ValidateURL checks that a URL parses and is absolute.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return NewConfigError(fmt.Sprintf("invalid URL %q: %v", raw, err))
	}
	if !u.IsAbs() {
		return NewConfigError(fmt.Sprintf("invalid URL %q: missing scheme", raw))
	}
	return nil
}
