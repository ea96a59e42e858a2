package httpkit

import (
	"crypto/tls"
	"time"
)

// ConfigBuilder assembles a Config through fluent chaining. Header
// validation errors are recorded and surfaced by Build, so chains stay
// uninterrupted:
//
//	cfg, err := httpkit.NewConfig().
//	    WithBaseURL("https://api.example.com").
//	    WithJSONHeaders().
//	    WithTimeout(10 * time.Second).
//	    Build()
type ConfigBuilder struct {
	cfg Config
	err error
}

// NewConfig creates a new configuration builder.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithName sets the client name used in logs.
func (b *ConfigBuilder) WithName(name string) *ConfigBuilder {
	b.cfg.Name = name
	return b
}

// WithBaseURL sets the base URL for all requests.
func (b *ConfigBuilder) WithBaseURL(baseURL string) *ConfigBuilder {
	b.cfg.BaseURL = baseURL
	return b
}

// WithTimeout sets the absolute request timeout.
func (b *ConfigBuilder) WithTimeout(timeout time.Duration) *ConfigBuilder {
	b.cfg.Timeout = timeout
	return b
}

// WithConnectTimeout sets the connection-establishment timeout.
func (b *ConfigBuilder) WithConnectTimeout(timeout time.Duration) *ConfigBuilder {
	b.cfg.ConnectTimeout = timeout
	return b
}

// WithDefaultHeader adds a default header. The name and value are validated
// for wire-safety; the first failure is reported by Build as a header error.
func (b *ConfigBuilder) WithDefaultHeader(name, value string) *ConfigBuilder {
	if b.err == nil {
		b.err = validateHeader(name, value)
	}
	if b.err != nil {
		return b
	}
	if b.cfg.Headers == nil {
		b.cfg.Headers = make(map[string]string)
	}
	b.cfg.Headers[name] = value
	return b
}

// WithJSONHeaders sets Content-Type and Accept to application/json.
func (b *ConfigBuilder) WithJSONHeaders() *ConfigBuilder {
	return b.
		WithDefaultHeader("Content-Type", "application/json").
		WithDefaultHeader("Accept", "application/json")
}

// WithRedirects configures redirect following and the hop limit.
func (b *ConfigBuilder) WithRedirects(follow bool, maxRedirects int) *ConfigBuilder {
	b.cfg.DisableRedirects = !follow
	b.cfg.MaxRedirects = maxRedirects
	return b
}

// WithPoolIdleTimeout sets the connection pool idle timeout hint.
func (b *ConfigBuilder) WithPoolIdleTimeout(timeout time.Duration) *ConfigBuilder {
	b.cfg.PoolIdleTimeout = timeout
	return b
}

// WithPoolMaxIdlePerHost sets the per-host idle connection hint.
func (b *ConfigBuilder) WithPoolMaxIdlePerHost(n int) *ConfigBuilder {
	b.cfg.PoolMaxIdlePerHost = n
	return b
}

// WithTLS sets the TLS configuration forwarded to the transport.
func (b *ConfigBuilder) WithTLS(tlsCfg *tls.Config) *ConfigBuilder {
	b.cfg.TLS = tlsCfg
	return b
}

// Build finalizes the configuration, applying defaults and validating.
// It returns the first error recorded during chaining, if any.
func (b *ConfigBuilder) Build() (Config, error) {
	if b.err != nil {
		return Config{}, b.err
	}
	cfg := b.cfg
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
