package httpkit

import (
	"crypto/tls"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/http/httpguts"
)

const (
	defaultTimeout            = 30 * time.Second
	defaultConnectTimeout     = 10 * time.Second
	defaultMaxRedirects       = 10
	defaultPoolIdleTimeout    = 90 * time.Second
	defaultPoolMaxIdlePerHost = 10
)

// Config holds client-wide defaults. It is read once at client construction
// to parametrize the transport and is never consulted again, so a Client is
// safe to share across goroutines.
type Config struct {
	// Name identifies the client in logs. Defaults to "httpkit".
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the absolute per-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ConnectTimeout bounds connection establishment. Defaults to 10s.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// Headers are default headers applied to every request before the
	// middleware pipeline runs, so middleware can override them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// DisableRedirects stops the transport from following redirects.
	DisableRedirects bool `yaml:"disable_redirects" mapstructure:"disable_redirects"`

	// MaxRedirects caps redirect hops when following. Defaults to 10.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// PoolIdleTimeout is forwarded to the transport's connection pool.
	// Defaults to 90s.
	PoolIdleTimeout time.Duration `yaml:"pool_idle_timeout" mapstructure:"pool_idle_timeout"`

	// PoolMaxIdlePerHost is forwarded to the transport's connection pool.
	// Defaults to 10.
	PoolMaxIdlePerHost int `yaml:"pool_max_idle_per_host" mapstructure:"pool_max_idle_per_host"`

	// TLS is forwarded verbatim to the transport.
	TLS *tls.Config `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "httpkit"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	if c.PoolIdleTimeout <= 0 {
		c.PoolIdleTimeout = defaultPoolIdleTimeout
	}
	if c.PoolMaxIdlePerHost <= 0 {
		c.PoolMaxIdlePerHost = defaultPoolMaxIdlePerHost
	}
}

// Validate checks that the configuration is valid. Default headers are
// validated here, at build time, so no header validation happens on the
// request path.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return NewConfigError(fmt.Sprintf("invalid configuration: %v", err))
	}
	if c.Timeout <= 0 {
		return NewConfigError("timeout must be positive")
	}
	if c.ConnectTimeout <= 0 {
		return NewConfigError("connect_timeout must be positive")
	}
	for name, value := range c.Headers {
		if err := validateHeader(name, value); err != nil {
			return err
		}
	}
	return nil
}

// validateHeader checks a header name/value pair for wire-safety.
func validateHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return NewHeaderError(fmt.Sprintf("invalid header name: %q", name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return NewHeaderError(fmt.Sprintf("invalid header value for %s: %q", name, value))
	}
	return nil
}

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

// getValidator returns the singleton struct validator, configured to report
// field names from mapstructure tags.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return structValidator
}
