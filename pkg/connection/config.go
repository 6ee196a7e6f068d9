package connection

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/feedkit/gdata.go/internal/codec"
	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/extension"
	"github.com/feedkit/gdata.go/pkg/logger"
)

// Config holds everything a connection needs. Use NewConfig to get one with
// working defaults.
type Config struct {
	Endpoint     url.URL
	AuthProtocol string
	AuthDomain   string

	Codec   codec.Codec
	Profile *extension.Profile
	Timeout time.Duration

	Logger         zerolog.Logger
	TracerProvider trace.TracerProvider
}

// NewConfig creates a Config for the feed endpoint u, e.g.
// "https://www.google.com/base/feeds". It uses CBOR, a fresh extension profile,
// the default login server, a silent logger and the global tracer provider.
func NewConfig(u *url.URL) *Config {
	return &Config{
		Endpoint:       *u,
		AuthProtocol:   constants.DefaultAuthProtocol,
		AuthDomain:     constants.DefaultAuthDomain,
		Codec:          codec.NewCBOR(),
		Profile:        extension.NewProfile(),
		Timeout:        constants.DefaultHTTPTimeout,
		Logger:         logger.Nop(),
		TracerProvider: otel.GetTracerProvider(),
	}
}

// Validate reports the first missing or malformed setting.
func (c *Config) Validate() error {
	if c.Endpoint.Host == "" {
		return constants.ErrNoEndpoint
	}
	if c.Endpoint.Scheme != constants.HTTPScheme && c.Endpoint.Scheme != constants.HTTPSecureScheme {
		return fmt.Errorf("%w: scheme %q", constants.ErrInvalidEndpoint, c.Endpoint.Scheme)
	}
	if c.Codec == nil {
		return constants.ErrNoUnmarshaler
	}
	return ValidateAuth(c.AuthProtocol, c.AuthDomain)
}

func (c *Config) AuthScope() AuthScope {
	return AuthScope{
		Endpoint: c.Endpoint,
		Protocol: c.AuthProtocol,
		Domain:   c.AuthDomain,
	}
}
