package gdata

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Config is the service configuration a Client is built from.
type Config struct {
	ApplicationName string
	Service         ServiceName

	// Endpoint overrides the service's default feed endpoint.
	Endpoint string
	// AuthProtocol and AuthDomain select a non-default login server. Leave
	// both empty for the default.
	AuthProtocol string
	AuthDomain   string

	// Codec is the feed wire codec, "cbor" (default) or "json".
	Codec   string
	Timeout time.Duration

	// Logger receives connection debug logs. The zero value discards them.
	Logger         zerolog.Logger
	TracerProvider trace.TracerProvider
}

// NewConfig returns the configuration of a client using the service defaults.
func NewConfig(applicationName string, service ServiceName) *Config {
	return &Config{
		ApplicationName: applicationName,
		Service:         service,
		Logger:          zerolog.Nop(),
	}
}
