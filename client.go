package gdata

import (
	"context"
	"net/url"
	"strings"

	"github.com/feedkit/gdata.go/internal/codec"
	"github.com/feedkit/gdata.go/pkg/connection"
	httpconn "github.com/feedkit/gdata.go/pkg/connection/http"
	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/extension"
	"github.com/feedkit/gdata.go/pkg/feed"
	"github.com/feedkit/gdata.go/pkg/query"
)

// Client is a feed connection specialized for one service and application.
type Client struct {
	identity Identity
	backend  backend
	conn     connection.Connection
}

// New creates a client for service using its default endpoint and login server.
func New(applicationName string, service ServiceName) (*Client, error) {
	return FromConfig(NewConfig(applicationName, service))
}

// NewWithAuth creates a client that authenticates against domainName over
// protocol ("http" or "https") instead of the default login server.
func NewWithAuth(applicationName string, service ServiceName, protocol, domainName string) (*Client, error) {
	cfg := NewConfig(applicationName, service)
	cfg.AuthProtocol = protocol
	cfg.AuthDomain = domainName
	if protocol == "" && domainName == "" {
		return nil, &ConfigurationError{Field: "auth", Err: constants.ErrInvalidAuthProtocol}
	}
	return FromConfig(cfg)
}

// FromConfig creates a client with the default HTTP connection.
func FromConfig(cfg *Config) (*Client, error) {
	b, err := validateIdentity(cfg.ApplicationName, cfg.Service)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = b.endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &ConfigurationError{Field: "endpoint", Err: err}
	}

	ccfg := connection.NewConfig(u)
	if cfg.AuthProtocol != "" || cfg.AuthDomain != "" {
		ccfg.AuthProtocol = strings.ToLower(cfg.AuthProtocol)
		ccfg.AuthDomain = cfg.AuthDomain
	}
	if cfg.Codec != "" {
		c, err := codec.ByName(cfg.Codec)
		if err != nil {
			return nil, &ConfigurationError{Field: "codec", Err: err}
		}
		ccfg.Codec = c
	}
	if cfg.Timeout > 0 {
		ccfg.Timeout = cfg.Timeout
	}
	ccfg.Logger = cfg.Logger.With().Str("service", string(cfg.Service)).Logger()
	if cfg.TracerProvider != nil {
		ccfg.TracerProvider = cfg.TracerProvider
	}

	if err := ccfg.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "connection", Err: err}
	}

	return newClient(cfg.ApplicationName, cfg.Service, b, httpconn.New(ccfg))
}

// FromConnection specializes an existing connection. Several clients may
// share one connection; schemas already on its profile are not registered twice.
func FromConnection(applicationName string, service ServiceName, conn connection.Connection) (*Client, error) {
	b, err := validateIdentity(applicationName, service)
	if err != nil {
		return nil, err
	}
	return newClient(applicationName, service, b, conn)
}

func validateIdentity(applicationName string, service ServiceName) (backend, error) {
	if strings.TrimSpace(applicationName) == "" {
		return backend{}, &ConfigurationError{Field: "application name", Err: constants.ErrNoApplicationName}
	}
	b, err := lookupBackend(service)
	if err != nil {
		return backend{}, &ConfigurationError{Field: "service", Err: err}
	}
	return b, nil
}

func newClient(applicationName string, service ServiceName, b backend, conn connection.Connection) (*Client, error) {
	profile := conn.ExtensionProfile()
	for _, s := range b.schemas {
		if _, err := profile.DeclareSchema(s); err != nil {
			return nil, &ConfigurationError{Field: "extensions", Err: err}
		}
	}

	return &Client{
		identity: newIdentity(service, b, applicationName),
		backend:  b,
		conn:     conn,
	}, nil
}

func (c *Client) Identity() Identity {
	return c.identity
}

// ServiceVersion composes the service version with the connection version,
// e.g. "GSpread-Go/v1.0.0 GData-Go/v1.0.0". It is informational only.
func (c *Client) ServiceVersion() string {
	return c.identity.Version() + " " + c.conn.Version()
}

func (c *Client) AuthScope() connection.AuthScope {
	return c.conn.AuthScope()
}

func (c *Client) ExtensionProfile() *extension.Profile {
	return c.conn.ExtensionProfile()
}

// SetAuthToken hands a login token to the connection.
func (c *Client) SetAuthToken(token string) {
	c.conn.SetAuthToken(token)
}

// FeedFor returns the feed q runs against.
func (c *Client) FeedFor(q *query.Query) string {
	if q.OwnItemsOnly {
		return c.backend.ownItemsFeed
	}
	return c.backend.allItemsFeed
}

// Execute submits q once. A query that was already submitted fails with
// constants.ErrQuerySubmitted without reaching the connection.
func (c *Client) Execute(ctx context.Context, q *query.Query) (*feed.Feed, error) {
	if err := q.Submit(); err != nil {
		return nil, err
	}

	f, err := c.conn.Query(ctx, &connection.Request{
		Feed:      c.FeedFor(q),
		Values:    q.Values(),
		UserAgent: c.identity.Application() + " " + c.ServiceVersion(),
	})
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	return f, nil
}
