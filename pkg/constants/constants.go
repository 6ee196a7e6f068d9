package constants

import "time"

const (
	// GDataVersion is the protocol version announced on every feed request.
	GDataVersion = "2"
	// DefaultHTTPTimeout bounds a single feed request.
	DefaultHTTPTimeout = 30 * time.Second
	// AuthTokenKey is the session variable holding the login token.
	AuthTokenKey = "auth_token"
	// RequestIDHeader carries the per request correlation id.
	RequestIDHeader = "X-Request-Id"
)

var (
	HTTPScheme       = "http"
	HTTPSecureScheme = "https"
)

// Default login server used when no explicit authentication domain is given.
const (
	DefaultAuthProtocol = "https"
	DefaultAuthDomain   = "www.google.com"
	LoginPath           = "/accounts/ClientLogin"
)
