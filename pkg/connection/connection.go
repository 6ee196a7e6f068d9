// Package connection is the generic feed protocol client a service client is
// specialized from.
//
// A [Connection] submits feed requests and decodes the answers against its own
// [extension.Profile]. The profile, the authentication scope and the protocol
// version are owned by the connection; a service client only adds to them.
package connection

import (
	"context"
	"fmt"
	"net/url"

	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/extension"
	"github.com/feedkit/gdata.go/pkg/feed"
)

type Connection interface {
	// Query fetches one page of a feed.
	Query(ctx context.Context, req *Request) (*feed.Feed, error)
	// ExtensionProfile returns the profile entries are decoded against.
	ExtensionProfile() *extension.Profile
	AuthScope() AuthScope
	// Version identifies the protocol client, e.g. "GData-Go/v1.0.0".
	Version() string
	// SetAuthToken installs the login token used on subsequent requests.
	// An empty token clears it.
	SetAuthToken(token string)
}

// Request addresses a feed relative to the connection endpoint.
type Request struct {
	// Feed is the feed path, e.g. "base/feeds/snippets".
	Feed      string
	Values    url.Values
	UserAgent string
}

// URL resolves the request against endpoint.
func (r *Request) URL(endpoint url.URL) *url.URL {
	u := endpoint.JoinPath(r.Feed)
	if len(r.Values) > 0 {
		u.RawQuery = r.Values.Encode()
	}
	return u
}

// AuthScope is where and how a client authenticates and which endpoint it
// queries.
type AuthScope struct {
	Endpoint url.URL
	Protocol string
	Domain   string
}

// LoginURL is the address of the login handler for this scope.
func (a AuthScope) LoginURL() string {
	return fmt.Sprintf("%s://%s%s", a.Protocol, a.Domain, constants.LoginPath)
}

// ValidateAuth checks an explicit protocol/domain pair.
func ValidateAuth(protocol, domain string) error {
	if protocol != constants.HTTPScheme && protocol != constants.HTTPSecureScheme {
		return fmt.Errorf("%w: %q", constants.ErrInvalidAuthProtocol, protocol)
	}
	if domain == "" {
		return fmt.Errorf("%w: empty domain", constants.ErrInvalidAuthProtocol)
	}
	return nil
}
