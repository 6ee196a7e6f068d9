package gdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/feedkit/gdata.go/internal/version"
	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/extension"
	"github.com/feedkit/gdata.go/pkg/feed"
)

// ServiceName is the abbreviated service name presented when requesting an
// authentication token.
type ServiceName string

const (
	Spreadsheets ServiceName = "wise"
	Base         ServiceName = "gbase"
)

type backend struct {
	friendlyName  string
	versionPrefix string
	endpoint      string
	// Feeds queried for all accessible items and for the caller's own items.
	allItemsFeed string
	ownItemsFeed string
	schemas      []extension.Schema
}

var backends = map[ServiceName]backend{
	Spreadsheets: {
		friendlyName:  "spreadsheets",
		versionPrefix: "GSpread-Go",
		endpoint:      "https://spreadsheets.google.com/feeds",
		allItemsFeed:  "spreadsheets/public/basic",
		ownItemsFeed:  "spreadsheets/private/full",
		schemas:       []extension.Schema{feed.CellFeed, feed.ListFeed, feed.WorksheetFeed},
	},
	Base: {
		friendlyName:  "base",
		versionPrefix: "GBase-Go",
		endpoint:      "https://www.google.com/base/feeds",
		allItemsFeed:  "snippets",
		ownItemsFeed:  "items",
		schemas:       []extension.Schema{feed.ItemFeed},
	},
}

// KnownServices lists the supported services.
func KnownServices() []ServiceName {
	names := make([]ServiceName, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseServiceName accepts a service name ("wise") or its friendly
// name ("spreadsheets"), ignoring case.
func ParseServiceName(s string) (ServiceName, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for name, b := range backends {
		if s == string(name) || s == b.friendlyName {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", constants.ErrUnknownService, s)
}

func lookupBackend(name ServiceName) (backend, error) {
	b, ok := backends[name]
	if !ok {
		return backend{}, fmt.Errorf("%w: %q", constants.ErrUnknownService, string(name))
	}
	return b, nil
}

// DefaultEndpoint returns the feed endpoint used when none is configured.
func (s ServiceName) DefaultEndpoint() string {
	return backends[s].endpoint
}

// Schemas returns the extension schemas the service registers, in order.
func (s ServiceName) Schemas() []extension.Schema {
	schemas := backends[s].schemas
	out := make([]extension.Schema, len(schemas))
	copy(out, schemas)
	return out
}

// Identity is the immutable service identity of a Client.
type Identity struct {
	service     ServiceName
	application string
	version     string
}

func newIdentity(service ServiceName, b backend, application string) Identity {
	return Identity{
		service:     service,
		application: application,
		version:     b.versionPrefix + "/" + version.Get(),
	}
}

func (i Identity) Service() ServiceName {
	return i.service
}

// Application is the client application name, preferably in the form
// [company-id]-[app-name]-[app-version].
func (i Identity) Application() string {
	return i.application
}

// Version is the service-specific part of the client version, e.g. "GSpread-Go/v1.0.0".
func (i Identity) Version() string {
	return i.version
}
