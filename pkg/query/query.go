// Package query defines the typed, validated search constraints submitted to a
// feed backend, and their default encoding into feed request parameters.
package query

import (
	"fmt"
	"strings"

	"github.com/feedkit/gdata.go/pkg/constants"
)

// Scope is the deployment-fixed restriction on whose items a query may see.
// Request parameters never change it.
type Scope int

const (
	AllItems Scope = iota
	OwnItems
)

// ParseScope reads a configured scope policy. The empty string selects AllItems.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AllItems, nil
	case "own":
		return OwnItems, nil
	default:
		return AllItems, fmt.Errorf("%w: %q", constants.ErrInvalidScope, s)
	}
}

func (s Scope) OwnItemsOnly() bool {
	return s == OwnItems
}

func (s Scope) String() string {
	if s == OwnItems {
		return "own"
	}
	return "all"
}

// Bound is an upper bound on a numeric attribute, e.g. cookingTime <= 30.
type Bound struct {
	Name string `json:"name" yaml:"name"`
	Max  int    `json:"max" yaml:"max"`
}

// Pagination is left nil field by field to let the backend apply its defaults
// (start index 1, backend-defined page size). Values are forwarded as given:
// zero or negative numbers are rejected by the backend, not here.
type Pagination struct {
	StartIndex *int
	MaxResults *int
}

// Query is the full set of constraints for one feed request.
// It is owned by the request that built it and submitted at most once.
type Query struct {
	OwnItemsOnly bool
	// ItemType restricts results to one item type; empty means any.
	ItemType string
	// FreeText is the full-text query; empty means unset.
	FreeText string
	// Filters match any of the listed values per name, and all names together.
	Filters       map[string][]string
	NumericFilter *Bound
	Pagination    Pagination

	submitted bool
}

// New returns an empty query restricted per scope.
func New(scope Scope) *Query {
	return &Query{
		OwnItemsOnly: scope.OwnItemsOnly(),
		Filters:      map[string][]string{},
	}
}

// SetFilter replaces the value set of the named filter.
func (q *Query) SetFilter(name string, values []string) {
	if q.Filters == nil {
		q.Filters = map[string][]string{}
	}
	q.Filters[name] = append([]string(nil), values...)
}

// Submit marks the query as sent. Executors call it once before talking to
// the backend; a second call fails.
func (q *Query) Submit() error {
	if q.submitted {
		return constants.ErrQuerySubmitted
	}
	q.submitted = true
	return nil
}

func (q *Query) Submitted() bool {
	return q.submitted
}

func IntPtr(i int) *int {
	return &i
}
