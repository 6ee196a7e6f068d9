package web

import (
	"time"

	"github.com/feedkit/gdata.go/pkg/feed"
	"github.com/feedkit/gdata.go/pkg/query"
	"github.com/feedkit/gdata.go/pkg/search"
)

// Page is the rendered answer to one search: the query that ran and the page
// of results it returned.
type Page struct {
	Query   QueryView `json:"query" yaml:"query"`
	Title   string    `json:"title,omitempty" yaml:"title,omitempty"`
	Total   int       `json:"total" yaml:"total"`
	Start   int       `json:"start,omitempty" yaml:"start,omitempty"`
	PerPage int       `json:"perPage,omitempty" yaml:"perPage,omitempty"`
	Entries []Entry   `json:"entries" yaml:"entries"`
}

type QueryView struct {
	OwnItemsOnly bool                `json:"ownItemsOnly" yaml:"ownItemsOnly"`
	ItemType     string              `json:"itemType,omitempty" yaml:"itemType,omitempty"`
	FreeText     string              `json:"freeText,omitempty" yaml:"freeText,omitempty"`
	Filters      map[string][]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Bound        *query.Bound        `json:"bound,omitempty" yaml:"bound,omitempty"`
	StartIndex   *int                `json:"startIndex,omitempty" yaml:"startIndex,omitempty"`
	MaxResults   *int                `json:"maxResults,omitempty" yaml:"maxResults,omitempty"`
	// Encoded is the attribute expression sent to the backend.
	Encoded string `json:"encoded,omitempty" yaml:"encoded,omitempty"`
}

type Entry struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title,omitempty" yaml:"title,omitempty"`
	Kind    string    `json:"kind" yaml:"kind"`
	Updated time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`
	Record  any       `json:"record,omitempty" yaml:"record,omitempty"`
}

// NewPage flattens a search result for rendering.
func NewPage(res *search.Result) *Page {
	p := &Page{
		Query:   newQueryView(res.Query),
		Entries: []Entry{},
	}

	f := res.Feed
	if f == nil {
		return p
	}
	p.Title = f.Title
	p.Total = f.TotalResults
	p.Start = f.StartIndex
	p.PerPage = f.ItemsPerPage
	for _, e := range f.Entries {
		p.Entries = append(p.Entries, newEntry(e))
	}
	return p
}

func newQueryView(q *query.Query) QueryView {
	return QueryView{
		OwnItemsOnly: q.OwnItemsOnly,
		ItemType:     q.ItemType,
		FreeText:     q.FreeText,
		Filters:      q.Filters,
		Bound:        q.NumericFilter,
		StartIndex:   q.Pagination.StartIndex,
		MaxResults:   q.Pagination.MaxResults,
		Encoded:      q.AttributeQuery(),
	}
}

func newEntry(e feed.Entry) Entry {
	out := Entry{
		ID:      e.ID,
		Title:   e.Title,
		Kind:    string(e.Kind),
		Updated: e.Updated,
		Record:  e.Record,
	}
	if out.Record == nil && len(e.Extra) > 0 {
		out.Record = e.Extra
	}
	return out
}
