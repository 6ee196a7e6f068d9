// Package feed is the result collection returned by a feed query.
//
// Entries of a kind declared on the client's [extension.Profile] are decoded
// into typed records; anything else is kept verbatim in [Entry.Extra].
package feed

import (
	"fmt"
	"time"

	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/extension"
)

// Codec is the subset of a wire codec the decoder needs.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, dst any) error
}

type Feed struct {
	ID           string
	Title        string
	Updated      time.Time
	TotalResults int
	StartIndex   int
	ItemsPerPage int
	Entries      []Entry
}

type Entry struct {
	ID      string
	Title   string
	Kind    extension.Kind
	Updated time.Time
	// Record is a pointer to the typed record of a declared kind, nil otherwise.
	Record any
	// Extra holds the content of entries whose kind is not declared.
	Extra map[string]any
}

// Len returns the number of entries on this page.
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Entries)
}

type wireFeed struct {
	ID           string      `cbor:"id" json:"id"`
	Title        string      `cbor:"title" json:"title"`
	Updated      time.Time   `cbor:"updated" json:"updated"`
	TotalResults int         `cbor:"totalResults" json:"totalResults"`
	StartIndex   int         `cbor:"startIndex" json:"startIndex"`
	ItemsPerPage int         `cbor:"itemsPerPage" json:"itemsPerPage"`
	Entries      []wireEntry `cbor:"entries" json:"entries"`
}

type wireEntry struct {
	ID      string    `cbor:"id" json:"id"`
	Title   string    `cbor:"title" json:"title"`
	Kind    string    `cbor:"kind" json:"kind"`
	Updated time.Time `cbor:"updated" json:"updated"`
	Content any       `cbor:"content,omitempty" json:"content,omitempty"`
}

// Decode parses a wire feed. Entry content of declared kinds is re-encoded
// with c and decoded into the kind's record type.
func Decode(c Codec, data []byte, profile *extension.Profile) (*Feed, error) {
	var wf wireFeed
	if err := c.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("%w: %w", constants.InvalidResponse, err)
	}

	f := &Feed{
		ID:           wf.ID,
		Title:        wf.Title,
		Updated:      wf.Updated,
		TotalResults: wf.TotalResults,
		StartIndex:   wf.StartIndex,
		ItemsPerPage: wf.ItemsPerPage,
		Entries:      make([]Entry, 0, len(wf.Entries)),
	}

	for i, we := range wf.Entries {
		e, err := decodeEntry(c, we, profile)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", constants.InvalidResponse, i, err)
		}
		f.Entries = append(f.Entries, e)
	}

	return f, nil
}

func decodeEntry(c Codec, we wireEntry, profile *extension.Profile) (Entry, error) {
	e := Entry{
		ID:      we.ID,
		Title:   we.Title,
		Kind:    extension.Kind(we.Kind),
		Updated: we.Updated,
	}

	var decl extension.Declaration
	declared := false
	if profile != nil {
		decl, declared = profile.Lookup(e.Kind)
	}

	if !declared || decl.New == nil {
		if m, ok := we.Content.(map[string]any); ok {
			e.Extra = m
		} else if we.Content != nil {
			e.Extra = map[string]any{"value": we.Content}
		}
		return e, nil
	}

	rec := decl.New()
	if we.Content != nil {
		data, err := c.Marshal(we.Content)
		if err != nil {
			return e, err
		}
		if err := c.Unmarshal(data, rec); err != nil {
			return e, fmt.Errorf("kind %s: %w", e.Kind, err)
		}
	}
	e.Record = rec

	return e, nil
}

// Encode writes f in wire form. Fake servers and fixtures use it.
func Encode(c Codec, f *Feed) ([]byte, error) {
	wf := wireFeed{
		ID:           f.ID,
		Title:        f.Title,
		Updated:      f.Updated,
		TotalResults: f.TotalResults,
		StartIndex:   f.StartIndex,
		ItemsPerPage: f.ItemsPerPage,
		Entries:      make([]wireEntry, 0, len(f.Entries)),
	}

	for _, e := range f.Entries {
		we := wireEntry{
			ID:      e.ID,
			Title:   e.Title,
			Kind:    string(e.Kind),
			Updated: e.Updated,
		}
		switch {
		case e.Record != nil:
			we.Content = e.Record
		case e.Extra != nil:
			we.Content = e.Extra
		}
		wf.Entries = append(wf.Entries, we)
	}

	return c.Marshal(wf)
}
