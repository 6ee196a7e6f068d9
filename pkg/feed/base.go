package feed

import "github.com/feedkit/gdata.go/pkg/extension"

const BaseNamespace = "http://base.google.com/ns/1.0"

const (
	KindItem    extension.Kind = "item"
	KindSnippet extension.Kind = "snippet"
)

// Item is an entry of a Base items or snippets feed.
type Item struct {
	ItemType   string              `cbor:"itemType" json:"itemType"`
	Author     string              `cbor:"author,omitempty" json:"author,omitempty"`
	Attributes map[string][]string `cbor:"attributes,omitempty" json:"attributes,omitempty"`
}

// Attribute returns the values of the named attribute.
func (i *Item) Attribute(name string) []string {
	if i == nil {
		return nil
	}
	return i.Attributes[name]
}

var ItemFeed = extension.Schema{
	Name: "item feed",
	Declarations: []extension.Declaration{
		{Kind: KindItem, Namespace: BaseNamespace, Element: "item", New: func() any { return &Item{} }},
		{Kind: KindSnippet, Namespace: BaseNamespace, Element: "snippet", New: func() any { return &Item{} }},
	},
}
