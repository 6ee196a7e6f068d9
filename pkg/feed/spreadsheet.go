package feed

import "github.com/feedkit/gdata.go/pkg/extension"

const SpreadsheetNamespace = "http://schemas.google.com/spreadsheets/2006"

const (
	KindCell      extension.Kind = "cell"
	KindList      extension.Kind = "list"
	KindWorksheet extension.Kind = "worksheet"
)

type Cell struct {
	Row          int    `cbor:"row" json:"row"`
	Col          int    `cbor:"col" json:"col"`
	InputValue   string `cbor:"inputValue" json:"inputValue"`
	NumericValue string `cbor:"numericValue,omitempty" json:"numericValue,omitempty"`
	Value        string `cbor:"value" json:"value"`
}

// ListRow is a worksheet row keyed by column header.
type ListRow struct {
	Values map[string]string `cbor:"values" json:"values"`
}

type Worksheet struct {
	RowCount int `cbor:"rowCount" json:"rowCount"`
	ColCount int `cbor:"colCount" json:"colCount"`
}

var (
	CellFeed = extension.Schema{
		Name: "cell feed",
		Declarations: []extension.Declaration{
			{Kind: KindCell, Namespace: SpreadsheetNamespace, Element: "cell", New: func() any { return &Cell{} }},
		},
	}
	ListFeed = extension.Schema{
		Name: "list feed",
		Declarations: []extension.Declaration{
			{Kind: KindList, Namespace: SpreadsheetNamespace, Element: "list", New: func() any { return &ListRow{} }},
		},
	}
	WorksheetFeed = extension.Schema{
		Name: "worksheet feed",
		Declarations: []extension.Declaration{
			{Kind: KindWorksheet, Namespace: SpreadsheetNamespace, Element: "worksheet", New: func() any { return &Worksheet{} }},
		},
	}
)
