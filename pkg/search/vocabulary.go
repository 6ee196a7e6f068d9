package search

import (
	"fmt"
	"strconv"

	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/query"
)

// Shape is how many values of a parameter a field consumes.
type Shape int

const (
	// Single fields see the first value only.
	Single Shape = iota
	// Multi fields see the whole list.
	Multi
)

// Setter binds the values of one parameter to q. It is only called when the
// parameter is set: a non-empty first value for Single, a non-empty list for Multi.
type Setter func(q *query.Query, values []string) error

type Field struct {
	Param string
	Shape Shape
	Set   Setter
}

// Vocabulary is the set of parameters a Builder recognizes.
type Vocabulary struct {
	// QueryParam is the free-text parameter. Its absence selects the browse query.
	QueryParam string
	// ItemType is the item type every query of this vocabulary is restricted to.
	ItemType string
	Fields   []Field
}

// Params lists the recognized parameter names in table order.
func (v Vocabulary) Params() []string {
	names := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		names = append(names, f.Param)
	}
	return names
}

// Recipes is the vocabulary of the recipe search: free text, main ingredient
// and cuisine (any of), a maximum cooking time, and pagination.
func Recipes() Vocabulary {
	return Vocabulary{
		QueryParam: "query",
		ItemType:   "recipes",
		Fields: []Field{
			FreeText("query"),
			Categorical("mainIngredient"),
			Categorical("cuisine"),
			UpperBound("cookingTime"),
			StartIndex("startIndex"),
			MaxResults("maxResults"),
		},
	}
}

// FreeText sets the full-text query.
func FreeText(param string) Field {
	return Field{Param: param, Shape: Single, Set: func(q *query.Query, values []string) error {
		q.FreeText = values[0]
		return nil
	}}
}

// Categorical sets a filter matching any of the given values. The list is kept
// as given, duplicates included.
func Categorical(param string) Field {
	return Field{Param: param, Shape: Multi, Set: func(q *query.Query, values []string) error {
		q.SetFilter(param, values)
		return nil
	}}
}

// UpperBound sets a non-negative maximum on the numeric attribute param.
func UpperBound(param string) Field {
	return Field{Param: param, Shape: Single, Set: func(q *query.Query, values []string) error {
		n, err := parseInt(values[0])
		if err != nil {
			return err
		}
		if n < 0 {
			return constants.ErrNegative
		}
		q.NumericFilter = &query.Bound{Name: param, Max: n}
		return nil
	}}
}

// StartIndex sets the 1-based index of the first result.
func StartIndex(param string) Field {
	return Field{Param: param, Shape: Single, Set: func(q *query.Query, values []string) error {
		n, err := parseInt(values[0])
		if err != nil {
			return err
		}
		q.Pagination.StartIndex = &n
		return nil
	}}
}

// MaxResults sets the page size.
func MaxResults(param string) Field {
	return Field{Param: param, Shape: Single, Set: func(q *query.Query, values []string) error {
		n, err := parseInt(values[0])
		if err != nil {
			return err
		}
		q.Pagination.MaxResults = &n
		return nil
	}}
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", constants.ErrNotInteger, err)
	}
	return n, nil
}
