package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Feed request parameter names.
const (
	ParamFreeText   = "q"
	ParamBaseQuery  = "bq"
	ParamStartIndex = "start-index"
	ParamMaxResults = "max-results"
)

// Values encodes q into feed request parameters. Filters become a bracketed
// attribute expression in "bq", e.g.
//
//	[item type:recipes] [main ingredient:chicken|garlic] [cooking time<=30]
func (q *Query) Values() url.Values {
	v := url.Values{}

	if q.FreeText != "" {
		v.Set(ParamFreeText, q.FreeText)
	}

	if bq := q.AttributeQuery(); bq != "" {
		v.Set(ParamBaseQuery, bq)
	}

	if q.Pagination.StartIndex != nil {
		v.Set(ParamStartIndex, strconv.Itoa(*q.Pagination.StartIndex))
	}
	if q.Pagination.MaxResults != nil {
		v.Set(ParamMaxResults, strconv.Itoa(*q.Pagination.MaxResults))
	}

	return v
}

// AttributeQuery returns the "bq" expression of q, or "" when q has no
// attribute constraints. Filters are written in name order so equal queries
// encode identically.
func (q *Query) AttributeQuery() string {
	var b expressionBuilder

	if q.ItemType != "" {
		b.term("item type", ":", q.ItemType)
	}

	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.term(AttributeName(name), ":", q.Filters[name]...)
	}

	if q.NumericFilter != nil {
		b.term(AttributeName(q.NumericFilter.Name), "<=", strconv.Itoa(q.NumericFilter.Max))
	}

	return b.String()
}

// AttributeName turns a parameter name into the backend attribute name:
// "mainIngredient" becomes "main ingredient".
func AttributeName(param string) string {
	var b strings.Builder
	for i, r := range param {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

type expressionBuilder struct {
	b strings.Builder
}

// term writes [attr<op>v1|v2]. Blank values are skipped; a term with no
// values left is dropped.
func (e *expressionBuilder) term(attr, op string, values ...string) {
	vs := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		vs = append(vs, quoteValue(v))
	}
	if len(vs) == 0 {
		return
	}

	if e.b.Len() > 0 {
		e.b.WriteByte(' ')
	}
	e.b.WriteByte('[')
	e.b.WriteString(attr)
	e.b.WriteString(op)
	e.b.WriteString(strings.Join(vs, "|"))
	e.b.WriteByte(']')
}

func (e *expressionBuilder) String() string {
	return e.b.String()
}

// quoteValue wraps values containing expression syntax in double quotes.
func quoteValue(v string) string {
	if strings.ContainsAny(v, " []|:<>=\"") {
		return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return v
}
