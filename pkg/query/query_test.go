package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedkit/gdata.go/pkg/constants"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want Scope
	}{
		{"", AllItems},
		{"all", AllItems},
		{"own", OwnItems},
		{" OWN ", OwnItems},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseScope("mine")
	assert.ErrorIs(t, err, constants.ErrInvalidScope)
}

func TestSubmitOnce(t *testing.T) {
	q := New(AllItems)
	require.NoError(t, q.Submit())
	assert.True(t, q.Submitted())
	assert.ErrorIs(t, q.Submit(), constants.ErrQuerySubmitted)
}

func TestSetFilterCopies(t *testing.T) {
	in := []string{"chicken", "garlic"}
	q := &Query{}
	q.SetFilter("mainIngredient", in)
	in[0] = "tofu"
	assert.Equal(t, []string{"chicken", "garlic"}, q.Filters["mainIngredient"])
}

func TestAttributeName(t *testing.T) {
	assert.Equal(t, "main ingredient", AttributeName("mainIngredient"))
	assert.Equal(t, "cooking time", AttributeName("cookingTime"))
	assert.Equal(t, "cuisine", AttributeName("cuisine"))
}

func TestValues(t *testing.T) {
	tests := []struct {
		name  string
		query *Query
		want  url.Values
	}{
		{
			name:  "empty",
			query: New(OwnItems),
			want:  url.Values{},
		},
		{
			name: "full",
			query: &Query{
				ItemType: "recipes",
				FreeText: "chicken",
				Filters: map[string][]string{
					"mainIngredient": {"chicken", "garlic"},
					"cuisine":        {"thai"},
				},
				NumericFilter: &Bound{Name: "cookingTime", Max: 30},
				Pagination:    Pagination{StartIndex: IntPtr(1), MaxResults: IntPtr(25)},
			},
			want: url.Values{
				"q":           {"chicken"},
				"bq":          {"[item type:recipes] [cuisine:thai] [main ingredient:chicken|garlic] [cooking time<=30]"},
				"start-index": {"1"},
				"max-results": {"25"},
			},
		},
		{
			name: "quoted and blank values",
			query: &Query{
				Filters: map[string][]string{
					"cuisine":        {"south indian", ""},
					"mainIngredient": {" "},
				},
			},
			want: url.Values{
				"bq": {`[cuisine:"south indian"]`},
			},
		},
		{
			name: "pagination forwarded unchanged",
			query: &Query{
				Pagination: Pagination{StartIndex: IntPtr(0), MaxResults: IntPtr(-5)},
			},
			want: url.Values{
				"start-index": {"0"},
				"max-results": {"-5"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Values())
		})
	}
}
