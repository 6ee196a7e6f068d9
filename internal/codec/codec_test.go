package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedkit/gdata.go/pkg/constants"
)

func TestByName(t *testing.T) {
	c, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeCBOR, c.ContentType())

	c, err = ByName(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, c.ContentType())

	_, err = ByName("xml")
	assert.ErrorIs(t, err, constants.ErrUnknownCodec)
}

func TestCBORDecodesMapsWithStringKeys(t *testing.T) {
	c := NewCBOR()
	data, err := c.Marshal(map[string]any{"kind": "cell", "row": 1})
	require.NoError(t, err)

	var v any
	require.NoError(t, c.Unmarshal(data, &v))

	m, ok := v.(map[string]any)
	require.True(t, ok, "expected map[string]any, got %T", v)
	assert.Equal(t, "cell", m["kind"])
}

func TestRoundTripStruct(t *testing.T) {
	type record struct {
		Row   int    `cbor:"row" json:"row"`
		Value string `cbor:"value" json:"value"`
	}

	for _, c := range []Codec{NewCBOR(), NewJSON()} {
		t.Run(c.ContentType(), func(t *testing.T) {
			data, err := c.Marshal(record{Row: 2, Value: "x"})
			require.NoError(t, err)

			var got record
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, record{Row: 2, Value: "x"}, got)
		})
	}
}
