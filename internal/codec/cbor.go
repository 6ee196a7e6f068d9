package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

const ContentTypeCBOR = "application/cbor"

type cborCodec struct {
	em cbor.EncMode
	dm cbor.DecMode
}

// NewCBOR returns the default feed codec.
// Maps decode to map[string]any so that undeclared entry content stays
// addressable by field name.
func NewCBOR() Codec {
	em, err := cbor.EncOptions{
		Sort: cbor.SortCanonical,
		Time: cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(err)
	}

	dm, err := cbor.DecOptions{
		DefaultMapType: mapStringAnyType,
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return &cborCodec{em: em, dm: dm}
}

func (c *cborCodec) Marshal(v any) ([]byte, error) {
	return c.em.Marshal(v)
}

func (c *cborCodec) NewEncoder(w io.Writer) Encoder {
	return c.em.NewEncoder(w)
}

func (c *cborCodec) Unmarshal(data []byte, dst any) error {
	return c.dm.Unmarshal(data, dst)
}

func (c *cborCodec) NewDecoder(r io.Reader) Decoder {
	return c.dm.NewDecoder(r)
}

func (c *cborCodec) ContentType() string {
	return ContentTypeCBOR
}
