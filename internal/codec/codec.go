package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/feedkit/gdata.go/pkg/constants"
)

type Encoder interface {
	Encode(v any) error
}

type Decoder interface {
	Decode(v any) error
}

type Marshaler interface {
	Marshal(v any) ([]byte, error)
	NewEncoder(w io.Writer) Encoder
}

type Unmarshaler interface {
	Unmarshal(data []byte, dst any) error
	NewDecoder(r io.Reader) Decoder
}

// Codec is a Marshaler and Unmarshaler pair bound to one media type.
type Codec interface {
	Marshaler
	Unmarshaler
	ContentType() string
}

// ByName returns the codec registered under name ("cbor" or "json").
// An empty name selects CBOR.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cbor":
		return NewCBOR(), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownCodec, name)
	}
}
