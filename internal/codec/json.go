package codec

import (
	"io"
	"reflect"

	"github.com/goccy/go-json"
)

const ContentTypeJSON = "application/json"

var mapStringAnyType = reflect.TypeOf(map[string]any(nil))

type jsonCodec struct{}

// NewJSON returns a codec for backends that answer with JSON feeds.
func NewJSON() Codec {
	return jsonCodec{}
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

func (jsonCodec) Unmarshal(data []byte, dst any) error {
	return json.Unmarshal(data, dst)
}

func (jsonCodec) NewDecoder(r io.Reader) Decoder {
	return json.NewDecoder(r)
}

func (jsonCodec) ContentType() string {
	return ContentTypeJSON
}
