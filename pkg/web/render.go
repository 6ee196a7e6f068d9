package web

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/feedkit/gdata.go/internal/codec"
)

// Renderer writes a Page in one output format.
type Renderer interface {
	ContentType() string
	Render(w io.Writer, v any) error
}

type JSONRenderer struct {
	Indent string
}

func (r JSONRenderer) ContentType() string {
	return codec.ContentTypeJSON
}

func (r JSONRenderer) Render(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	return enc.Encode(v)
}

type YAMLRenderer struct{}

func (YAMLRenderer) ContentType() string {
	return "application/yaml"
}

func (YAMLRenderer) Render(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RendererFor returns the renderer named "json" or "yaml".
func RendererFor(format string) (Renderer, error) {
	switch format {
	case "", "json":
		return JSONRenderer{}, nil
	case "yaml", "yml":
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
