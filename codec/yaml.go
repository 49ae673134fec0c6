package codec

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAML is a codec using YAML documents. Larger than the binary codecs but
// diffable and hand-editable.
type YAML struct{}

// Encode serializes v onto w as a YAML document.
// The yaml encoder buffers internally, so Close is required to flush.
func (YAML) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Decode deserializes a YAML document from r into v.
func (YAML) Decode(r io.Reader, v any) error {
	return yaml.NewDecoder(r).Decode(v)
}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }

func init() { MustRegister(YAML{}) }
