package codec

import (
	"encoding/gob"
	"io"
)

// Gob is the default codec, wrapping the standard library's native binary
// object serialization.
type Gob struct{}

// Encode serializes v onto w as a gob stream.
func (Gob) Encode(w io.Writer, v any) error {
	return gob.NewEncoder(w).Encode(v)
}

// Decode deserializes a gob stream from r into v.
func (Gob) Decode(r io.Reader, v any) error {
	return gob.NewDecoder(r).Decode(v)
}

// Name returns "gob".
func (Gob) Name() string { return "gob" }

// Default is the codec used when no codec is named explicitly.
var Default Codec = Gob{}

func init() { MustRegister(Gob{}) }
