package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CBOR is a codec using Concise Binary Object Representation (RFC 8949).
type CBOR struct{}

// Encode serializes v onto w as CBOR.
func (CBOR) Encode(w io.Writer, v any) error {
	return cbor.NewEncoder(w).Encode(v)
}

// Decode deserializes CBOR from r into v.
func (CBOR) Decode(r io.Reader, v any) error {
	return cbor.NewDecoder(r).Decode(v)
}

// Name returns "cbor".
func (CBOR) Name() string { return "cbor" }

func init() { MustRegister(CBOR{}) }
