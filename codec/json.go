// Copyright (c) 2026 Luciano Paz
// Author: Luciano Paz (https://github.com/lucianopaz)
//
// json.go — JSON codec wrapping encoding/json; used when human-readable
// output matters more than the compactness of the binary codecs.

package codec

import (
	"encoding/json"
	"io"
)

// JSON is a codec using standard library encoding/json.
type JSON struct{}

// Encode serializes v onto w as JSON followed by a newline.
func (JSON) Encode(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// Decode deserializes JSON from r into v.
func (JSON) Decode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }

func init() { MustRegister(JSON{}) }
