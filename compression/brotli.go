package compression

import (
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli wraps the brotli format. Levels 0-11 follow the brotli quality
// scale; DefaultLevel maps to the package default.
type Brotli struct{}

// NewWriter returns a brotli-compressing writer around w.
func (Brotli) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	level := p.Level
	if level == DefaultLevel {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

// NewReader returns a brotli-decompressing reader around r.
func (Brotli) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

// Name returns "brotli".
func (Brotli) Name() string { return "brotli" }

func init() {
	MustRegister(Registration{Backend: Brotli{}, Extensions: []string{"br"}})
}
