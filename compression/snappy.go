package compression

import (
	"io"

	"github.com/golang/snappy"
)

// Snappy wraps the snappy framing format (the .sz stream format, not the
// raw block encoding). Snappy has no levels; Params.Level is ignored.
type Snappy struct{}

// NewWriter returns a snappy-compressing writer around w.
func (Snappy) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}

// NewReader returns a snappy-decompressing reader around r.
func (Snappy) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

// Name returns "snappy".
func (Snappy) Name() string { return "snappy" }

func init() {
	MustRegister(Registration{Backend: Snappy{}, Extensions: []string{"sz"}})
}
