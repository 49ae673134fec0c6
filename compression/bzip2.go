package compression

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bzip2 wraps the dsnet bzip2 implementation, which unlike the standard
// library's read-only compress/bzip2 can also write.
type Bzip2 struct{}

// NewWriter returns a bzip2-compressing writer around w. Levels 1-9 select
// the block size; DefaultLevel maps to the package default.
func (Bzip2) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	level := p.Level
	if level == DefaultLevel {
		level = bzip2.DefaultCompression
	}
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
}

// NewReader returns a bzip2-decompressing reader around r.
func (Bzip2) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

// Name returns "bzip2".
func (Bzip2) Name() string { return "bzip2" }

func init() {
	MustRegister(Registration{Backend: Bzip2{}, Extensions: []string{"bz", "bz2"}})
	MustAlias("bz2", "bzip2")
}
