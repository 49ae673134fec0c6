package compression

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd wraps the Zstandard format. Levels follow the zstd scale (1 fastest,
// 22 best); DefaultLevel maps to the encoder default.
type Zstd struct{}

// NewWriter returns a zstd-compressing writer around w.
func (Zstd) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	var opts []zstd.EOption
	if p.Level != DefaultLevel {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(p.Level)))
	}
	return zstd.NewWriter(w, opts...)
}

// NewReader returns a zstd-decompressing reader around r. Closing it releases
// the decoder's goroutines.
func (Zstd) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr.IOReadCloser(), nil
}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

func init() {
	MustRegister(Registration{Backend: Zstd{}, Extensions: []string{"zst", "zstd"}})
	MustAlias("zstandard", "zstd")
}
