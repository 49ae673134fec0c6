package compression

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4 wraps the lz4 frame format. Level 0 (and DefaultLevel) selects the fast
// path; levels 1-9 select the slower high-compression modes.
type LZ4 struct{}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// NewWriter returns an lz4-compressing writer around w.
func (LZ4) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if p.Level != DefaultLevel {
		level := p.Level
		if level < 0 {
			level = 0
		}
		if level >= len(lz4Levels) {
			level = len(lz4Levels) - 1
		}
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
			return nil, err
		}
	}
	return zw, nil
}

// NewReader returns an lz4-decompressing reader around r.
func (LZ4) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }

func init() {
	MustRegister(Registration{Backend: LZ4{}, Extensions: []string{"lz4"}})
}
