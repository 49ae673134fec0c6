package compression

import (
	"io"

	"github.com/ulikunitz/xz"
)

// LZMA wraps the xz container format. Both .lzma and .xz files are claimed;
// written output is always an xz stream. The level parameter is ignored, the
// xz writer picks its own dictionary parameters.
type LZMA struct{}

// NewWriter returns an xz-compressing writer around w.
func (LZMA) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

// NewReader returns an xz-decompressing reader around r.
func (LZMA) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	zr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(zr), nil
}

// Name returns "lzma".
func (LZMA) Name() string { return "lzma" }

func init() {
	MustRegister(Registration{Backend: LZMA{}, Extensions: []string{"lzma", "xz"}})
	MustAlias("xz", "lzma")
}
