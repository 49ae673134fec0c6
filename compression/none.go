package compression

import (
	"io"
	"os"
)

// None is the pass-through backend used when no compression is wanted.
type None struct{}

// NewWriter returns w behind a no-op closer.
func (None) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// NewReader returns r behind a no-op closer.
func (None) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// Name returns "none".
func (None) Name() string { return "none" }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func init() {
	// Uncompressed files open in read-write mode; all other backends open
	// write-truncate and read-only.
	MustRegister(Registration{
		Backend:    None{},
		Extensions: []string{"bin", "gob"},
		WriteFlag:  os.O_RDWR | os.O_CREATE | os.O_TRUNC,
		ReadFlag:   os.O_RDWR,
	})
	MustAlias("pickle", "none")
}
