package compression

import (
	"compress/gzip"
	"io"
	"sync"
)

// Gzip wraps compress/gzip. Writers at DefaultLevel are pooled and reset
// between uses; explicit levels allocate a fresh writer.
type Gzip struct{}

var gzipPool = sync.Pool{
	New: func() any { return gzip.NewWriter(io.Discard) },
}

// NewWriter returns a gzip-compressing writer around w.
func (Gzip) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	if p.Level == DefaultLevel {
		zw := gzipPool.Get().(*gzip.Writer)
		zw.Reset(w)
		return &pooledGzipWriter{Writer: zw}, nil
	}
	return gzip.NewWriterLevel(w, p.Level)
}

// NewReader returns a gzip-decompressing reader around r.
func (Gzip) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// Name returns "gzip".
func (Gzip) Name() string { return "gzip" }

type pooledGzipWriter struct {
	*gzip.Writer
}

// Close flushes the gzip frame and returns the writer to the pool.
func (p *pooledGzipWriter) Close() error {
	if p.Writer == nil {
		return nil
	}
	err := p.Writer.Close()
	gzipPool.Put(p.Writer)
	p.Writer = nil
	return err
}

func init() {
	MustRegister(Registration{Backend: Gzip{}, Extensions: []string{"gz"}})
}
