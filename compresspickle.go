package compresspickle

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucianopaz/compress-pickle/compression"
	"github.com/lucianopaz/compress-pickle/internal/clock"
)

// ────────────────────────────────────────────────────────────────────────────
// Files
// ────────────────────────────────────────────────────────────────────────────

// Dump serializes v with the configured codec and writes it to the file at
// path, compressed according to the filename extension unless WithCompression
// overrides it. Unless WithoutDefaultExtension is given, the path is first
// rewritten to carry the compression backend's default extension, so
// Dump("data", v, WithCompression("gzip")) writes data.gz.
func Dump(path string, v any, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	name, finalPath, err := cfg.resolvePath(path)
	if err != nil {
		return err
	}
	flag := cfg.openFlag
	if flag < 0 {
		flag, err = compression.WriteFlag(name)
		if err != nil {
			return err
		}
	}
	f, err := os.OpenFile(finalPath, flag, 0o644)
	if err != nil {
		return err
	}
	member := cfg.archiveMember
	if member == "" {
		member = filepath.Base(finalPath)
	}
	cfg.logger.Debug("dump", "path", finalPath, "compression", name, "codec", cfg.codec.Name())
	err = cfg.dumpTo(f, name, member, v)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Load reads the file at path and decodes it into v, which must be a pointer
// compatible with the configured codec. Compression is inferred from the
// filename the same way Dump infers it, and the path undergoes the same
// default-extension rewrite, so Load("data", v, WithCompression("gzip"))
// reads data.gz.
func Load(path string, v any, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	name, finalPath, err := cfg.resolvePath(path)
	if err != nil {
		return err
	}
	flag := cfg.openFlag
	if flag < 0 {
		flag, err = compression.ReadFlag(name)
		if err != nil {
			return err
		}
	}
	f, err := os.OpenFile(finalPath, flag, 0)
	if err != nil {
		return err
	}
	member := cfg.archiveMember
	if member == "" {
		member = filepath.Base(finalPath)
	}
	cfg.logger.Debug("load", "path", finalPath, "compression", name, "codec", cfg.codec.Name())
	err = cfg.loadFrom(f, name, member, v)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ────────────────────────────────────────────────────────────────────────────
// Streams
// ────────────────────────────────────────────────────────────────────────────

// DumpWriter serializes v onto w. Streams carry no filename, so the
// compression must be named explicitly with WithCompression ("none" included)
// or the call fails with ErrCannotInfer. The writer is left open.
func DumpWriter(w io.Writer, v any, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if cfg.compressionName == "" {
		return ErrCannotInfer
	}
	return cfg.dumpTo(w, cfg.compressionName, cfg.archiveMember, v)
}

// LoadReader decodes a value from r into v. Like DumpWriter it requires an
// explicit WithCompression and leaves the reader open.
func LoadReader(r io.Reader, v any, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if cfg.compressionName == "" {
		return ErrCannotInfer
	}
	return cfg.loadFrom(r, cfg.compressionName, cfg.archiveMember, v)
}

// ────────────────────────────────────────────────────────────────────────────
// Bytes
// ────────────────────────────────────────────────────────────────────────────

// Dumps serializes v to a byte slice. The compression must be named
// explicitly with WithCompression.
func Dumps(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := DumpWriter(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Loads decodes a value previously produced by Dumps into v. The compression
// must be named explicitly with WithCompression.
func Loads(data []byte, v any, opts ...Option) error {
	return LoadReader(bytes.NewReader(data), v, opts...)
}

// ────────────────────────────────────────────────────────────────────────────
// Dispatch
// ────────────────────────────────────────────────────────────────────────────

// resolvePath settles the compression name and the final on-disk path for a
// path-based call.
func (c *config) resolvePath(path string) (string, string, error) {
	name := c.compressionName
	if name == "" {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		var err error
		name, err = compression.FromExtension(ext)
		if err != nil {
			switch c.policy {
			case ExtensionIgnore:
				name = "none"
			case ExtensionWarn:
				c.logger.Warn("unknown extension, treating file as uncompressed",
					"path", path, "extension", ext)
				name = "none"
			default:
				return "", "", fmt.Errorf("%w (path %q)", err, path)
			}
		}
	}
	finalPath := path
	if c.defaultExt {
		var err error
		finalPath, err = DefaultExtensionPath(path, name)
		if err != nil {
			return "", "", err
		}
	}
	return name, finalPath, nil
}

func (c *config) dumpTo(w io.Writer, name, member string, v any) error {
	start := c.clock.Now()
	cw := &countingWriter{w: w}
	if err := c.writePayload(cw, name, member, v); err != nil {
		c.metrics.RecordError("dump")
		return err
	}
	c.metrics.RecordDump(c.codec.Name(), name, cw.n, clock.Since(c.clock, start))
	return nil
}

func (c *config) loadFrom(r io.Reader, name, member string, v any) error {
	start := c.clock.Now()
	cr, counter := newCountingReader(r)
	if err := c.readPayload(cr, name, member, v); err != nil {
		c.metrics.RecordError("load")
		return err
	}
	c.metrics.RecordLoad(c.codec.Name(), name, counter.n, clock.Since(c.clock, start))
	return nil
}

// writePayload encodes and compresses v onto w, sealing the result when an
// encryption key is configured. Sealing buffers the whole payload because
// AES-GCM authenticates the message as a unit.
func (c *config) writePayload(w io.Writer, name, member string, v any) error {
	if c.encryptor == nil {
		return c.writeStream(w, name, member, v)
	}
	var buf bytes.Buffer
	if err := c.writeStream(&buf, name, member, v); err != nil {
		return err
	}
	sealed, err := c.encryptor.Encrypt(buf.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(sealed)
	return err
}

func (c *config) writeStream(w io.Writer, name, member string, v any) error {
	b, err := compression.Get(name)
	if err != nil {
		return err
	}
	zw, err := b.NewWriter(w, compression.Params{Level: c.level, ArchiveMember: member})
	if err != nil {
		return err
	}
	if err := c.codec.Encode(zw, v); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

func (c *config) readPayload(r io.Reader, name, member string, v any) error {
	if c.encryptor != nil {
		sealed, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		plain, err := c.encryptor.Decrypt(sealed)
		if err != nil {
			return err
		}
		r = bytes.NewReader(plain)
	}
	b, err := compression.Get(name)
	if err != nil {
		return err
	}
	zr, err := b.NewReader(r, compression.Params{Level: c.level, ArchiveMember: member})
	if err != nil {
		return err
	}
	if err := c.codec.Decode(zr, v); err != nil {
		_ = zr.Close()
		return err
	}
	return zr.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// countingReaderAt keeps ReadAt and a known size visible through the byte
// accounting wrapper, so the zip backend is not forced to buffer sources
// that already support random access.
type countingReaderAt struct {
	countingReader
	ra   io.ReaderAt
	size int64
}

func (cr *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	n, err := cr.ra.ReadAt(p, off)
	cr.n += int64(n)
	return n, err
}

func (cr *countingReaderAt) Size() int64 { return cr.size }

// newCountingReader wraps r for byte accounting. The returned counter is
// shared with the wrapper and holds the running total.
func newCountingReader(r io.Reader) (io.Reader, *countingReader) {
	if ra, ok := r.(io.ReaderAt); ok {
		if size, sized := readerSize(r); sized {
			cra := &countingReaderAt{countingReader: countingReader{r: r}, ra: ra, size: size}
			return cra, &cra.countingReader
		}
	}
	cr := &countingReader{r: r}
	return cr, cr
}

// readerSize reports the total size of r when it is knowable without
// consuming the stream. Covers bytes.Reader (Size) and os.File (Stat).
func readerSize(r io.Reader) (int64, bool) {
	switch v := r.(type) {
	case interface{ Size() int64 }:
		return v.Size(), true
	case interface{ Stat() (os.FileInfo, error) }:
		st, err := v.Stat()
		if err != nil {
			return 0, false
		}
		return st.Size(), true
	}
	return 0, false
}
