// Copyright (c) 2026 Luciano Paz
// Author: Luciano Paz (https://github.com/lucianopaz)
//
// zip.go — archive backend storing the payload as a single member of a zip
// archive, with member targeting for reads of multi-member archives.

package compression

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"
)

// DefaultMember is the archive member name used when none is configured and
// the destination has no file name to derive one from.
const DefaultMember = "default"

// Zip wraps archive/zip. Writing creates an archive holding the payload as a
// single deflate-compressed member; reading opens one member of an existing
// archive.
type Zip struct{}

// NewWriter returns a writer that stores everything written to it as one
// archive member. Closing it writes the archive's central directory; the
// underlying stream stays open.
func (Zip) NewWriter(w io.Writer, p Params) (io.WriteCloser, error) {
	member := p.ArchiveMember
	if member == "" {
		member = DefaultMember
	}
	zw := zip.NewWriter(w)
	if p.Level != DefaultLevel {
		level := p.Level
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}
	mw, err := zw.Create(member)
	if err != nil {
		_ = zw.Close()
		return nil, err
	}
	return &zipMemberWriter{member: mw, arch: zw}, nil
}

// NewReader opens an archive member of the zip archive read from r.
// Params.ArchiveMember selects the member; when empty, a single-member
// archive opens its only member, and multi-member archives fall back to
// DefaultMember. Readers without random access (not a file, a byte reader,
// or a wrapper forwarding ReadAt and Size) are buffered whole in memory.
func (Zip) NewReader(r io.Reader, p Params) (io.ReadCloser, error) {
	ra, size, err := randomAccess(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, err
	}
	return openArchiveMember(zr, p.ArchiveMember)
}

// Name returns "zip".
func (Zip) Name() string { return "zip" }

type zipMemberWriter struct {
	member io.Writer
	arch   *zip.Writer
}

func (z *zipMemberWriter) Write(p []byte) (int, error) {
	return z.member.Write(p)
}

func (z *zipMemberWriter) Close() error {
	return z.arch.Close()
}

// sizedReaderAt is the random access surface needed to open an archive
// without buffering it. bytes.Reader satisfies it directly, and wrappers can
// satisfy it by forwarding ReadAt and Size from what they wrap.
type sizedReaderAt interface {
	io.ReaderAt
	Size() int64
}

func randomAccess(r io.Reader) (io.ReaderAt, int64, error) {
	switch v := r.(type) {
	case sizedReaderAt:
		return v, v.Size(), nil
	case *os.File:
		st, err := v.Stat()
		if err != nil {
			return nil, 0, err
		}
		return v, st.Size(), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(b), int64(len(b)), nil
}

func openArchiveMember(zr *zip.Reader, member string) (io.ReadCloser, error) {
	if member != "" {
		for _, f := range zr.File {
			if f.Name == member {
				return f.Open()
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrArchiveMember, member)
	}
	if len(zr.File) == 1 {
		return zr.File[0].Open()
	}
	for _, f := range zr.File {
		if f.Name == DefaultMember {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("%w: archive has %d members and none named %q",
		ErrArchiveMember, len(zr.File), DefaultMember)
}

func init() {
	MustRegister(Registration{Backend: Zip{}, Extensions: []string{"zip"}})
	MustAlias("zipfile", "zip")
}
