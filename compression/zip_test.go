package compression_test

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucianopaz/compress-pickle/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArchive assembles a zip archive with the given member names and bodies.
func buildArchive(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestZip_MemberNaming(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := b.NewWriter(&buf, compression.Params{
		Level:         compression.DefaultLevel,
		ArchiveMember: "payload.gob",
	})
	require.NoError(t, err)
	_, err = w.Write([]byte("zip body"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "payload.gob", zr.File[0].Name)

	// Explicit member on read.
	r, err := b.NewReader(bytes.NewReader(buf.Bytes()), compression.Params{
		Level:         compression.DefaultLevel,
		ArchiveMember: "payload.gob",
	})
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("zip body"), got)
}

func TestZip_DefaultMemberName(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := b.NewWriter(&buf, defaultParams())
	require.NoError(t, err)
	_, err = w.Write([]byte("anonymous"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, compression.DefaultMember, zr.File[0].Name)
}

func TestZip_MissingExplicitMember(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{"present": []byte("x")})
	_, err = b.NewReader(bytes.NewReader(blob), compression.Params{
		Level:         compression.DefaultLevel,
		ArchiveMember: "absent",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, compression.ErrArchiveMember)
	assert.Contains(t, err.Error(), "absent")
}

func TestZip_SingleMemberFallback(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{"odd-name.dat": []byte("solo")})
	r, err := b.NewReader(bytes.NewReader(blob), defaultParams())
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("solo"), got)
}

func TestZip_MultiMemberUsesDefault(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{
		"other":                   []byte("no"),
		compression.DefaultMember: []byte("yes"),
	})
	r, err := b.NewReader(bytes.NewReader(blob), defaultParams())
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("yes"), got)
}

func TestZip_MultiMemberAmbiguous(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{
		"first":  []byte("a"),
		"second": []byte("b"),
	})
	_, err = b.NewReader(bytes.NewReader(blob), defaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, compression.ErrArchiveMember)
}

func TestZip_ReadFromPlainReader(t *testing.T) {
	// A bytes.Buffer is not an io.ReaderAt, so the backend has to buffer it.
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{compression.DefaultMember: []byte("buffered")})
	var stream bytes.Buffer
	stream.Write(blob)

	r, err := b.NewReader(&stream, defaultParams())
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("buffered"), got)
}

func TestZip_ReadFromFile(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{compression.DefaultMember: []byte("on disk")})
	path := filepath.Join(t.TempDir(), "archive.zip")
	require.NoError(t, os.WriteFile(path, blob, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	r, err := b.NewReader(f, defaultParams())
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("on disk"), got)
}

// trackedReaderAt counts sequential reads while exposing random access, the
// shape of a reader already wrapped for byte accounting.
type trackedReaderAt struct {
	*bytes.Reader
	reads int
}

func (r *trackedReaderAt) Read(p []byte) (int, error) {
	r.reads++
	return r.Reader.Read(p)
}

func TestZip_ReaderAtSkipsBuffering(t *testing.T) {
	b, err := compression.Get("zip")
	require.NoError(t, err)

	blob := buildArchive(t, map[string][]byte{compression.DefaultMember: []byte("random access")})
	src := &trackedReaderAt{Reader: bytes.NewReader(blob)}

	r, err := b.NewReader(src, defaultParams())
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("random access"), got)
	assert.Zero(t, src.reads, "archive should be read through ReadAt, not consumed sequentially")
}

func TestZip_LevelRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("deflate me "), 256)
	blob := compress(t, "zip", payload, compression.Params{Level: 9})
	assert.Equal(t, payload, decompress(t, "zip", blob, defaultParams()))
	assert.Less(t, len(blob), len(payload))
}
