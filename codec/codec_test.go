package codec_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/lucianopaz/compress-pickle/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

type item struct {
	ID   int    `json:"id" msgpack:"id" yaml:"id" cbor:"id"`
	Name string `json:"name" msgpack:"name" yaml:"name" cbor:"name"`
}

// ── Round-trips ──────────────────────────────────────────────────────────────

func roundTrip(t *testing.T, c codec.Codec, orig item) item {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, orig))
	var got item
	require.NoError(t, c.Decode(&buf, &got))
	return got
}

func TestGobCodec(t *testing.T) {
	c := codec.Gob{}
	orig := item{ID: 1, Name: "test"}
	assert.Equal(t, orig, roundTrip(t, c, orig))
	assert.Equal(t, "gob", c.Name())
}

func TestJSONCodec(t *testing.T) {
	c := codec.JSON{}
	orig := item{ID: 2, Name: "readable"}
	assert.Equal(t, orig, roundTrip(t, c, orig))
	assert.Equal(t, "json", c.Name())
}

func TestMsgPackCodec(t *testing.T) {
	c := codec.MsgPack{}
	orig := item{ID: 42, Name: "pack"}
	assert.Equal(t, orig, roundTrip(t, c, orig))
	assert.Equal(t, "msgpack", c.Name())
}

func TestCBORCodec(t *testing.T) {
	c := codec.CBOR{}
	orig := item{ID: 7, Name: "concise"}
	assert.Equal(t, orig, roundTrip(t, c, orig))
	assert.Equal(t, "cbor", c.Name())
}

func TestYAMLCodec(t *testing.T) {
	c := codec.YAML{}
	orig := item{ID: 9, Name: "document"}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, orig))
	// The encoder must have flushed without an explicit Close from the caller.
	assert.Contains(t, buf.String(), "name: document")

	var got item
	require.NoError(t, c.Decode(&buf, &got))
	assert.Equal(t, orig, got)
	assert.Equal(t, "yaml", c.Name())
}

func TestProtoCodec(t *testing.T) {
	c := codec.Proto{}
	orig := &descriptorpb.FileDescriptorProto{Name: proto.String("roundtrip.proto")}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, orig))

	got := &descriptorpb.FileDescriptorProto{}
	require.NoError(t, c.Decode(&buf, got))
	assert.True(t, proto.Equal(orig, got))
	assert.Equal(t, "protobuf", c.Name())
}

func TestProtoCodec_RejectsNonMessage(t *testing.T) {
	c := codec.Proto{}
	err := c.Encode(io.Discard, item{ID: 1})
	assert.ErrorIs(t, err, codec.ErrNotProtoMessage)

	err = c.Decode(bytes.NewReader(nil), &item{})
	assert.ErrorIs(t, err, codec.ErrNotProtoMessage)
}

func TestDefault_IsGob(t *testing.T) {
	assert.Equal(t, "gob", codec.Default.Name())
}

// ── Registry ─────────────────────────────────────────────────────────────────

type fakeCodec struct{ name string }

func (f fakeCodec) Name() string                  { return f.name }
func (fakeCodec) Encode(w io.Writer, v any) error { return nil }
func (fakeCodec) Decode(r io.Reader, v any) error { return nil }

func TestRegistry_Get(t *testing.T) {
	for _, name := range []string{"gob", "json", "msgpack", "cbor", "yaml", "protobuf"} {
		c, err := codec.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := codec.Get("bson")
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrUnknown)
	assert.Contains(t, err.Error(), "bson")
}

func TestRegistry_AliasResolution(t *testing.T) {
	c, err := codec.Get("proto")
	require.NoError(t, err)
	assert.Equal(t, "protobuf", c.Name())
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	require.NoError(t, codec.Register(fakeCodec{name: "fake-dup"}))
	err := codec.Register(fakeCodec{name: "fake-dup"})
	assert.ErrorIs(t, err, codec.ErrDuplicateName)

	// A registered alias blocks the name for codecs too.
	err = codec.Register(fakeCodec{name: "proto"})
	assert.ErrorIs(t, err, codec.ErrDuplicateName)
}

func TestRegistry_AliasErrors(t *testing.T) {
	err := codec.Alias("fake-alias", "no-such-codec")
	assert.ErrorIs(t, err, codec.ErrUnknownAlias)

	err = codec.Alias("gob", "json")
	assert.ErrorIs(t, err, codec.ErrDuplicateName)

	require.NoError(t, codec.Alias("fake-alias", "gob"))
	err = codec.Alias("fake-alias", "json")
	assert.ErrorIs(t, err, codec.ErrDuplicateName)
}

func TestRegistry_Known(t *testing.T) {
	known := codec.Known()
	for _, name := range []string{"cbor", "gob", "json", "msgpack", "protobuf", "yaml"} {
		assert.Contains(t, known, name)
	}
	assert.NotContains(t, known, "proto", "aliases must not appear in Known")
	assert.IsIncreasing(t, known)
}
