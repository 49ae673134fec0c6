// Copyright (c) 2026 Luciano Paz
// Author: Luciano Paz (https://github.com/lucianopaz)
//
// errors.go — sentinel error variables returned by the public API, covering
// registry lookups, extension inference, and in-memory operations that need
// an explicit compression name.

// Package compresspickle serializes Go values to compressed files, streams,
// and byte slices. Codecs and compression backends are looked up by name in
// registries, and the compression method can be inferred from a filename
// extension.
package compresspickle

import (
	"errors"

	"github.com/lucianopaz/compress-pickle/codec"
	"github.com/lucianopaz/compress-pickle/compression"
)

// Registry errors, re-exported so callers only import this package.
var (
	ErrUnknownCompression = compression.ErrUnknown
	ErrUnknownCodec       = codec.ErrUnknown
	ErrUnknownExtension   = compression.ErrUnknownExtension
	ErrArchiveMember      = compression.ErrArchiveMember
)

// Inference errors
var (
	ErrCannotInfer   = errors.New("compresspickle: cannot infer compression without a filename")
	ErrInvalidPolicy = errors.New("compresspickle: invalid extension policy")
)

// Encryption errors
var (
	ErrKeySize = errors.New("compresspickle: encryption key must be exactly 32 bytes")
	ErrDecrypt = errors.New("compresspickle: decrypt failed")
)
