// Copyright (c) 2026 Luciano Paz
// Author: Luciano Paz (https://github.com/lucianopaz)
//
// options.go — per-call configuration for Dump and Load built from
// functional options, with defaults resolved against the codec and
// compression registries.

package compresspickle

import (
	"fmt"

	"github.com/lucianopaz/compress-pickle/codec"
	"github.com/lucianopaz/compress-pickle/compression"
	"github.com/lucianopaz/compress-pickle/internal/clock"
	"github.com/lucianopaz/compress-pickle/internal/metrics"
)

// Re-export types so callers only import this package.
type Codec = codec.Codec
type Compressor = compression.Backend
type Metrics = metrics.Recorder
type Stats = metrics.Stats
type Snapshot = metrics.Snapshot

// DefaultLevel selects each backend's own default compression level.
const DefaultLevel = compression.DefaultLevel

// ExtensionPolicy controls what happens when a filename extension is not in
// the compression registry.
type ExtensionPolicy int

const (
	// ExtensionError fails the call with ErrUnknownExtension.
	ExtensionError ExtensionPolicy = iota
	// ExtensionIgnore stores or reads the payload uncompressed.
	ExtensionIgnore
	// ExtensionWarn logs a warning, then behaves like ExtensionIgnore.
	ExtensionWarn
)

// valid reports whether p is one of the declared policy constants.
func (p ExtensionPolicy) valid() bool {
	return p >= ExtensionError && p <= ExtensionWarn
}

// Option configures a single Dump or Load call.
type Option func(*config)

type config struct {
	codecName       string
	compressionName string
	level           int
	archiveMember   string
	defaultExt      bool
	policy          ExtensionPolicy
	openFlag        int
	encryptionKey   []byte

	codec     codec.Codec
	encryptor Encryptor
	logger    Logger
	metrics   Metrics
	clock     clock.Clock
}

// WithCodec selects the serialization codec by registry name ("gob", "json",
// "msgpack", "cbor", "yaml", "protobuf"). The default is gob.
func WithCodec(name string) Option {
	return func(c *config) { c.codecName = name }
}

// WithCompression selects the compression backend by registry name or alias,
// bypassing filename inference.
func WithCompression(name string) Option {
	return func(c *config) { c.compressionName = name }
}

// WithLevel sets the compression level. Each backend interprets the value on
// its native scale; DefaultLevel picks the backend's own default.
func WithLevel(level int) Option {
	return func(c *config) { c.level = level }
}

// WithArchiveMember names the zip archive member to write or read. It
// defaults to the basename of the target path, or "default" when dumping to
// streams and byte slices. Other backends ignore it.
func WithArchiveMember(name string) Option {
	return func(c *config) { c.archiveMember = name }
}

// WithoutDefaultExtension keeps the path exactly as given instead of
// rewriting it to carry the compression backend's default extension.
func WithoutDefaultExtension() Option {
	return func(c *config) { c.defaultExt = false }
}

// WithExtensionPolicy sets how unknown filename extensions are handled when
// the compression has to be inferred. The default is ExtensionError; values
// outside the declared constants fail the call with ErrInvalidPolicy.
func WithExtensionPolicy(p ExtensionPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithOpenFlag overrides the os.OpenFile flag for this call, replacing the
// flags registered for the chosen compression backend. Dump can append
// instead of truncate this way, or refuse to overwrite with os.O_EXCL.
// Stream and byte slice calls open no files and ignore it.
func WithOpenFlag(flag int) Option {
	return func(c *config) { c.openFlag = flag }
}

// WithLogger routes warnings to l instead of discarding them.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics records per-call counters and latencies on m.
func WithMetrics(m Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithEncryptionKey seals the compressed payload with AES-256-GCM before it
// is written. The key must be exactly 32 bytes. Load calls need the same key.
func WithEncryptionKey(key []byte) Option {
	return func(c *config) { c.encryptionKey = key }
}

// withClock overrides the time source. Test hook.
func withClock(cl clock.Clock) Option {
	return func(c *config) { c.clock = cl }
}

func newConfig(opts []Option) (*config, error) {
	c := &config{level: compression.DefaultLevel, defaultExt: true, openFlag: -1}
	for _, opt := range opts {
		opt(c)
	}
	if !c.policy.valid() {
		return nil, fmt.Errorf("%w (%d)", ErrInvalidPolicy, c.policy)
	}
	if c.codecName != "" {
		cd, err := codec.Get(c.codecName)
		if err != nil {
			return nil, err
		}
		c.codec = cd
	}
	if c.compressionName != "" {
		name, err := compression.Resolve(c.compressionName)
		if err != nil {
			return nil, err
		}
		c.compressionName = name
	}
	if len(c.encryptionKey) > 0 {
		enc, err := NewAES256GCM(c.encryptionKey)
		if err != nil {
			return nil, err
		}
		c.encryptor = enc
	}
	c.defaults()
	return c, nil
}

func (c *config) defaults() {
	if c.codec == nil {
		c.codec = codec.Default
	}
	if c.logger == nil {
		c.logger = noopLogger{}
	}
	if c.metrics == nil {
		c.metrics = metrics.Noop{}
	}
	if c.clock == nil {
		c.clock = clock.Real{}
	}
}
