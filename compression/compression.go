// Copyright (c) 2026 Luciano Paz
// Author: Luciano Paz (https://github.com/lucianopaz)
//
// compression.go — Backend interface and the open registry mapping compression
// names to implementations, file extensions, and default file open flags.

// Package compression provides the stream compression backends and the open
// registry that resolves compression names and file extensions.
package compression

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// DefaultLevel selects each backend's own default compression level.
const DefaultLevel = -1

// Params carries per-call tuning for a backend.
type Params struct {
	// Level is the compression level. DefaultLevel means the backend default;
	// any other value has backend-specific meaning. Backends without level
	// support ignore it.
	Level int
	// ArchiveMember is the member name used by archive backends (zip).
	ArchiveMember string
}

// Backend opens compressing writers and decompressing readers around an
// underlying stream. Backends never close the underlying stream; the returned
// closers only finalize the compression frame.
type Backend interface {
	Name() string
	NewWriter(w io.Writer, p Params) (io.WriteCloser, error)
	NewReader(r io.Reader, p Params) (io.ReadCloser, error)
}

// Registry errors
var (
	ErrUnknown            = errors.New("compression: unknown compression")
	ErrDuplicateName      = errors.New("compression: compression already registered")
	ErrDuplicateExtension = errors.New("compression: extension already registered")
	ErrUnknownAlias       = errors.New("compression: alias target not registered")
	ErrUnknownExtension   = errors.New("compression: unregistered extension")
	ErrNoExtensions       = errors.New("compression: registration needs at least one extension")
	ErrArchiveMember      = errors.New("compression: archive member not found")
)

// Registration describes a backend and its registry metadata.
type Registration struct {
	Backend Backend
	// Extensions associated with the backend, leading dots optional. The first
	// entry is the default extension. Every extension maps to exactly one
	// backend across the whole registry.
	Extensions []string
	// WriteFlag is the os.OpenFile flag used when dumping to a path.
	// Zero means os.O_WRONLY|os.O_CREATE|os.O_TRUNC.
	WriteFlag int
	// ReadFlag is the os.OpenFile flag used when loading from a path.
	// Zero means os.O_RDONLY.
	ReadFlag int
}

type entry struct {
	backend    Backend
	extensions []string
	writeFlag  int
	readFlag   int
}

type registry struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	aliases    map[string]string
	extensions map[string]string // extension (no dot) -> canonical name
}

var defaultRegistry = &registry{
	entries:    make(map[string]*entry),
	aliases:    make(map[string]string),
	extensions: make(map[string]string),
}

// Register adds a backend under its Name together with its extensions and
// open flags. Names, aliases, and extensions must all be unique.
func Register(reg Registration) error {
	r := defaultRegistry
	r.mu.Lock()
	defer r.mu.Unlock()

	name := reg.Backend.Name()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if _, exists := r.aliases[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	exts := make([]string, 0, len(reg.Extensions))
	for _, ext := range reg.Extensions {
		ext = strings.TrimLeft(ext, ".")
		if ext == "" {
			continue
		}
		if holder, exists := r.extensions[ext]; exists {
			return fmt.Errorf("%w: %q is held by %q", ErrDuplicateExtension, ext, holder)
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return fmt.Errorf("%w: %q", ErrNoExtensions, name)
	}

	e := &entry{
		backend:    reg.Backend,
		extensions: exts,
		writeFlag:  reg.WriteFlag,
		readFlag:   reg.ReadFlag,
	}
	if e.writeFlag == 0 {
		e.writeFlag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	if e.readFlag == 0 {
		e.readFlag = os.O_RDONLY
	}

	r.entries[name] = e
	for _, ext := range exts {
		r.extensions[ext] = name
	}
	return nil
}

// MustRegister registers a backend and panics on error. Intended for package init.
func MustRegister(reg Registration) {
	if err := Register(reg); err != nil {
		panic(err)
	}
}

// Alias registers alias as an alternate name for an already registered backend.
func Alias(alias, name string) error {
	r := defaultRegistry
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[alias]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, alias)
	}
	if _, exists := r.aliases[alias]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, alias)
	}
	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownAlias, name)
	}
	r.aliases[alias] = name
	return nil
}

// MustAlias registers an alias and panics on error. Intended for package init.
func MustAlias(alias, name string) {
	if err := Alias(alias, name); err != nil {
		panic(err)
	}
}

// Get returns the backend registered under name, resolving aliases.
func Get(name string) (Backend, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.backend, nil
}

// Resolve returns the canonical name for name, resolving aliases.
func Resolve(name string) (string, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	if _, ok := r.entries[name]; !ok {
		return "", r.unknown(name)
	}
	return name, nil
}

// Known returns the sorted canonical names of all registered backends.
// Aliases are not included.
func Known() []string {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.known()
}

// Extensions returns a copy of the extension to canonical name table.
func Extensions() map[string]string {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.extensions))
	for ext, name := range r.extensions {
		out[ext] = name
	}
	return out
}

// FromExtension returns the canonical name of the backend registered for the
// given extension. A leading dot is accepted and ignored.
func FromExtension(ext string) (string, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	trimmed := strings.TrimLeft(ext, ".")
	name, ok := r.extensions[trimmed]
	if !ok {
		known := make([]string, 0, len(r.extensions))
		for e := range r.extensions {
			known = append(known, e)
		}
		sort.Strings(known)
		return "", fmt.Errorf("%w %q (registered extensions: %s)",
			ErrUnknownExtension, ext, strings.Join(known, ", "))
	}
	return name, nil
}

// DefaultExtension returns the default (first registered) extension of the
// named backend, without a leading dot.
func DefaultExtension(name string) (string, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return e.extensions[0], nil
}

// DefaultMapping returns a copy of the canonical name to default extension table.
func DefaultMapping() map[string]string {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.entries))
	for name, e := range r.entries {
		out[name] = e.extensions[0]
	}
	return out
}

// WriteFlag returns the os.OpenFile flag used when dumping to a path with the
// named backend.
func WriteFlag(name string) (int, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	return e.writeFlag, nil
}

// ReadFlag returns the os.OpenFile flag used when loading from a path with the
// named backend.
func ReadFlag(name string) (int, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	return e.readFlag, nil
}

func (r *registry) lookup(name string) (*entry, error) {
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	e, ok := r.entries[name]
	if !ok {
		return nil, r.unknown(name)
	}
	return e, nil
}

func (r *registry) unknown(name string) error {
	return fmt.Errorf("%w %q (known compressions: %s; forgotten Register?)",
		ErrUnknown, name, strings.Join(r.known(), ", "))
}

func (r *registry) known() []string {
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
