// Package codec provides the serialization backends and the open registry that
// resolves codec names to implementations.
package codec

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Codec encodes and decodes values on binary streams.
type Codec interface {
	// Name returns the codec identifier used for registry lookups and diagnostics.
	Name() string
	// Encode serializes v onto w.
	Encode(w io.Writer, v any) error
	// Decode deserializes the next value from r into v (must be a pointer).
	Decode(r io.Reader, v any) error
}

// Registry errors
var (
	ErrUnknown         = errors.New("codec: unknown codec")
	ErrDuplicateName   = errors.New("codec: codec already registered")
	ErrUnknownAlias    = errors.New("codec: alias target not registered")
	ErrNotProtoMessage = errors.New("codec: value does not implement proto.Message")
)

type registry struct {
	mu      sync.RWMutex
	codecs  map[string]Codec
	aliases map[string]string
}

var defaultRegistry = &registry{
	codecs:  make(map[string]Codec),
	aliases: make(map[string]string),
}

// Register adds c under its Name. The name must not collide with a previously
// registered codec or alias.
func Register(c Codec) error {
	r := defaultRegistry
	r.mu.Lock()
	defer r.mu.Unlock()
	name := c.Name()
	if _, exists := r.codecs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if _, exists := r.aliases[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.codecs[name] = c
	return nil
}

// MustRegister registers c and panics on error. Intended for package init.
func MustRegister(c Codec) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Alias registers alias as an alternate name for an already registered codec.
func Alias(alias, name string) error {
	r := defaultRegistry
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codecs[alias]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, alias)
	}
	if _, exists := r.aliases[alias]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, alias)
	}
	if _, exists := r.codecs[name]; !exists {
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

// Get returns the codec registered under name, resolving aliases.
func Get(name string) (Codec, error) {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	c, ok := r.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known codecs: %s; forgotten Register?)",
			ErrUnknown, name, strings.Join(r.known(), ", "))
	}
	return c, nil
}

// Known returns the sorted canonical names of all registered codecs.
// Aliases are not included.
func Known() []string {
	r := defaultRegistry
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.known()
}

func (r *registry) known() []string {
	out := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
