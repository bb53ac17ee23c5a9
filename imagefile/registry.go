// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imagefile

import (
	"errors"
	"sort"
	"sync"
)

// globalRegistry holds the built-in formats and anything added with Register.
var globalRegistry = &Registry{}

// Registry maps format names to encoders.
//
// Example registration:
//
//	func init() {
//	    imagefile.Register(qoiEncoder{})
//	}
//
// Example usage:
//
//	enc, err := imagefile.Lookup("png")
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Encoder
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Lookup.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Encoder),
	}
}

// Register adds an encoder to the global registry under enc.Name().
// Registering a name that already exists replaces the previous entry.
func Register(enc Encoder) {
	globalRegistry.Register(enc)
}

// Lookup returns the globally registered encoder for name.
func Lookup(name string) (Encoder, error) {
	return globalRegistry.Lookup(name)
}

// Names returns all globally registered format names in sorted order.
func Names() []string {
	return globalRegistry.Names()
}

// Register adds an encoder to this registry.
func (r *Registry) Register(enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]Encoder)
	}
	r.entries[enc.Name()] = enc
}

// Unregister removes a format from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// Lookup returns the encoder registered for name.
func (r *Registry) Lookup(name string) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, ok := r.entries[name]
	if !ok {
		return nil, &UnknownFormatError{Name: name}
	}
	return enc, nil
}

// Names returns registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Errors.
var (
	// ErrUnknownFormat is matched by every UnknownFormatError.
	ErrUnknownFormat = errors.New("imagefile: unknown format")
)

// UnknownFormatError indicates a format name is not registered.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "imagefile: unknown format: " + e.Name
}

// Is reports whether target is ErrUnknownFormat.
func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

func init() {
	Register(TGA{})
	Register(PNG{})
	Register(BMP{})
	Register(TIFF{})
}
