// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"io"
	"iter"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// COMMAND DESCRIPTOR
// =============================================================================

// Descriptor is one registered command. Descriptors are immutable once
// registered and may be shared freely.
type Descriptor struct {
	// Name is the normalized command name
	Name string

	// Params are the positional parameters, in declaration order
	Params []Param

	// Description is shown by help
	Description string

	handler Handler
}

// Arity returns the number of parameters.
func (d *Descriptor) Arity() int {
	return len(d.Params)
}

// Signature renders the command for help and hints, e.g. "echo <text:string>".
func (d *Descriptor) Signature() string {
	if len(d.Params) == 0 {
		return d.Name
	}
	var sb strings.Builder
	sb.WriteString(d.Name)
	for _, p := range d.Params {
		sb.WriteString(" <")
		sb.WriteString(p.Name)
		sb.WriteByte(':')
		sb.WriteString(p.Type.String())
		sb.WriteByte('>')
	}
	return sb.String()
}

// ParamsDisplay renders only the parameter part of the signature.
func (d *Descriptor) ParamsDisplay() string {
	return strings.TrimSpace(strings.TrimPrefix(d.Signature(), d.Name))
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds command descriptors keyed by name, one per arity.
// Resolution takes a read lock; registration and removal take the write lock.
type Registry struct {
	mu       sync.RWMutex
	commands map[string][]*Descriptor // sorted by arity
	logger   *log.Logger
}

// NewRegistry creates an empty registry. A nil logger discards warnings.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		commands: make(map[string][]*Descriptor),
		logger:   logger,
	}
}

// NormalizeName trims name, applies Unicode NFC and replaces every inner
// whitespace rune with an underscore.
func NormalizeName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// Register adds a command. If a command with the same normalized name and
// arity exists, the existing one is kept, a warning is logged and a
// *RegisterError wrapping ErrDuplicateCommand is returned.
func (r *Registry) Register(name string, h Handler) error {
	normalized := NormalizeName(name)
	if normalized == "" {
		return &RegisterError{Name: name, Arity: h.Arity(), Err: ErrInvalidName}
	}
	if !h.valid() {
		return &RegisterError{Name: normalized, Arity: h.Arity(), Err: ErrInvalidHandler}
	}

	desc := &Descriptor{
		Name:        normalized,
		Params:      h.Params(),
		Description: h.description,
		handler:     h,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.commands[normalized]
	for _, d := range existing {
		if d.Arity() == desc.Arity() {
			r.logger.Warn("command already registered, keeping existing",
				"name", normalized, "arity", desc.Arity())
			return &RegisterError{Name: normalized, Arity: desc.Arity(), Err: ErrDuplicateCommand}
		}
	}

	existing = append(existing, desc)
	slices.SortFunc(existing, func(a, b *Descriptor) int {
		return a.Arity() - b.Arity()
	})
	r.commands[normalized] = existing
	return nil
}

// Unregister removes every descriptor registered under name, whatever its
// arity, and returns how many were removed.
func (r *Registry) Unregister(name string) int {
	normalized := NormalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.commands[normalized])
	delete(r.commands, normalized)
	return n
}

// Resolve returns the descriptor registered for (name, argc).
func (r *Registry) Resolve(name string, argc int) (*Descriptor, bool) {
	normalized := NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.commands[normalized] {
		if d.Arity() == argc {
			return d, true
		}
	}
	return nil, false
}

// Lookup returns every arity registered under name, lowest arity first.
func (r *Registry) Lookup(name string) []*Descriptor {
	normalized := NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.commands[normalized])
}

// List returns a snapshot of all descriptors sorted by name, then arity.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, r.commands[name]...)
	}
	r.mu.RUnlock()
	return out
}

// All iterates over a snapshot taken when iteration starts.
func (r *Registry) All() iter.Seq[*Descriptor] {
	return func(yield func(*Descriptor) bool) {
		for _, d := range r.List() {
			if !yield(d) {
				return
			}
		}
	}
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, ds := range r.commands {
		n += len(ds)
	}
	return n
}
