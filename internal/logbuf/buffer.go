// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logbuf provides the bounded scrollback buffer behind the console.
package logbuf

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCapacity is used when a buffer is created with a non-positive capacity.
const DefaultCapacity = 200

// ErrInvalidCapacity is returned when a capacity below 1 is requested.
var ErrInvalidCapacity = errors.New("capacity must be positive")

// =============================================================================
// ENTRY
// =============================================================================

// Entry is a single scrollback line.
type Entry struct {
	// Seq is assigned on push and strictly increases for the life of the buffer.
	Seq uint64

	Text     string
	Severity Severity
	Time     time.Time

	// Handle is lent to the renderer and released when the entry leaves the buffer.
	Handle *Handle
}

// =============================================================================
// BUFFER
// =============================================================================

// Buffer is a bounded FIFO of entries stored in a ring.
// All methods are safe for concurrent use; readers observe either the state
// before or after a mutation, never an intermediate one.
type Buffer struct {
	mu      sync.RWMutex
	ring    []Entry
	head    int // index of the oldest entry
	count   int
	nextSeq uint64
	version uint64

	live atomic.Int64
	now  func() time.Time
}

// New creates a buffer holding at most capacity entries.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		ring:    make([]Entry, capacity),
		nextSeq: 1,
		now:     time.Now,
	}
}

// Push appends an entry at the tail and evicts the oldest one if the buffer
// is over capacity. The evicted entry's handle is released before Push returns.
func (b *Buffer) Push(text string, sev Severity) Entry {
	var evicted *Handle

	b.mu.Lock()
	if b.count == len(b.ring) {
		evicted = b.ring[b.head].Handle
		b.ring[b.head] = Entry{}
		b.head = (b.head + 1) % len(b.ring)
		b.count--
	}

	e := Entry{
		Seq:      b.nextSeq,
		Text:     text,
		Severity: sev,
		Time:     b.now(),
		Handle:   &Handle{},
	}
	b.nextSeq++
	b.ring[(b.head+b.count)%len(b.ring)] = e
	b.count++
	b.version++
	b.live.Add(1)
	b.mu.Unlock()

	b.release(evicted)
	return e
}

// Write implements io.Writer. Each non-empty line becomes one Info entry.
func (b *Buffer) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.Push(line, Info)
	}
	return len(p), nil
}

// Clear evicts every entry, oldest first. Safe on an empty buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	handles := make([]*Handle, 0, b.count)
	for i := 0; i < b.count; i++ {
		idx := (b.head + i) % len(b.ring)
		handles = append(handles, b.ring[idx].Handle)
		b.ring[idx] = Entry{}
	}
	b.head = 0
	b.count = 0
	if len(handles) > 0 {
		b.version++
	}
	b.mu.Unlock()

	for _, h := range handles {
		b.release(h)
	}
}

// Entries returns a snapshot of the buffer, oldest first.
func (b *Buffer) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, b.count)
	for i := range out {
		out[i] = b.ring[(b.head+i)%len(b.ring)]
	}
	return out
}

// EntriesSince returns the entries whose sequence number is greater than seq.
func (b *Buffer) EntriesSince(seq uint64) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Entry
	for i := 0; i < b.count; i++ {
		e := b.ring[(b.head+i)%len(b.ring)]
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Capacity returns the maximum number of entries.
func (b *Buffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.ring)
}

// LastSeq returns the sequence number of the newest entry ever pushed,
// whether or not it is still buffered.
func (b *Buffer) LastSeq() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.nextSeq - 1
}

// Version changes on every mutation. Renderers compare it to skip rebuilds.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Live returns the number of display handles that have not been released.
func (b *Buffer) Live() int {
	return int(b.live.Load())
}

// SetCapacity changes the bound, evicting the oldest entries that no longer fit.
func (b *Buffer) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("set capacity %d: %w", capacity, ErrInvalidCapacity)
	}

	b.mu.Lock()
	if capacity == len(b.ring) {
		b.mu.Unlock()
		return nil
	}

	drop := b.count - capacity
	if drop < 0 {
		drop = 0
	}
	evicted := make([]*Handle, 0, drop)
	ring := make([]Entry, capacity)
	for i := 0; i < b.count; i++ {
		e := b.ring[(b.head+i)%len(b.ring)]
		if i < drop {
			evicted = append(evicted, e.Handle)
			continue
		}
		ring[i-drop] = e
	}
	b.ring = ring
	b.head = 0
	b.count -= drop
	b.version++
	b.mu.Unlock()

	for _, h := range evicted {
		b.release(h)
	}
	return nil
}

func (b *Buffer) release(h *Handle) {
	if h == nil {
		return
	}
	if h.release() {
		b.live.Add(-1)
	}
}
