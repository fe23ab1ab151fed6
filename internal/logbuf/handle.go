// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logbuf

import "sync"

// Handle is the display capability paired with an entry. A renderer may
// attach one value to it (a rendered line, a widget) and a release callback.
// The buffer releases the handle when the entry is evicted or cleared; after
// that Value returns nil and Attach is refused.
type Handle struct {
	mu        sync.Mutex
	released  bool
	value     any
	onRelease func()
}

// Attach stores v on the handle and replaces the release callback.
// It returns false if the handle has already been released.
func (h *Handle) Attach(v any, onRelease func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return false
	}
	h.value = v
	h.onRelease = onRelease
	return true
}

// Value returns the attached value, or nil once released.
func (h *Handle) Value() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Valid reports whether the entry is still in the buffer.
func (h *Handle) Valid() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.released
}

// release invalidates the handle and runs the callback outside the lock.
// It returns false if the handle was already released.
func (h *Handle) release() bool {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return false
	}
	h.released = true
	h.value = nil
	fn := h.onRelease
	h.onRelease = nil
	h.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}
