// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"strings"
	"sync"
)

// Direction selects which way Navigate moves.
type Direction int

const (
	Older Direction = iota
	Newer
)

// History is an append-only list of submitted lines with a navigation
// cursor. The cursor ranges over [0, Len()], where Len() means "past the
// newest line" and is the position after every Submit.
type History struct {
	mu     sync.Mutex
	lines  []string
	cursor int
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Submit records a line. Blank lines are ignored and leave the cursor alone.
func (h *History) Submit(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, line)
	h.cursor = len(h.lines)
	return true
}

// Navigate moves the cursor one step and returns the line under it.
// The boolean is false when the cursor did not move: Older at the first
// line, or Newer at past-end. Moving Newer from the last line lands on
// past-end and returns an empty string so the caller can clear its input.
func (h *History) Navigate(dir Direction) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch dir {
	case Older:
		if h.cursor <= 0 {
			return "", false
		}
		h.cursor--
	case Newer:
		if h.cursor >= len(h.lines) {
			return "", false
		}
		h.cursor++
	default:
		return "", false
	}

	if h.cursor == len(h.lines) {
		return "", true
	}
	return h.lines[h.cursor], true
}

// Reset moves the cursor back to past-end without changing the lines.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursor = len(h.lines)
}

// Cursor returns the current cursor position.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// AtEnd reports whether the cursor is past the newest line.
func (h *History) AtEnd() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor == len(h.lines)
}

// Lines returns a copy of the submitted lines, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Len returns the number of lines.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.lines)
}

// Clear drops every line.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = nil
	h.cursor = 0
}
