// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"slices"
	"strings"
)

// =============================================================================
// HINT TYPE
// =============================================================================

// Hint is one autocomplete candidate.
type Hint struct {
	// Name is inserted into the input on confirm
	Name string

	// Signature is the display text, e.g. "echo <text:string>"
	Signature string
}

// Direction selects which way Cycle moves.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Cycle returns the index after moving one step in dir over a list of count
// hints. -1 means nothing is selected. Both directions wrap; an empty list
// always yields -1.
func Cycle(current, count int, dir Direction) int {
	if count <= 0 {
		return -1
	}
	if dir == Backward {
		if current <= 0 || current > count-1 {
			return count - 1
		}
		return current - 1
	}
	if current < 0 || current >= count-1 {
		return 0
	}
	return current + 1
}

// =============================================================================
// HINT INDEX
// =============================================================================

// HintIndex filters registry contents by the in-progress input and tracks
// which hint is selected. It is owned by a single input surface and is not
// safe for concurrent use.
type HintIndex struct {
	registry *Registry

	// text is the input the current list was computed for
	text     string
	hints    []Hint
	selected int
}

// NewHintIndex creates an index over registry.
func NewHintIndex(registry *Registry) *HintIndex {
	return &HintIndex{
		registry: registry,
		selected: -1,
	}
}

// Filter returns a hint for every descriptor whose name starts with
// partial, sorted by name and then arity. Matching is literal and
// case-sensitive.
func (x *HintIndex) Filter(partial string) []Hint {
	var hints []Hint
	for d := range x.registry.All() {
		if strings.HasPrefix(d.Name, partial) {
			hints = append(hints, Hint{Name: d.Name, Signature: d.Signature()})
		}
	}
	return hints
}

// Refresh recomputes the hint list for the given input line and reports
// whether it changed. Hints follow the first word of the line, so the
// signature stays visible while arguments are typed. An empty line has no
// hints. The selection is cleared whenever the list changes.
func (x *HintIndex) Refresh(input string) bool {
	x.text = input

	var hints []Hint
	if partial := FirstWord(input); partial != "" {
		hints = x.Filter(partial)
	}

	if slices.Equal(hints, x.hints) {
		return false
	}
	x.hints = hints
	x.selected = -1
	return true
}

// Hints returns the current list.
func (x *HintIndex) Hints() []Hint {
	return slices.Clone(x.hints)
}

// Len returns the number of hints.
func (x *HintIndex) Len() int {
	return len(x.hints)
}

// Text returns the input the list was last refreshed for.
func (x *HintIndex) Text() string {
	return x.text
}

// Selected returns the selected index, or -1.
func (x *HintIndex) Selected() int {
	return x.selected
}

// Next selects the next hint, wrapping to the first.
func (x *HintIndex) Next() int {
	x.selected = Cycle(x.selected, len(x.hints), Forward)
	return x.selected
}

// Prev selects the previous hint, wrapping to the last.
func (x *HintIndex) Prev() int {
	x.selected = Cycle(x.selected, len(x.hints), Backward)
	return x.selected
}

// Current returns the selected hint.
func (x *HintIndex) Current() (Hint, bool) {
	if x.selected < 0 || x.selected >= len(x.hints) {
		return Hint{}, false
	}
	return x.hints[x.selected], true
}

// Confirm returns the name that should replace the input, if a hint is
// selected.
func (x *HintIndex) Confirm() (string, bool) {
	h, ok := x.Current()
	if !ok {
		return "", false
	}
	return h.Name, true
}

// Reset clears the list and the selection.
func (x *HintIndex) Reset() {
	x.text = ""
	x.hints = nil
	x.selected = -1
}
