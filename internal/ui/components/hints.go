// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/journal/internal/commands"
	"github.com/jeranaias/journal/internal/ui/styles"
	"github.com/jeranaias/journal/internal/util"
)

// =============================================================================
// HINT POPUP COMPONENT
// =============================================================================

// HintPopup displays the hint list for the command name being typed.
// It does not own selection state; the console's hint index does, and the
// popup is handed a fresh copy on every change.
type HintPopup struct {
	hints      []commands.Hint
	selected   int
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewHintPopup creates a new hint popup.
func NewHintPopup(theme *styles.Theme) *HintPopup {
	return &HintPopup{
		selected:   -1,
		maxVisible: 6,
		width:      50,
		theme:      theme,
	}
}

// SetHints replaces the list and the selected index (-1 for none).
func (p *HintPopup) SetHints(hints []commands.Hint, selected int) {
	p.hints = hints
	if selected < -1 || selected >= len(hints) {
		selected = -1
	}
	p.selected = selected
}

// Hints returns the current hints.
func (p *HintPopup) Hints() []commands.Hint {
	return p.hints
}

// Selected returns the selected index.
func (p *HintPopup) Selected() int {
	return p.selected
}

// HasHints returns true if there are hints to show.
func (p *HintPopup) HasHints() bool {
	return len(p.hints) > 0
}

// Clear clears all hints.
func (p *HintPopup) Clear() {
	p.hints = nil
	p.selected = -1
}

// SetWidth sets the popup width.
func (p *HintPopup) SetWidth(width int) {
	if width < 12 {
		width = 12
	}
	p.width = width
}

// SetMaxVisible sets the maximum number of visible hints.
func (p *HintPopup) SetMaxVisible(max int) {
	if max < 1 {
		max = 1
	}
	p.maxVisible = max
}

// Height returns the number of terminal rows View will use.
func (p *HintPopup) Height() int {
	if len(p.hints) == 0 {
		return 0
	}
	return min(len(p.hints), p.maxVisible) + 2 // border
}

// visibleRange returns the window of hints to draw, keeping the selection
// in view.
func (p *HintPopup) visibleRange() (int, int) {
	start, end := 0, len(p.hints)
	if len(p.hints) <= p.maxVisible {
		return start, end
	}

	// Center the selected item in the window
	start = max(p.selected-p.maxVisible/2, 0)
	end = start + p.maxVisible
	if end > len(p.hints) {
		end = len(p.hints)
		start = end - p.maxVisible
	}
	return start, end
}

// View renders the hint popup.
func (p *HintPopup) View() string {
	if len(p.hints) == 0 {
		return ""
	}

	start, end := p.visibleRange()
	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, p.renderItem(p.hints[i], i == p.selected))
	}

	return p.theme.HintPopup.
		Width(p.width).
		MaxWidth(p.width + 2).
		Render(strings.Join(items, "\n"))
}

// renderItem renders a single hint row.
func (p *HintPopup) renderItem(h commands.Hint, isSelected bool) string {
	// Indicator for selected item (ASCII)
	indicator := "  "
	if isSelected {
		indicator = "> "
	}

	// Inner width excludes the padding
	text := util.TruncateWidth(h.Signature, p.width-2-util.StringWidth(indicator))

	style := p.theme.HintSignature
	if isSelected {
		style = p.theme.HintSelected
	}
	return indicator + style.Render(text)
}

// ViewCompact renders a single-line summary for narrow layouts.
func (p *HintPopup) ViewCompact() string {
	if len(p.hints) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	if len(p.hints) == 1 {
		return style.Render("Tab: " + p.hints[0].Signature)
	}
	return style.Render("Tab: " + toStr(len(p.hints)) + " commands")
}
