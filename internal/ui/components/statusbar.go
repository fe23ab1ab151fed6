// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/journal/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key/description pair shown on the right of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the one-line summary at the bottom of the host status area.
type StatusBar struct {
	Entries   int    // Entries in the log
	Capacity  int    // Log capacity
	History   int    // Lines submitted this session
	Recording bool   // Transcript is on
	Message   string // Host-provided status text
	Width     int    // Available width
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetCounts updates the log and history counters
func (s *StatusBar) SetCounts(entries, capacity, history int) {
	s.Entries = entries
	s.Capacity = capacity
	s.History = history
}

// View renders the status bar. Shortcuts are dropped from the right until
// the bar fits the width.
func (s *StatusBar) View() string {
	left := s.renderLeft()
	width := max(s.Width-2, 0) // StatusArea padding

	shortcuts := s.Shortcuts
	for {
		right := s.renderShortcuts(shortcuts)
		gap := width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap >= 1 || len(shortcuts) == 0 {
			line := left
			if right != "" && gap >= 1 {
				line += strings.Repeat(" ", gap) + right
			}
			return s.theme.StatusArea.Width(s.Width).MaxWidth(s.Width).Render(line)
		}
		shortcuts = shortcuts[:len(shortcuts)-1]
	}
}

func (s *StatusBar) renderLeft() string {
	parts := []string{
		"log " + fmtNumber(s.Entries) + "/" + fmtNumber(s.Capacity),
		"history " + fmtNumber(s.History),
	}
	if s.Recording {
		parts = append(parts, s.theme.Recording.Render("rec"))
	}
	if s.Message != "" {
		parts = append(parts, s.Message)
	}
	return strings.Join(parts, " | ")
}

func (s *StatusBar) renderShortcuts(shortcuts []Shortcut) string {
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}
