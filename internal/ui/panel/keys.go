// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the console panel.
type KeyMap struct {
	Toggle       key.Binding
	Submit       key.Binding
	HistoryOlder key.Binding
	HistoryNewer key.Binding
	HintNext     key.Binding
	HintPrev     key.Binding
	HintConfirm  key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings with toggle bound to the
// configured toggle key.
func DefaultKeyMap(toggle string) KeyMap {
	if toggle == "" {
		toggle = config.DefaultToggleKey
	}
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(toggle),
			key.WithHelp(toggle, "console"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		HistoryOlder: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "older line"),
		),
		HistoryNewer: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "newer line"),
		),
		HintNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next hint"),
		),
		HintPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous hint"),
		),
		HintConfirm: key.NewBinding(
			key.WithKeys("right", "ctrl+@"),
			key.WithHelp("right/C-space", "accept hint"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.HintNext, k.PageUp, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.HistoryOlder, k.HistoryNewer},
		{k.HintNext, k.HintPrev, k.HintConfirm},
		{k.PageUp, k.PageDown, k.Toggle, k.Quit},
	}
}

// shortcuts converts ShortHelp for the status bar.
func (k KeyMap) shortcuts() []components.Shortcut {
	bindings := k.ShortHelp()
	out := make([]components.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
