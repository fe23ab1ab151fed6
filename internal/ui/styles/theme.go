// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/journal/internal/logbuf"
)

// Theme holds all the styled components for the console.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile
	Renderer     *lipgloss.Renderer

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// PANEL STYLES
	// ==========================================================================

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	// ==========================================================================
	// LOG LINE STYLES
	// ==========================================================================

	LogInfo    lipgloss.Style
	LogWarning lipgloss.Style
	LogError   lipgloss.Style
	LogFatal   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// HINT POPUP STYLES
	// ==========================================================================

	HintPopup     lipgloss.Style
	HintItem      lipgloss.Style
	HintSelected  lipgloss.Style
	HintSignature lipgloss.Style

	// ==========================================================================
	// STATUS AREA STYLES
	// ==========================================================================

	StatusArea   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Recording    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured, using the
// terminal's detected profile and background.
func NewTheme() *Theme {
	r := lipgloss.DefaultRenderer()
	return newTheme(r, r.ColorProfile(), r.HasDarkBackground())
}

// NewThemeForProfile creates a theme that renders with a fixed profile.
// termenv.Ascii drops all color and text attributes; tests use it.
func NewThemeForProfile(profile termenv.Profile, isDark bool) *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(isDark)
	return newTheme(r, profile, isDark)
}

func newTheme(r *lipgloss.Renderer, profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Renderer:     r,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Panel
	t.Panel = t.Renderer.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Purple)

	t.PanelTitle = t.Renderer.NewStyle().
		Bold(true).
		Foreground(Purple)

	// Log lines
	t.LogInfo = t.Renderer.NewStyle().
		Foreground(SeverityInfo)

	t.LogWarning = t.Renderer.NewStyle().
		Foreground(SeverityWarning)

	t.LogError = t.Renderer.NewStyle().
		Foreground(SeverityError).
		Bold(true)

	t.LogFatal = t.Renderer.NewStyle().
		Foreground(SeverityFatal).
		Bold(true)

	// Input area
	t.InputContainer = t.Renderer.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputPrompt = t.Renderer.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = t.Renderer.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = t.Renderer.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Hint popup
	t.HintPopup = t.Renderer.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HintItem = t.Renderer.NewStyle().
		Foreground(TextPrimary)

	t.HintSelected = t.Renderer.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true)

	t.HintSignature = t.Renderer.NewStyle().
		Foreground(TextSecondary)

	// Status area
	t.StatusArea = t.Renderer.NewStyle().
		Background(SurfaceDim).
		Foreground(TextMuted).
		Padding(0, 1)

	t.ShortcutKey = t.Renderer.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = t.Renderer.NewStyle().
		Foreground(TextMuted)

	t.Recording = t.Renderer.NewStyle().
		Foreground(Emerald)
}

// Log returns the line style for sev.
func (t *Theme) Log(sev logbuf.Severity) lipgloss.Style {
	switch sev {
	case logbuf.Warning:
		return t.LogWarning
	case logbuf.Error:
		return t.LogError
	case logbuf.Fatal:
		return t.LogFatal
	default:
		return t.LogInfo
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
