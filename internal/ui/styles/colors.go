// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the journal console.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/journal/internal/logbuf"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - Selected hint, panel border
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Prompt, shortcut keys
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Transcript indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Status area background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Input text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, hint signatures
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Placeholders, status text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// SEVERITY COLORS
// =============================================================================

// Info entries are white on dark terminals. Light terminals get near-black
// so the text stays readable.
var SeverityInfo = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#FFFFFF"}

// SeverityWarning - yellow
var SeverityWarning = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"}

// SeverityError - red
var SeverityError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

// SeverityFatal - dark red
var SeverityFatal = lipgloss.AdaptiveColor{Light: "#7F1D1D", Dark: "#991B1B"}

// SeverityColor returns the foreground color for sev.
func SeverityColor(sev logbuf.Severity) lipgloss.AdaptiveColor {
	switch sev {
	case logbuf.Warning:
		return SeverityWarning
	case logbuf.Error:
		return SeverityError
	case logbuf.Fatal:
		return SeverityFatal
	default:
		return SeverityInfo
	}
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// SeverityIndicatorSet holds text indicators for each severity.
// They give a cue beyond color, and are the only cue when color is off.
type SeverityIndicatorSet struct {
	Info    string
	Warning string
	Error   string
	Fatal   string
}

// SeverityIndicators are ASCII-only for maximum terminal compatibility.
var SeverityIndicators = SeverityIndicatorSet{
	Info:    "",
	Warning: "[!]",
	Error:   "[X]",
	Fatal:   "[!!]",
}

// Indicator returns the indicator for sev, or "" for Info.
func (s SeverityIndicatorSet) Indicator(sev logbuf.Severity) string {
	switch sev {
	case logbuf.Warning:
		return s.Warning
	case logbuf.Error:
		return s.Error
	case logbuf.Fatal:
		return s.Fatal
	default:
		return s.Info
	}
}

// RenderSeverity renders one log line in its severity color, prefixed with
// the severity indicator. Error and Fatal lines are bold.
func RenderSeverity(sev logbuf.Severity, text string) string {
	style := lipgloss.NewStyle().Foreground(SeverityColor(sev))
	if sev.AtLeast(logbuf.Error) {
		style = style.Bold(true)
	}
	if ind := SeverityIndicators.Indicator(sev); ind != "" {
		text = ind + " " + text
	}
	return style.Render(text)
}
