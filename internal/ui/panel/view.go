// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"strings"
	"sync/atomic"

	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/logbuf"
	"github.com/jeranaias/journal/internal/ui/styles"
	"github.com/jeranaias/journal/internal/util"
)

// Fixed rows inside the panel
const (
	inputRows  = 1
	borderRows = 1
	minPanel   = inputRows + borderRows + 1
)

// =============================================================================
// RENDER CACHE
// =============================================================================

// renderedLine is what the panel attaches to an entry's display handle.
type renderedLine struct {
	width int
	text  string
}

// renderCache counts the lines attached to handles. The buffer releases a
// handle when its entry leaves, which drops the count.
type renderCache struct {
	live    atomic.Int64
	renders atomic.Int64
}

func (c *renderCache) release() {
	c.live.Add(-1)
}

// line returns the styled text for e at width, rendering only on a miss.
func (c *renderCache) line(e logbuf.Entry, width int, theme *styles.Theme) string {
	prev, cached := e.Handle.Value().(renderedLine)
	if cached && prev.width == width {
		return prev.text
	}

	text := e.Text
	if ind := styles.SeverityIndicators.Indicator(e.Severity); ind != "" {
		text = ind + " " + text
	}
	style := theme.Log(e.Severity)
	if width > 0 {
		style = style.Width(width)
	}
	text = style.Render(text)
	c.renders.Add(1)

	if e.Handle.Attach(renderedLine{width: width, text: text}, c.release) && !cached {
		c.live.Add(1)
	}
	return text
}

// =============================================================================
// LAYOUT
// =============================================================================

// panelHeight returns the rows the open panel covers.
func (m Model) panelHeight() int {
	if !m.visible || m.height <= 0 {
		return 0
	}
	pct := m.cfg.HeightPercent
	if pct <= 0 {
		pct = config.DefaultHeightPercent
	}
	h := m.height * pct / 100
	return min(max(h, minPanel), m.height)
}

// layout sizes the viewport, input and popups for the current window.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.theme.SetSize(m.width, m.height)

	m.hints.SetWidth(min(48, max(m.width-4, 12)))
	hintRows := m.hints.Height()
	if hintRows > 0 && m.theme.GetLayoutMode() == styles.LayoutNarrow {
		hintRows = 1 // compact summary line
	}
	rows := m.panelHeight() - inputRows - borderRows - hintRows
	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(rows, 1)

	m.input.Width = max(m.width-util.StringWidth(m.input.Prompt)-1, 10)
	m.statusBar.SetWidth(m.width)
}

// syncLog re-renders the log when the buffer or the width changed. With
// follow set, or when already at the bottom, the view sticks to the newest line.
func (m *Model) syncLog(follow bool) {
	buf := m.console.Buffer()
	version := buf.Version()
	if version == m.renderedVersion && m.viewport.Width == m.renderedWidth {
		return
	}

	atBottom := m.viewport.AtBottom()
	width := m.viewport.Width
	entries := buf.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.cache.line(e, width, m.theme))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if follow || atBottom {
		m.viewport.GotoBottom()
	}

	m.renderedVersion = version
	m.renderedWidth = width
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the panel over the host status area.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	statusRows := m.height - m.panelHeight()
	status := m.renderStatusArea(statusRows)
	if !m.visible {
		return status
	}

	panel := m.renderPanel()
	if status == "" {
		return panel
	}
	return panel + "\n" + status
}

func (m Model) renderPanel() string {
	parts := []string{m.viewport.View(), m.input.View()}
	if m.hints.HasHints() {
		if m.theme.GetLayoutMode() == styles.LayoutNarrow {
			parts = append(parts, m.hints.ViewCompact())
		} else {
			parts = append(parts, m.hints.View())
		}
	}
	return m.theme.Panel.Width(m.width).Render(strings.Join(parts, "\n"))
}

// renderStatusArea fills rows lines: host status text then the status bar.
func (m Model) renderStatusArea(rows int) string {
	if rows <= 0 {
		return ""
	}

	buf := m.console.Buffer()
	m.statusBar.SetCounts(buf.Len(), buf.Capacity(), m.console.History().Len())
	m.statusBar.Recording = m.console.TranscriptEnabled()

	hostRows := rows - 1
	lines := make([]string, 0, rows)
	if hostRows > 0 && m.status != nil {
		host := strings.Split(m.status(m.width, hostRows), "\n")
		if len(host) > hostRows {
			host = host[:hostRows]
		}
		lines = append(lines, host...)
	}
	for len(lines) < hostRows {
		lines = append(lines, "")
	}
	lines = append(lines, m.statusBar.View())
	return strings.Join(lines, "\n")
}
