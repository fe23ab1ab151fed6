// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/console"
	"github.com/jeranaias/journal/internal/ui/components"
	"github.com/jeranaias/journal/internal/ui/styles"
	"github.com/jeranaias/journal/internal/util"
)

// pollInterval is how often the model checks for entries pushed from other
// goroutines and for reloaded settings.
const pollInterval = 100 * time.Millisecond

// =============================================================================
// MESSAGES
// =============================================================================

// blinkMsg advances the idle prompt animation.
type blinkMsg time.Time

// pollMsg triggers a check of the log buffer version and console settings.
type pollMsg time.Time

// =============================================================================
// EXIT SIGNAL
// =============================================================================

// ExitSignal lets the console's exit command stop the program. Pass
// Request as the console exit hook; the model quits after the submitting
// key is handled. Program.Quit cannot be used from inside Update.
type ExitSignal struct {
	requested atomic.Bool
}

// Request asks the model to quit.
func (s *ExitSignal) Request() {
	s.requested.Store(true)
}

// Requested reports whether Request was called.
func (s *ExitSignal) Requested() bool {
	return s != nil && s.requested.Load()
}

// =============================================================================
// MODEL
// =============================================================================

// StatusFunc renders the host status area, the part of the screen the
// console panel does not cover. It gets the area's size without the status bar.
type StatusFunc func(width, height int) string

// Option configures a Model.
type Option func(*Model)

// WithExitSignal quits the program when sig is requested.
func WithExitSignal(sig *ExitSignal) Option {
	return func(m *Model) {
		m.exit = sig
	}
}

// WithStatus sets the host status area renderer.
func WithStatus(fn StatusFunc) Option {
	return func(m *Model) {
		m.status = fn
	}
}

// WithHidden starts with the panel closed.
func WithHidden() Option {
	return func(m *Model) {
		m.visible = false
	}
}

// Model is the Bubble Tea model for the console panel.
type Model struct {
	console *console.Console
	theme   *styles.Theme
	keys    KeyMap
	cfg     config.ConsoleConfig

	viewport  viewport.Model
	input     textinput.Model
	hints     *components.HintPopup
	statusBar *components.StatusBar
	status    StatusFunc
	exit      *ExitSignal

	blink styles.SpinnerConfig
	frame int

	width   int
	height  int
	ready   bool
	visible bool

	// Render cache bookkeeping
	cache           *renderCache
	renderedVersion uint64
	renderedWidth   int
}

// New creates a panel model over con.
func New(con *console.Console, theme *styles.Theme, opts ...Option) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	cfg := con.Config()

	ti := textinput.New()
	ti.Placeholder = "type help"
	ti.CharLimit = 1024
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Focus()

	vp := viewport.New(80, 10)
	vp.SetContent("")

	m := Model{
		console:   con,
		theme:     theme,
		keys:      DefaultKeyMap(cfg.ToggleKey),
		cfg:       cfg,
		viewport:  vp,
		input:     ti,
		hints:     components.NewHintPopup(theme),
		statusBar: components.NewStatusBar(theme),
		blink:     styles.PromptBlink(cfg.Prompt),
		visible:   true,
		cache:     &renderCache{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	if !m.visible {
		m.input.Blur()
	}
	m.statusBar.Shortcuts = m.keys.shortcuts()
	m.updatePrompt()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink, the prompt animation and the poll loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.blinkCmd(), pollCmd())
}

func (m Model) blinkCmd() tea.Cmd {
	return tea.Tick(m.blink.Duration(), func(t time.Time) tea.Msg {
		return blinkMsg(t)
	})
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.syncLog(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case blinkMsg:
		m.frame++
		m.updatePrompt()
		return m, m.blinkCmd()

	case pollMsg:
		m.poll()
		return m, pollCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.visible = !m.visible
		if m.visible {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		m.layout()
		m.syncLog(true)
		return m, nil
	}

	if !m.visible {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		m.console.SetInput(m.input.Value())
		m.console.Submit()
		m.input.Reset()
		m.syncHints()
		m.syncLog(true)
		if m.exit.Requested() {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryOlder):
		if m.console.HandleKey(console.KeyHistoryOlder) {
			m.loadInput()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryNewer):
		if m.console.HandleKey(console.KeyHistoryNewer) {
			m.loadInput()
		}
		return m, nil

	case key.Matches(msg, m.keys.HintNext):
		m.console.HandleKey(console.KeyHintNext)
		m.syncHints()
		return m, nil

	case key.Matches(msg, m.keys.HintPrev):
		m.console.HandleKey(console.KeyHintPrev)
		m.syncHints()
		return m, nil

	case key.Matches(msg, m.keys.HintConfirm):
		// Without a selection Right keeps moving the cursor
		if m.hints.Selected() >= 0 && m.console.HandleKey(console.KeyHintConfirm) {
			m.loadInput()
			return m, nil
		}

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.console.SetInput(m.input.Value())
		m.syncHints()
		m.updatePrompt()
	}
	return m, cmd
}

// loadInput copies the console's input line into the text field.
func (m *Model) loadInput() {
	m.input.SetValue(m.console.Input())
	m.input.CursorEnd()
	m.syncHints()
	m.updatePrompt()
}

// syncHints copies the console's hint state into the popup.
func (m *Model) syncHints() {
	before := m.hints.Height()
	hints, selected := m.console.Hints()
	m.hints.SetHints(hints, selected)
	if m.hints.Height() != before {
		m.layout()
	}
}

// poll picks up entries pushed from other goroutines and reloaded settings.
func (m *Model) poll() {
	if cfg := m.console.Config(); cfg != m.cfg {
		m.cfg = cfg
		m.keys = DefaultKeyMap(cfg.ToggleKey)
		m.statusBar.Shortcuts = m.keys.shortcuts()
		m.blink = styles.PromptBlink(cfg.Prompt)
		m.updatePrompt()
		m.layout()
	}
	m.syncLog(false)
}

// updatePrompt shows the blink animation while the input is empty and the
// plain prompt while typing.
func (m *Model) updatePrompt() {
	width := util.StringWidth(m.cfg.Prompt) + 2
	prompt := m.cfg.Prompt
	if m.input.Value() == "" {
		prompt = m.blink.Frame(m.frame)
	}
	m.input.Prompt = util.PadRight(prompt, width)
}

// Prompt returns the prompt as currently drawn.
func (m Model) Prompt() string {
	return m.input.Prompt
}

// Visible reports whether the panel is open.
func (m Model) Visible() bool {
	return m.visible
}
