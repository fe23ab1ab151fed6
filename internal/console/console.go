// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jeranaias/journal/internal/commands"
	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/history"
	"github.com/jeranaias/journal/internal/logbuf"
	"github.com/jeranaias/journal/internal/transcript"
)

// recordTimeout bounds a single transcript write.
const recordTimeout = 2 * time.Second

// =============================================================================
// KEYS
// =============================================================================

// Key is a discrete input event delivered by the input surface.
type Key int

const (
	KeySubmit Key = iota
	KeyHistoryOlder
	KeyHistoryNewer
	KeyHintNext
	KeyHintPrev
	KeyHintConfirm
)

func (k Key) String() string {
	switch k {
	case KeySubmit:
		return "submit"
	case KeyHistoryOlder:
		return "history-older"
	case KeyHistoryNewer:
		return "history-newer"
	case KeyHintNext:
		return "hint-next"
	case KeyHintPrev:
		return "hint-prev"
	case KeyHintConfirm:
		return "hint-confirm"
	default:
		return "key(?)"
	}
}

// =============================================================================
// OPTIONS
// =============================================================================

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the application logger. Registry and dispatcher
// diagnostics go here too.
func WithLogger(logger *log.Logger) Option {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExitHook sets the function the exit command calls.
func WithExitHook(fn func()) Option {
	return func(c *Console) {
		c.exitHook = fn
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(c *Console) {
		if id != "" {
			c.session = id
		}
	}
}

// WithTranscript mirrors every log entry into the SQLite database at path.
// If the store cannot be opened the console keeps running without it.
func WithTranscript(path string) Option {
	return func(c *Console) {
		c.transcriptPath = path
	}
}

// =============================================================================
// CONSOLE
// =============================================================================

// Console owns one registry, dispatcher, log buffer, history and hint index
// and ties them to an input surface. Input methods (SetInput, Submit,
// HandleKey) are meant to be called from the host's UI goroutine; Push and
// HostWriter may be used from any goroutine.
type Console struct {
	registry   *commands.Registry
	dispatcher *commands.Dispatcher
	buffer     *logbuf.Buffer
	history    *history.History
	logger     *log.Logger
	session    string
	exitHook   func()

	// mu guards the input surface state and cfg
	mu       sync.Mutex
	cfg      config.ConsoleConfig
	input    string
	hints    *commands.HintIndex
	builtins []string
	closed   bool

	echoSeverity atomic.Int32

	// storeMu guards store; a nil store means the transcript is off
	storeMu        sync.Mutex
	store          *transcript.Store
	transcriptPath string
}

// New creates a console for cfg and registers the built-in commands.
func New(cfg config.ConsoleConfig, opts ...Option) *Console {
	c := &Console{
		history: history.New(),
		logger:  log.New(io.Discard),
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Capacity <= 0 {
		cfg.Capacity = logbuf.DefaultCapacity
	}
	if cfg.Prompt == "" {
		cfg.Prompt = config.DefaultPrompt
	}
	c.cfg = cfg
	c.setEchoSeverity(cfg.EchoSeverity)

	c.logger = c.logger.With("session", shortID(c.session))
	c.buffer = logbuf.New(cfg.Capacity)
	c.registry = commands.NewRegistry(c.logger)
	c.dispatcher = commands.NewDispatcher(c.registry, c, c.logger)
	c.hints = commands.NewHintIndex(c.registry)

	c.openTranscript()
	c.registerBuiltins()

	c.logger.Debug("console created", "capacity", cfg.Capacity, "builtins", len(c.builtins))
	return c
}

// shortID trims a UUID for log prefixes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Close tears the console down: built-ins are unregistered, the buffer is
// cleared (releasing every handle) and the transcript is closed. Calling
// Close twice is a no-op.
func (c *Console) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	builtins := c.builtins
	c.builtins = nil
	c.input = ""
	c.hints.Reset()
	c.mu.Unlock()

	for _, name := range builtins {
		c.registry.Unregister(name)
	}
	c.buffer.Clear()

	c.storeMu.Lock()
	store := c.store
	c.store = nil
	c.storeMu.Unlock()

	if store != nil {
		return store.Close()
	}
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Registry returns the command registry so the host can add its own commands.
func (c *Console) Registry() *commands.Registry { return c.registry }

// Buffer returns the scrollback buffer.
func (c *Console) Buffer() *logbuf.Buffer { return c.buffer }

// History returns the input history.
func (c *Console) History() *history.History { return c.history }

// Dispatcher returns the dispatcher.
func (c *Console) Dispatcher() *commands.Dispatcher { return c.dispatcher }

// SessionID returns the ID the transcript records this session under.
func (c *Console) SessionID() string { return c.session }

// Logger returns the console's application logger.
func (c *Console) Logger() *log.Logger { return c.logger }

// Config returns the active console settings.
func (c *Console) Config() config.ConsoleConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Register adds a host command.
func (c *Console) Register(name string, h commands.Handler) error {
	return c.registry.Register(name, h)
}

// TranscriptEnabled reports whether entries are being mirrored.
func (c *Console) TranscriptEnabled() bool {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	return c.store != nil
}

// =============================================================================
// LOG OUTPUT
// =============================================================================

// Push appends an entry to the scrollback and mirrors it to the transcript.
// It satisfies commands.Sink.
func (c *Console) Push(text string, sev logbuf.Severity) logbuf.Entry {
	e := c.buffer.Push(text, sev)
	c.record(e)
	return e
}

// Apply applies reloaded settings. Shrinking the capacity evicts the oldest
// entries. Invalid values are ignored field by field.
func (c *Console) Apply(cfg config.ConsoleConfig) {
	c.mu.Lock()
	old := c.cfg
	if cfg.Capacity <= 0 {
		cfg.Capacity = old.Capacity
	}
	if cfg.Prompt == "" {
		cfg.Prompt = old.Prompt
	}
	if cfg.HeightPercent == 0 {
		cfg.HeightPercent = old.HeightPercent
	}
	if cfg.ToggleKey == "" {
		cfg.ToggleKey = old.ToggleKey
	}
	c.cfg = cfg
	c.mu.Unlock()

	if cfg.Capacity != old.Capacity {
		if err := c.buffer.SetCapacity(cfg.Capacity); err != nil {
			c.logger.Warn("capacity not applied", "capacity", cfg.Capacity, "err", err)
		}
	}
	c.setEchoSeverity(cfg.EchoSeverity)
	c.logger.Debug("console settings applied", "capacity", cfg.Capacity, "height", cfg.HeightPercent)
}

func (c *Console) setEchoSeverity(name string) {
	sev, err := logbuf.ParseSeverity(name)
	if err != nil {
		c.logger.Warn("unknown echo severity, using info", "severity", name)
	}
	c.echoSeverity.Store(int32(sev))
}

// =============================================================================
// INPUT SURFACE
// =============================================================================

// SetInput replaces the in-progress line and refreshes the hints.
func (c *Console) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
	c.hints.Refresh(text)
}

// Input returns the in-progress line.
func (c *Console) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Hints returns the current hint list and the selected index (-1 for none).
func (c *Console) Hints() ([]commands.Hint, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hints.Hints(), c.hints.Selected()
}

// Submit runs the in-progress line. A blank line is skipped and never
// reaches the history. After Close every line is skipped.
func (c *Console) Submit() commands.Result {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return commands.Result{Outcome: commands.Skipped}
	}
	line := c.input
	c.input = ""
	c.hints.Reset()
	echo, prompt := c.cfg.EchoInput, c.cfg.Prompt
	c.mu.Unlock()

	if !c.history.Submit(line) {
		return commands.Result{Outcome: commands.Skipped}
	}
	if echo {
		c.Push(prompt+" "+commands.Parse(line).RawInput, logbuf.Info)
	}

	res := c.dispatcher.Execute(line)
	c.logger.Debug("line submitted", "outcome", res.Outcome, "line", line)
	return res
}

// Exec runs line as if it had been typed and submitted.
func (c *Console) Exec(line string) commands.Result {
	c.SetInput(line)
	return c.Submit()
}

// HandleKey applies one input event and reports whether the input line or
// hint selection changed.
func (c *Console) HandleKey(k Key) bool {
	if k == KeySubmit {
		c.Submit()
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch k {
	case KeyHistoryOlder, KeyHistoryNewer:
		dir := history.Older
		if k == KeyHistoryNewer {
			dir = history.Newer
		}
		text, ok := c.history.Navigate(dir)
		if !ok {
			return false
		}
		c.input = text
		c.hints.Refresh(text)
		return true

	case KeyHintNext, KeyHintPrev:
		if c.hints.Len() == 0 {
			return false
		}
		if k == KeyHintNext {
			c.hints.Next()
		} else {
			c.hints.Prev()
		}
		return true

	case KeyHintConfirm:
		name, ok := c.hints.Confirm()
		if !ok {
			return false
		}
		c.input = name
		c.hints.Refresh(name)
		return true
	}
	return false
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// openTranscript opens the configured store. Failure is reported once as
// a Warning entry and leaves the transcript off.
func (c *Console) openTranscript() {
	if c.transcriptPath == "" {
		return
	}

	store, err := transcript.Open(c.transcriptPath)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		err = store.StartSession(ctx, c.session, time.Now())
		cancel()
		if err != nil {
			store.Close()
		}
	}
	if err != nil {
		c.logger.Warn("transcript disabled", "path", c.transcriptPath, "err", err)
		c.Push("Transcript disabled: "+err.Error(), logbuf.Warning)
		return
	}

	c.storeMu.Lock()
	c.store = store
	c.storeMu.Unlock()
	c.logger.Info("transcript enabled", "path", c.transcriptPath, "pruned", store.Pruned())
}

// record mirrors e to the transcript. The first write failure turns the
// transcript off and is reported once.
func (c *Console) record(e logbuf.Entry) {
	c.storeMu.Lock()
	store := c.store
	if store == nil {
		c.storeMu.Unlock()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	err := store.Record(ctx, c.session, e)
	cancel()
	if err == nil {
		c.storeMu.Unlock()
		return
	}
	c.store = nil
	c.storeMu.Unlock()

	store.Close()
	c.logger.Warn("transcript write failed, disabling", "err", err)
	c.Push("Transcript disabled: "+err.Error(), logbuf.Warning)
}

// Transcript returns up to limit of this session's stored entries, oldest
// first. It fails with transcript.ErrClosed when the transcript is off.
func (c *Console) Transcript(ctx context.Context, limit int) ([]transcript.Record, error) {
	c.storeMu.Lock()
	store := c.store
	c.storeMu.Unlock()
	if store == nil {
		return nil, transcript.ErrClosed
	}
	return store.Recent(ctx, c.session, limit)
}

// TranscriptSessions lists every stored session, newest first, including
// the current one.
func (c *Console) TranscriptSessions(ctx context.Context) ([]transcript.Session, error) {
	c.storeMu.Lock()
	store := c.store
	c.storeMu.Unlock()
	if store == nil {
		return nil, transcript.ErrClosed
	}
	return store.Sessions(ctx)
}
