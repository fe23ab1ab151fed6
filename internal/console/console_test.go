// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/journal/internal/commands"
	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/logbuf"
	"github.com/jeranaias/journal/internal/transcript"
)

func newConsole(t *testing.T, cfg config.ConsoleConfig, opts ...Option) *Console {
	t.Helper()
	c := New(cfg, opts...)
	t.Cleanup(func() { c.Close() })
	return c
}

func texts(entries []logbuf.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

// =============================================================================
// DISPATCH THROUGH THE CONSOLE
// =============================================================================

func TestConsole_EchoProducesOneEntry(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})

	res := c.Exec("echo hi")
	require.Equal(t, commands.Succeeded, res.Outcome)

	entries := c.Buffer().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "hi", entries[0].Text)
	assert.Equal(t, logbuf.Info, entries[0].Severity)
	assert.Equal(t, "", c.Input(), "submit should clear the input")
}

func TestConsole_EchoInputAndSeverity(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{EchoInput: true, EchoSeverity: "warning"})

	c.Exec(`echo "two words"`)

	entries := c.Buffer().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, `> echo "two words"`, entries[0].Text)
	assert.Equal(t, "two words", entries[1].Text)
	assert.Equal(t, logbuf.Warning, entries[1].Severity)
}

func TestConsole_NotFound(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})

	res := c.Exec("nosuch 1 2")
	require.Equal(t, commands.Failed, res.Outcome)
	assert.True(t, commands.IsNotFound(res.Err))

	entries := c.Buffer().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Command not found: nosuch", entries[0].Text)
	assert.Equal(t, logbuf.Error, entries[0].Severity)
}

func TestConsole_BlankLineSkipped(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})

	res := c.Exec("   ")
	assert.Equal(t, commands.Skipped, res.Outcome)
	assert.Equal(t, 0, c.Buffer().Len())
	assert.Equal(t, 0, c.History().Len(), "blank lines never reach the history")
}

func TestConsole_HostCommandReentry(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})

	var inner commands.Result
	require.NoError(t, c.Register("nest", commands.Func0(func() error {
		inner = c.Exec("echo x")
		return nil
	})))

	res := c.Exec("nest")
	assert.Equal(t, commands.Succeeded, res.Outcome)
	require.Error(t, inner.Err)
	assert.True(t, errors.Is(inner.Err, commands.ErrBusy))

	entries := c.Buffer().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, logbuf.Warning, entries[0].Severity)
	assert.Equal(t, commands.StateIdle, c.Dispatcher().State())
}

// =============================================================================
// KEYS
// =============================================================================

func TestConsole_HistoryKeys(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	c.Exec("echo a")
	c.Exec("echo b")

	require.True(t, c.HandleKey(KeyHistoryOlder))
	assert.Equal(t, "echo b", c.Input())
	require.True(t, c.HandleKey(KeyHistoryOlder))
	assert.Equal(t, "echo a", c.Input())
	assert.False(t, c.HandleKey(KeyHistoryOlder), "older at the first line should not move")
	assert.Equal(t, "echo a", c.Input())

	require.True(t, c.HandleKey(KeyHistoryNewer))
	assert.Equal(t, "echo b", c.Input())
	require.True(t, c.HandleKey(KeyHistoryNewer))
	assert.Equal(t, "", c.Input(), "newer past the last line clears the input")
	assert.False(t, c.HandleKey(KeyHistoryNewer))
}

func TestConsole_HintKeys(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	require.NoError(t, c.Register("hexdump", commands.Func0(func() error { return nil })))

	assert.False(t, c.HandleKey(KeyHintNext), "no hints before typing")

	c.SetInput("he")
	hints, selected := c.Hints()
	require.Len(t, hints, 3)
	assert.Equal(t, -1, selected)
	assert.Equal(t, "help <command:string>", hints[1].Signature)

	require.True(t, c.HandleKey(KeyHintPrev))
	_, selected = c.Hints()
	assert.Equal(t, 2, selected, "prev from no selection lands on the last hint")

	require.True(t, c.HandleKey(KeyHintConfirm))
	assert.Equal(t, "hexdump", c.Input())

	hints, selected = c.Hints()
	require.Len(t, hints, 1)
	assert.Equal(t, -1, selected)
}

func TestConsole_HintConfirmWithoutSelection(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	c.SetInput("ec")
	assert.False(t, c.HandleKey(KeyHintConfirm))
	assert.Equal(t, "ec", c.Input())
}

func TestConsole_SubmitKey(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	c.SetInput("echo via key")
	assert.True(t, c.HandleKey(KeySubmit))
	assert.Equal(t, []string{"via key"}, texts(c.Buffer().Entries()))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "hint-confirm", KeyHintConfirm.String())
	assert.Equal(t, "key(?)", Key(99).String())
}

// =============================================================================
// BUILT-INS
// =============================================================================

func TestBuiltins_Help(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})

	c.Exec("help echo")
	entries := c.Buffer().Entries()
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Text, "echo <text:string>"))
	assert.Contains(t, entries[0].Text, "Print text to the console")

	c.Exec("clear")
	c.Exec("help")
	entries = c.Buffer().Entries()
	require.Len(t, entries, c.Registry().Len()+1)
	assert.Equal(t, fmt.Sprintf("%d commands:", c.Registry().Len()), entries[0].Text)

	c.Exec("clear")
	res := c.Exec("help nosuch")
	assert.True(t, commands.IsHandlerFault(res.Err))
}

func TestBuiltins_HelpKeepsLongSignatures(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	require.NoError(t, c.Register("cvar", commands.Func1(func(string) error { return nil }).
		Named("key").Describe("Show a setting")))
	require.NoError(t, c.Register("cvar", commands.Func2(func(string, string) error { return nil }).
		Named("key", "value").Describe("Change a setting")))

	c.Exec("help cvar")
	entries := c.Buffer().Entries()
	require.Len(t, entries, 2)
	assert.True(t, strings.HasPrefix(entries[1].Text, "cvar <key:string> <value:string>  Change a setting"))
	// Descriptions line up in one column.
	assert.Equal(t, strings.Index(entries[0].Text, "Show"), strings.Index(entries[1].Text, "Change"))

	c.Exec("clear")
	c.Exec("help")
	var found bool
	for _, e := range c.Buffer().Entries() {
		if strings.Contains(e.Text, "cvar <key:string> <value:string>") {
			found = true
		}
	}
	assert.True(t, found, "help should print the full two-argument signature")
}

func TestBuiltins_Clear(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	c.Exec("echo a")
	c.Exec("echo b")

	c.Exec("clear")
	assert.Equal(t, 0, c.Buffer().Len())
	assert.Equal(t, 0, c.Buffer().Live())
}

func TestBuiltins_History(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	c.Exec("echo a")
	c.Exec("clear")
	c.Exec("history")

	assert.Equal(t, []string{
		"   1  echo a",
		"   2  clear",
		"   3  history",
	}, texts(c.Buffer().Entries()))
}

func TestBuiltins_Scrollback(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	for i := 0; i < 10; i++ {
		c.Push(fmt.Sprintf("line %d", i), logbuf.Info)
	}

	res := c.Exec("scrollback 3")
	require.Equal(t, commands.Succeeded, res.Outcome)
	assert.Equal(t, 3, c.Buffer().Capacity())
	assert.Equal(t, 3, c.Config().Capacity)
	assert.Equal(t, []string{"line 8", "line 9", "Scrollback set to 3 lines"}, texts(c.Buffer().Entries()))

	res = c.Exec("scrollback 0")
	assert.True(t, commands.IsHandlerFault(res.Err))
	assert.Equal(t, 3, c.Buffer().Capacity())
}

func TestBuiltins_Exit(t *testing.T) {
	t.Run("with hook", func(t *testing.T) {
		called := 0
		c := newConsole(t, config.ConsoleConfig{}, WithExitHook(func() { called++ }))
		res := c.Exec("exit")
		assert.Equal(t, commands.Succeeded, res.Outcome)
		assert.Equal(t, 1, called)
	})

	t.Run("without hook", func(t *testing.T) {
		c := newConsole(t, config.ConsoleConfig{})
		res := c.Exec("exit")
		require.Equal(t, commands.Failed, res.Outcome)
		assert.True(t, errors.Is(res.Err, ErrNoExitHook))

		entries := c.Buffer().Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, logbuf.Error, entries[0].Severity)
	})
}

// =============================================================================
// SETTINGS AND TEARDOWN
// =============================================================================

func TestConsole_ApplyShrinksCapacity(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{Capacity: 10})
	for i := 0; i < 10; i++ {
		c.Push(fmt.Sprintf("line %d", i), logbuf.Info)
	}

	c.Apply(config.ConsoleConfig{Capacity: 4, EchoSeverity: "error"})

	assert.Equal(t, 4, c.Buffer().Capacity())
	assert.Equal(t, []string{"line 6", "line 7", "line 8", "line 9"}, texts(c.Buffer().Entries()))
	assert.Equal(t, 4, c.Buffer().Live())
	assert.Equal(t, config.DefaultPrompt, c.Config().Prompt, "unset fields keep their old value")

	c.Exec("echo x")
	entries := c.Buffer().Entries()
	assert.Equal(t, logbuf.Error, entries[len(entries)-1].Severity)
}

func TestConsole_CloseReleasesEverything(t *testing.T) {
	c := New(config.ConsoleConfig{})
	require.NoError(t, c.Register("spawn", commands.Func0(func() error { return nil })))
	c.Exec("echo a")
	require.Equal(t, 1, c.Buffer().Live())

	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.Buffer().Live())
	assert.Empty(t, c.Registry().Lookup("help"), "built-ins are unregistered")
	assert.Len(t, c.Registry().Lookup("spawn"), 1, "host commands are left alone")

	assert.Equal(t, commands.Skipped, c.Exec("echo b").Outcome)
	assert.NoError(t, c.Close())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func TestConsole_Transcript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")
	c := newConsole(t, config.ConsoleConfig{}, WithTranscript(path), WithSessionID("test-session"))
	require.True(t, c.TranscriptEnabled())

	c.Exec("echo one")
	c.Exec("nosuch")

	recs, err := c.Transcript(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "one", recs[0].Text)
	assert.Equal(t, "test-session", recs[0].Session)
	assert.Equal(t, logbuf.Error, recs[1].Severity)

	// Clearing the scrollback does not touch the transcript.
	c.Exec("clear")
	recs, err = c.Transcript(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestConsole_TranscriptSessions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transcript.db")

	old, err := transcript.OpenWithRetention(path, 0)
	require.NoError(t, err)
	require.NoError(t, old.StartSession(ctx, "expired", time.Now().Add(-transcript.DefaultRetention-time.Hour)))
	require.NoError(t, old.StartSession(ctx, "earlier", time.Now().Add(-time.Hour)))
	require.NoError(t, old.Close())

	c := newConsole(t, config.ConsoleConfig{}, WithTranscript(path), WithSessionID("current"))
	c.Exec("echo one")

	sessions, err := c.TranscriptSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "current", sessions[0].ID)
	assert.Equal(t, 1, sessions[0].Entries)
	assert.Equal(t, "earlier", sessions[1].ID)
}

func TestConsole_TranscriptOpenFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	c := newConsole(t, config.ConsoleConfig{}, WithTranscript(filepath.Join(blocker, "t.db")))
	assert.False(t, c.TranscriptEnabled())

	entries := c.Buffer().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, logbuf.Warning, entries[0].Severity)
	assert.True(t, strings.HasPrefix(entries[0].Text, "Transcript disabled: "))

	c.Exec("echo still works")
	assert.Equal(t, 2, c.Buffer().Len())

	_, err := c.Transcript(context.Background(), 0)
	assert.ErrorIs(t, err, transcript.ErrClosed)
	_, err = c.TranscriptSessions(context.Background())
	assert.ErrorIs(t, err, transcript.ErrClosed)
}

// =============================================================================
// HOST WRITER
// =============================================================================

func TestHostWriter(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	w := c.HostWriter()

	lines := []string{
		`{"time":"10:04AM","level":"warn","prefix":"journal","msg":"disk low","free":12,"path":"/tmp x"}`,
		`{"level":"error","msg":"boom"}`,
		`{"level":"trace","msg":"odd level"}`,
		`not json at all`,
		``,
	}
	_, err := w.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)

	entries := c.Buffer().Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, `journal: disk low free=12 path="/tmp x"`, entries[0].Text)
	assert.Equal(t, logbuf.Warning, entries[0].Severity)
	assert.Equal(t, "boom", entries[1].Text)
	assert.Equal(t, logbuf.Error, entries[1].Severity)
	assert.Equal(t, "odd level", entries[2].Text)
	assert.Equal(t, logbuf.Info, entries[2].Severity)
	assert.Equal(t, "not json at all", entries[3].Text)
}

func TestHostWriter_PartialLines(t *testing.T) {
	c := newConsole(t, config.ConsoleConfig{})
	w := c.HostWriter()

	_, _ = w.Write([]byte("plain te"))
	assert.Equal(t, 0, c.Buffer().Len(), "a partial line is held back")

	_, _ = w.Write([]byte("xt\r\nsecond\n"))
	assert.Equal(t, []string{"plain text", "second"}, texts(c.Buffer().Entries()))
}
