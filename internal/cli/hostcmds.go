// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/journal/internal/commands"
	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/logbuf"
)

// transcriptTimeout bounds a transcript query from the console.
const transcriptTimeout = 2 * time.Second

// registerHostCommands adds the commands this program provides on top of
// the console built-ins.
func (a *app) registerHostCommands() {
	cmds := []struct {
		name    string
		handler commands.Handler
	}{
		{"cvar", commands.Func1(a.showCvar).Named("key").
			Describe("Show a setting")},
		{"cvar", commands.Func2(a.setCvar).Named("key", "value").
			Describe("Change a setting for this session")},
		{"cvars", commands.Func0(a.listCvars).
			Describe("List every setting")},
		{"transcript", commands.Func1(a.showTranscript).Named("lines").
			Describe("Show the last stored lines of this session")},
		{"sessions", commands.Func0(a.listSessions).
			Describe("List stored transcript sessions")},
	}

	for _, c := range cmds {
		if err := a.console.Register(c.name, c.handler); err != nil {
			a.logger.Warn("host command not registered", "name", c.name, "err", err)
		}
	}
}

func (a *app) showCvar(key string) error {
	v, err := a.config().Get(key)
	if err != nil {
		return err
	}
	a.console.Push(fmt.Sprintf("%s = %v", key, v), logbuf.Info)
	return nil
}

// setCvar changes one setting in memory. The file on disk is untouched.
func (a *app) setCvar(key, value string) error {
	next := a.config().Clone()
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	a.setConfig(next)

	v, _ := next.Get(key)
	a.console.Push(fmt.Sprintf("%s = %v", key, v), logbuf.Info)
	return nil
}

func (a *app) listCvars() error {
	cfg := a.config()
	for _, key := range config.GetAllKeys() {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		a.console.Push(fmt.Sprintf("%s = %v", key, v), logbuf.Info)
	}
	return nil
}

func (a *app) showTranscript(lines int) error {
	if lines < 1 {
		return fmt.Errorf("lines must be positive")
	}
	ctx, cancel := context.WithTimeout(context.Background(), transcriptTimeout)
	defer cancel()

	records, err := a.console.Transcript(ctx, lines)
	if err != nil {
		return err
	}
	for _, r := range records {
		a.console.Push(fmt.Sprintf("%s  %s", r.Time.Format(time.TimeOnly), r.Text), r.Severity)
	}
	return nil
}

// listSessions prints one line per stored session, newest first. The
// current session is marked with "*".
func (a *app) listSessions() error {
	ctx, cancel := context.WithTimeout(context.Background(), transcriptTimeout)
	defer cancel()

	sessions, err := a.console.TranscriptSessions(ctx)
	if err != nil {
		return err
	}
	current := a.console.SessionID()
	for _, s := range sessions {
		mark := " "
		if s.ID == current {
			mark = "*"
		}
		id := s.ID
		if len(id) > 8 {
			id = id[:8]
		}
		a.console.Push(fmt.Sprintf("%s %s  %s  %s entries (%s)",
			mark, id, s.StartedAt.Format(time.DateTime),
			humanize.Comma(int64(s.Entries)), humanize.Time(s.StartedAt)), logbuf.Info)
	}
	return nil
}
