// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/journal/internal/commands"
	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/logbuf"
	"github.com/jeranaias/journal/internal/util"
)

// ErrNoExitHook is returned by the exit command when the host did not
// provide a way to close.
var ErrNoExitHook = errors.New("this host cannot be closed from the console")

// helpColumn is the minimum signature column width in help output.
const helpColumn = 28

// registerBuiltins adds the console's own commands. They are ordinary
// registrations and can be shadowed only by unregistering them first.
func (c *Console) registerBuiltins() {
	builtins := []struct {
		name    string
		handler commands.Handler
	}{
		{"help", commands.Func0(c.helpAll).
			Describe("List every command")},
		{"help", commands.Func1(c.helpOne).Named("command").
			Describe("Show the signatures of one command")},
		{"echo", commands.Func1(c.echo).Named("text").
			Describe("Print text to the console")},
		{"exit", commands.Func0(c.exit).
			Describe("Close the console host")},
		{"clear", commands.Func0(c.clear).
			Describe("Clear the console log")},
		{"history", commands.Func0(c.showHistory).
			Describe("List the lines submitted this session")},
		{"scrollback", commands.Func1(c.scrollback).Named("lines").
			Describe("Set how many log lines are kept")},
	}

	seen := make(map[string]bool)
	for _, b := range builtins {
		if err := c.registry.Register(b.name, b.handler); err != nil {
			c.logger.Warn("built-in not registered", "name", b.name, "err", err)
			continue
		}
		if !seen[b.name] {
			seen[b.name] = true
			c.builtins = append(c.builtins, b.name)
		}
	}
}

// signatureWidth returns the column width that fits every signature in
// descs, at least helpColumn.
func signatureWidth(descs []*commands.Descriptor) int {
	width := helpColumn
	for _, d := range descs {
		width = max(width, util.StringWidth(d.Signature()))
	}
	return width
}

// helpLine formats one descriptor for help output. Signatures are never
// truncated; width is the signature column.
func helpLine(d *commands.Descriptor, width int) string {
	sig := util.PadRight(d.Signature(), width)
	if d.Description == "" {
		return strings.TrimRight(sig, " ")
	}
	return sig + "  " + d.Description
}

func (c *Console) helpAll() error {
	descs := c.registry.List()
	width := signatureWidth(descs)
	c.Push(fmt.Sprintf("%d commands:", len(descs)), logbuf.Info)
	for _, d := range descs {
		c.Push("  "+helpLine(d, width), logbuf.Info)
	}
	return nil
}

func (c *Console) helpOne(name string) error {
	descs := c.registry.Lookup(name)
	if len(descs) == 0 {
		return fmt.Errorf("no command named %q", name)
	}
	width := signatureWidth(descs)
	for _, d := range descs {
		c.Push(helpLine(d, width), logbuf.Info)
	}
	return nil
}

func (c *Console) echo(text string) error {
	c.Push(text, logbuf.Severity(c.echoSeverity.Load()))
	return nil
}

func (c *Console) exit() error {
	if c.exitHook == nil {
		return ErrNoExitHook
	}
	c.exitHook()
	return nil
}

func (c *Console) clear() error {
	c.buffer.Clear()
	return nil
}

func (c *Console) showHistory() error {
	for i, line := range c.history.Lines() {
		c.Push(fmt.Sprintf("%4d  %s", i+1, line), logbuf.Info)
	}
	return nil
}

func (c *Console) scrollback(lines int) error {
	if lines < 1 || lines > config.MaxCapacity {
		return fmt.Errorf("lines must be between 1 and %d", config.MaxCapacity)
	}
	if err := c.buffer.SetCapacity(lines); err != nil {
		return err
	}

	c.mu.Lock()
	c.cfg.Capacity = lines
	c.mu.Unlock()

	c.Push(fmt.Sprintf("Scrollback set to %d lines", lines), logbuf.Info)
	return nil
}
