// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/journal/internal/commands"
	"github.com/jeranaias/journal/internal/console"
)

func newReplCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Line-mode console with history and tab completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := RequiresTTY("start the repl"); err != nil {
				return err
			}
			return runREPL(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// runREPL reads lines with liner until EOF, Ctrl+C or the exit command.
func runREPL(ctx context.Context, opts *rootOptions, out, errOut io.Writer) error {
	var done atomic.Bool
	a, err := newApp(opts, appOptions{
		hostOutput: func(*console.Console) io.Writer { return errOut },
		exitHook:   func() { done.Store(true) },
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.watchConfig(ctx); err != nil {
		a.logger.Warn("config changes will not be picked up", "err", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(func(input string) []string {
		return completeLine(a.console.Registry(), input)
	})

	printer := &entryPrinter{out: out, color: ColorsEnabled()}
	printer.flush(a.console.Buffer())

	for !done.Load() && ctx.Err() == nil {
		input, err := line.Prompt(a.console.Config().Prompt + " ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		a.console.Exec(input)
		printer.flush(a.console.Buffer())
	}
	return nil
}

// completeLine offers command names for the word being typed, keeping any
// leading whitespace. Overloads collapse to one candidate.
func completeLine(registry *commands.Registry, input string) []string {
	if !commands.TypingName(input) {
		return nil
	}
	lead := input[:len(input)-len(strings.TrimLeft(input, " \t"))]

	var out []string
	seen := make(map[string]bool)
	for _, h := range commands.NewHintIndex(registry).Filter(commands.FirstWord(input)) {
		if seen[h.Name] {
			continue
		}
		seen[h.Name] = true
		out = append(out, lead+h.Name)
	}
	return out
}
