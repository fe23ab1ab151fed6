// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/jeranaias/journal/internal/console"
)

func newExecCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [line...]",
		Short: "Run console lines and print the log",
		Long: `Run each argument as a console line and print the resulting log entries.
With no arguments, lines are read from stdin. The exit command stops
processing. The exit status is 1 if any line logged an error.`,
		Example: `  journal exec help "echo hello world"
  printf 'cvars\nhistory\n' | journal exec`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// runExec feeds lines to a fresh console, from args or else from in.
func runExec(opts *rootOptions, args []string, in io.Reader, out, errOut io.Writer) error {
	var done atomic.Bool
	a, err := newApp(opts, appOptions{
		hostOutput: func(*console.Console) io.Writer { return errOut },
		exitHook:   func() { done.Store(true) },
	})
	if err != nil {
		return err
	}
	defer a.Close()

	printer := &entryPrinter{out: out, color: ColorsEnabled()}
	failures := printer.flush(a.console.Buffer())

	run := func(line string) bool {
		a.console.Exec(line)
		failures += printer.flush(a.console.Buffer())
		return !done.Load()
	}

	if len(args) > 0 {
		for _, line := range args {
			if !run(line) {
				break
			}
		}
	} else {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if !run(scanner.Text()) {
				break
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d error(s): %w", failures, ErrCommandFailed)
	}
	return nil
}
