// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build information, set via -ldflags at release time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrCommandFailed is returned by exec when any line logged an error.
var ErrCommandFailed = errors.New("one or more console commands failed")

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath   string
	logLevel     string
	logFile      string
	transcript   string
	noTranscript bool
}

// NewRootCommand builds the journal command tree. With no subcommand the
// full-screen console runs.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "journal",
		Short: "An in-app developer console",
		Long: `journal is a drop-down developer console: type commands, read their
output in a scrolling log, recall earlier lines and complete command names.

Run without arguments for the full-screen console, "journal repl" for a
line-mode prompt, or "journal exec" to run lines non-interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.journal/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "write diagnostics to this file")
	flags.StringVar(&opts.transcript, "transcript", "", "mirror the log to this SQLite file")
	flags.BoolVar(&opts.noTranscript, "no-transcript", false, "disable the transcript for this run")
	root.MarkFlagsMutuallyExclusive("transcript", "no-transcript")

	root.AddCommand(
		newReplCommand(opts),
		newExecCommand(opts),
		newVersionCommand(),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrCommandFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
