// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/journal/internal/config"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change saved settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := readConfig(opts)
				if err != nil {
					return err
				}
				v, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting and save the file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfigValue(opts, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List every setting with its value",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := readConfig(opts)
				if err != nil {
					return err
				}
				for _, key := range config.GetAllKeys() {
					v, err := cfg.Get(key)
					if err != nil {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, v)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path := opts.configPath
				if path == "" {
					path = defaultWatchPath()
				}
				if path == "" {
					return fmt.Errorf("could not determine config path")
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return cmd
}

// readConfig returns the --config file, or the process-wide config.
func readConfig(opts *rootOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFromPath(opts.configPath)
	}
	return config.Global(), nil
}

// setConfigValue updates key in the config file. The file is read as
// written, so JOURNAL_* overrides from the environment never reach disk. A
// file that fails to load is never overwritten with defaults.
func setConfigValue(opts *rootOptions, key, value string) error {
	path := opts.configPath
	if path == "" {
		path = defaultWatchPath()
	}
	if path == "" {
		return fmt.Errorf("could not determine config path")
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil || opts.configPath != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if strings.HasSuffix(path, ".json") {
		err = config.SaveJSON(cfg, path)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	live := cfg.Clone()
	live.ApplyEnvOverrides()
	config.SetGlobal(live)
	return nil
}
