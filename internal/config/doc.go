// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates and watches the journal configuration.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ConsoleConfig: scrollback capacity, panel height, prompt, echo, toggle key
//   - LoggingConfig: application log level and file
//   - TranscriptConfig: SQLite session transcript
//   - Watcher: fsnotify based hot reload
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (JOURNAL_*)
//   - ~/.journal/config.toml
//   - ~/.journal/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Warn("using defaults", "err", err)
//	}
//
//	w, _ := config.NewWatcher(path, func(c *config.Config) {
//	    con.Apply(c.Console)
//	}, config.WatcherOptions{})
//	go w.Run(ctx)
package config
