// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the journal command tree.
//
// Three front ends share one console setup (config, loggers, transcript
// and host commands):
//
//   - journal: the full-screen drop-down console (Bubble Tea)
//   - journal repl: a line prompt with history and tab completion (liner)
//   - journal exec: runs lines from arguments or stdin and prints the log
//
// # Host Commands
//
// On top of the console built-ins the program registers:
//   - cvar <key>: show a setting
//   - cvar <key> <value>: change a setting for this session
//   - cvars: list every setting
//   - transcript <lines>: show stored lines of this session
//   - sessions: list stored sessions, newest first
//
// # Settings
//
//   - journal config get|set|keys|path: read and edit ~/.journal/config.toml
//
// The config file is watched while a console is open; saved changes are
// applied without a restart.
package cli
