// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the lines submitted to the console during one
// session and lets the input surface walk back and forth through them.
//
// History is session scoped. Nothing is written to disk.
package history
