// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the console packages.
//
// # Key Functions
//
// Display width (terminal columns, CJK aware via go-runewidth):
//   - StringWidth: column width of a string
//   - TruncateWidth: cut to a column budget with an ellipsis
//   - PadRight: pad to a column width
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync, used when saving config
//
// # Usage
//
//	// Fit a hint signature into the popup
//	line := util.TruncateWidth(hint.Signature, 40)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
