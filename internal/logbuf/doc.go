// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logbuf provides the bounded scrollback buffer behind the console.
//
// The buffer keeps entries oldest to newest and never holds more than its
// capacity. Pushing past the bound evicts the oldest entry. Every entry
// carries a display Handle that a renderer may attach its own state to;
// the handle is released synchronously when the entry is evicted or
// cleared.
//
// # Key Types
//
//   - Buffer: Bounded FIFO of entries, safe for concurrent readers
//   - Entry: One log line with severity and sequence number
//   - Handle: Display capability lent to the renderer
//   - Severity: Info, Warning, Error, Fatal
//
// # Usage
//
//	buf := logbuf.New(200)
//	buf.Push("hello", logbuf.Info)
//	for _, e := range buf.Entries() {
//	    fmt.Println(e.Seq, e.Text)
//	}
package logbuf
