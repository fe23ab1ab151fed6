// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/journal/internal/logbuf"
	"github.com/jeranaias/journal/internal/ui/styles"
)

// entryPrinter copies new log entries to a line-mode output.
type entryPrinter struct {
	out   io.Writer
	color bool
	// last is the sequence number of the last entry printed
	last uint64
}

// flush prints every entry added since the previous flush and returns how
// many of them were errors or worse.
func (p *entryPrinter) flush(buf *logbuf.Buffer) int {
	failures := 0
	for _, e := range buf.EntriesSince(p.last) {
		p.last = e.Seq
		if e.Severity.AtLeast(logbuf.Error) {
			failures++
		}
		fmt.Fprintln(p.out, p.format(e))
	}
	return failures
}

func (p *entryPrinter) format(e logbuf.Entry) string {
	if p.color {
		return styles.RenderSeverity(e.Severity, e.Text)
	}
	if ind := styles.SeverityIndicators.Indicator(e.Severity); ind != "" {
		return ind + " " + e.Text
	}
	return e.Text
}
