// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/jeranaias/journal/internal/logbuf"
)

// reservedKeys are the charmbracelet/log JSON fields that are not shown as
// key=value pairs.
var reservedKeys = map[string]bool{
	"time":   true,
	"level":  true,
	"msg":    true,
	"prefix": true,
	"caller": true,
}

// HostWriter returns a writer that forwards host log output into the
// console. Each line that is a charmbracelet/log JSON record becomes one
// entry at the record's level (debug and info map to Info, warn to Warning);
// any other line becomes an Info entry as written. Partial lines are held
// until their newline arrives. The writer is safe for concurrent use.
func (c *Console) HostWriter() io.Writer {
	return &hostWriter{console: c}
}

type hostWriter struct {
	console *Console

	mu      sync.Mutex
	pending bytes.Buffer
}

func (w *hostWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending.Write(p)
	for {
		data := w.pending.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(data[:i]), "\r")
		w.pending.Next(i + 1)

		if strings.TrimSpace(line) == "" {
			continue
		}
		text, sev := decodeHostLine(line)
		w.console.Push(text, sev)
	}
	return len(p), nil
}

// decodeHostLine turns a JSON log record into display text and severity.
func decodeHostLine(line string) (string, logbuf.Severity) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return line, logbuf.Info
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return line, logbuf.Info
	}

	level, _ := rec["level"].(string)
	sev, err := logbuf.ParseSeverity(level)
	if err != nil {
		sev = logbuf.Info
	}

	var b strings.Builder
	if prefix, ok := rec["prefix"].(string); ok && prefix != "" {
		b.WriteString(strings.TrimSuffix(prefix, ":"))
		b.WriteString(": ")
	}
	msg, _ := rec["msg"].(string)
	b.WriteString(msg)

	keys := make([]string, 0, len(rec))
	for k := range rec {
		if !reservedKeys[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, formatValue(rec[k]))
	}
	return b.String(), sev
}

// formatValue renders a decoded JSON value the way logfmt would.
func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		if strings.ContainsAny(v, " \t\"=") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
