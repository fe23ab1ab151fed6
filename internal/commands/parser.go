// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains a tokenized input line.
type ParseResult struct {
	// Name is the first token
	Name string

	// Args are the remaining tokens
	Args []string

	// RawInput is the trimmed input line
	RawInput string
}

// Empty reports whether the line had no tokens.
func (p ParseResult) Empty() bool {
	return p.Name == ""
}

// =============================================================================
// PARSER
// =============================================================================

// Parse splits a line into a command name and its argument tokens.
func Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{RawInput: input}

	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return result
	}
	result.Name = tokens[0]
	result.Args = tokens[1:]
	return result
}

// Tokenize splits input into words. Single and double quotes group words.
// Backslashes are literal, so Windows paths such as C:\temp pass through
// unchanged. Environment variables and backticks are left alone. Input the
// shell parser rejects (an unbalanced quote) or stops early on (";", "|",
// "&", "<", ">") is split on whitespace instead so nothing is silently
// dropped.
func Tokenize(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	tokens, err := parser.Parse(literalBackslashes(input))
	if err != nil || parser.Position >= 0 {
		return strings.Fields(input)
	}
	return tokens
}

// literalBackslashes doubles every backslash the shell parser would treat
// as an escape. Inside single quotes a backslash is already literal.
func literalBackslashes(input string) string {
	if !strings.ContainsRune(input, '\\') {
		return input
	}
	var sb strings.Builder
	sb.Grow(len(input) + 8)
	var single, double bool
	for _, r := range input {
		switch {
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case r == '\\' && !single:
			sb.WriteRune(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FirstWord returns the command-name part of an in-progress line.
// e.g., "echo hi" -> "echo"
func FirstWord(input string) string {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	end := strings.IndexFunc(input, unicode.IsSpace)
	if end == -1 {
		return input
	}
	return input[:end]
}

// TypingName reports whether the cursor is still inside the first word,
// i.e. no whitespace follows the command name yet.
func TypingName(input string) bool {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	return input != "" && strings.IndexFunc(input, unicode.IsSpace) == -1
}
