// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the journal console.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Severity Colors (colors.go)

Log lines are colored by severity:

	SeverityInfo    - white (near-black on light terminals)
	SeverityWarning - yellow
	SeverityError   - red, bold
	SeverityFatal   - dark red, bold

Warning and above also carry an ASCII indicator ([!], [X], [!!]) so the
level is readable without color.

# Theme (theme.go)

Theme groups the panel, log line, input, hint popup and status area styles.
NewTheme detects the terminal profile with termenv; NewThemeForProfile takes
one explicitly.

# Animation (animations.go)

PromptBlink alternates the prompt between ">" and ">_" once per second
while the input line is empty.
*/
package styles
