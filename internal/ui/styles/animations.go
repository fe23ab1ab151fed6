// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// PROMPT ANIMATION
// =============================================================================

// SpinnerConfig holds the configuration for a frame animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns frame n, wrapping around.
func (s SpinnerConfig) Frame(n int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if n < 0 {
		n = -n
	}
	return s.Frames[n%len(s.Frames)]
}

// PromptBlink builds the idle prompt animation: the prompt alone, then the
// prompt with a cursor, alternating once per second.
func PromptBlink(prompt string) SpinnerConfig {
	return SpinnerConfig{
		Frames: []string{prompt, prompt + "_"},
		FPS:    1,
	}
}
