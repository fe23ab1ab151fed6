// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string.
func toStr(n int) string {
	return strconv.Itoa(n)
}

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	return humanize.Comma(int64(n))
}
