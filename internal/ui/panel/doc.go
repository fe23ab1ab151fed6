// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package panel is the Bubble Tea render surface for a console.Console.

The panel covers the top height_percent of the terminal; the rest is the
host status area, filled by an optional StatusFunc above a one-line status
bar. The toggle key opens and closes the panel.

# Rendering

Each log entry is styled by severity and the result is attached to the
entry's display handle, so an unchanged entry is never styled twice. A width
change re-renders every entry. When the buffer evicts an entry the handle is
released and the cached line goes with it. The model polls the buffer
version so lines pushed from other goroutines (console.HostWriter) appear
without a keypress.

# Keys

	Enter          run the line
	Up / Down      history
	Tab / S-Tab    cycle hints
	Right / C-space accept the selected hint
	PgUp / PgDn    scroll the log
	Ctrl+C         quit

While the input is empty the prompt alternates between ">" and ">_" once
per second.
*/
package panel
