// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the console panel.

HintPopup (hints.go) - The hint list for the command name being typed. It
renders the console's hint index; selection lives in the index, not here.

StatusBar (statusbar.go) - The one-line summary in the host status area:
log fill, history count, transcript indicator and key shortcuts.
*/
package components
