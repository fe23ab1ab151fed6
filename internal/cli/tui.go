// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/journal/internal/console"
	"github.com/jeranaias/journal/internal/ui/panel"
	"github.com/jeranaias/journal/internal/ui/styles"
)

// runTUI runs the full-screen console until the user quits or ctx ends.
// Host diagnostics are encoded as JSON and land in the console log.
func runTUI(ctx context.Context, opts *rootOptions) error {
	if err := RequiresTTY("open the console"); err != nil {
		return err
	}

	exit := &panel.ExitSignal{}
	a, err := newApp(opts, appOptions{
		hostOutput: func(c *console.Console) io.Writer { return c.HostWriter() },
		json:       true,
		exitHook:   exit.Request,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.watchConfig(ctx); err != nil {
		a.logger.Warn("config changes will not be picked up", "err", err)
	}

	theme := styles.NewThemeForProfile(GetColorProfile(), termenv.HasDarkBackground())
	m := panel.New(a.console, theme,
		panel.WithExitSignal(exit),
		panel.WithStatus(hostStatus(a, theme)),
	)

	a.logger.Info("console ready", "version", Version)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// hostStatus draws the area the panel leaves to the host.
func hostStatus(a *app, theme *styles.Theme) panel.StatusFunc {
	return func(width, height int) string {
		if width <= 0 || height <= 0 {
			return ""
		}
		key := a.console.Config().ToggleKey
		text := theme.ShortcutDesc.Render(fmt.Sprintf("journal %s  session %s  press %s to toggle the console",
			Version, shortSession(a.console.SessionID()), key))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
	}
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
