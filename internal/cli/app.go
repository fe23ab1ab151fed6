// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/journal/internal/config"
	"github.com/jeranaias/journal/internal/console"
	"github.com/jeranaias/journal/internal/logbuf"
	"github.com/jeranaias/journal/internal/logging"
)

// =============================================================================
// CONFIG LOADING
// =============================================================================

// loadedConfig is a validated config plus where it came from.
type loadedConfig struct {
	cfg *config.Config
	// path is the file to watch for changes
	path string
	// warning is a non-fatal load problem to show in the console
	warning error
}

// loadConfig reads the config named by --config, or the default files, and
// applies the command line overrides.
func loadConfig(opts *rootOptions) (loadedConfig, error) {
	var lc loadedConfig

	if opts.configPath != "" {
		cfg, err := config.LoadFromPath(opts.configPath)
		if err != nil {
			return lc, err
		}
		lc.cfg, lc.path = cfg, opts.configPath
	} else {
		cfg, err := config.Load()
		if cfg == nil {
			return lc, err
		}
		lc.cfg, lc.warning = cfg, err
		lc.path = defaultWatchPath()
	}

	applyFlagOverrides(lc.cfg, opts)
	if err := lc.cfg.Validate(); err != nil {
		return lc, fmt.Errorf("invalid config: %w", err)
	}
	return lc, nil
}

// defaultWatchPath picks the default file Load would read. TOML wins when
// both or neither exist.
func defaultWatchPath() string {
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	if jsonPath, err := config.ConfigPathJSON(); err == nil {
		if _, err := os.Stat(jsonPath); err == nil {
			return jsonPath
		}
	}
	return tomlPath
}

// applyFlagOverrides layers the persistent flags over cfg.
func applyFlagOverrides(cfg *config.Config, opts *rootOptions) {
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	if opts.transcript != "" {
		cfg.Transcript.Enabled = true
		cfg.Transcript.Path = opts.transcript
	}
	if opts.noTranscript {
		cfg.Transcript.Enabled = false
	}
}

// =============================================================================
// APP
// =============================================================================

// appOptions selects how a front end wires the console.
type appOptions struct {
	// hostOutput returns the writer the host logger writes to
	hostOutput func(*console.Console) io.Writer
	// json encodes host logs as JSON lines
	json bool
	// exitHook is called by the exit command
	exitHook func()
}

// app is one running console with its host logger and host commands.
type app struct {
	opts    *rootOptions
	console *console.Console
	logger  *log.Logger
	logFile *os.File
	cfgPath string

	// mu guards cfg
	mu  sync.Mutex
	cfg *config.Config
}

// newApp loads the config and builds a console with the host commands
// registered. The caller must Close it.
func newApp(opts *rootOptions, ao appOptions) (*app, error) {
	lc, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg := lc.cfg
	config.SetGlobal(cfg)

	a := &app{opts: opts, cfg: cfg, cfgPath: lc.path}

	internal := logging.Discard()
	if cfg.Logging.File != "" {
		logger, f, err := logging.NewFile(cfg.Logging.File, logging.Options{
			Level:           cfg.Logging.Level,
			Prefix:          "console",
			ReportTimestamp: true,
		})
		if err != nil {
			return nil, err
		}
		internal, a.logFile = logger, f
	}

	conOpts := []console.Option{console.WithLogger(internal)}
	if ao.exitHook != nil {
		conOpts = append(conOpts, console.WithExitHook(ao.exitHook))
	}
	if cfg.Transcript.Enabled {
		path, err := cfg.TranscriptPath()
		if err != nil {
			a.closeLogFile()
			return nil, err
		}
		conOpts = append(conOpts, console.WithTranscript(path))
	}
	a.console = console.New(cfg.Console, conOpts...)

	out := io.Writer(os.Stderr)
	if ao.hostOutput != nil {
		out = ao.hostOutput(a.console)
	}
	a.logger = logging.New(logging.Options{
		Level:           cfg.Logging.Level,
		Output:          out,
		Prefix:          "journal",
		JSON:            ao.json,
		ReportTimestamp: !ao.json,
	})

	if lc.warning != nil {
		a.console.Push("Config not loaded, using defaults: "+lc.warning.Error(), logbuf.Warning)
	}
	a.registerHostCommands()
	return a, nil
}

// config returns the active config.
func (a *app) config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// setConfig makes cfg active and applies its console settings.
func (a *app) setConfig(cfg *config.Config) {
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()

	config.SetGlobal(cfg)
	a.console.Apply(cfg.Console)
}

// watchConfig reloads the config file whenever it changes until ctx ends.
// Reloads keep the command line overrides.
func (a *app) watchConfig(ctx context.Context) error {
	if a.cfgPath == "" {
		return nil
	}
	w, err := config.NewWatcher(a.cfgPath, func(cfg *config.Config) {
		applyFlagOverrides(cfg, a.opts)
		if err := cfg.Validate(); err != nil {
			a.logger.Warn("reloaded config rejected", "err", err)
			return
		}
		a.setConfig(cfg)
	}, config.WatcherOptions{Logger: a.logger})
	if err != nil {
		return err
	}

	go func() {
		if err := w.Run(ctx); err != nil {
			a.logger.Error("config watcher stopped", "err", err)
		}
	}()
	return nil
}

// Close releases the console and the diagnostic log file.
func (a *app) Close() error {
	err := a.console.Close()
	a.closeLogFile()
	return err
}

func (a *app) closeLogFile() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}
