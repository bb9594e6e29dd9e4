// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/repl"
	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// app carries global flag values and the loaded configuration to the
// subcommands.
type app struct {
	configPath string
	resumePath string
	logLevel   string

	cfg *config.Config
}

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd returns the termfolio command tree. Running it without a
// subcommand starts the full-screen terminal.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "termfolio",
		Short: "A portfolio you explore from a terminal",
		Long: `termfolio presents a resume as an interactive terminal. Type commands
like about, skills, or experience to explore it, in a full-screen TUI,
a line-mode REPL, or a browser via the built-in web server.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.load() },
		RunE:              a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default is $HOME/.termfolio/config.toml)")
	pf.StringVarP(&a.resumePath, "resume", "r", "", "resume file (.json, .toml, .yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.newTUICmd(),
		a.newREPLCmd(),
		a.newServeCmd(),
		a.newExecCmd(),
		a.newExportCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and applies global flags over it.
func (a *app) load() error {
	config.SetCatalog(styles.Catalog())

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.resumePath != "" {
		cfg.Profile.Resume = a.resumePath
	}
	if a.logLevel != "" {
		if !logging.ValidLevel(a.logLevel) {
			return fmt.Errorf("invalid --log-level %q: must be debug, info, warn, or error", a.logLevel)
		}
		cfg.LogLevel = a.logLevel
	}

	config.SetGlobal(cfg)
	a.cfg = cfg
	return nil
}

// =============================================================================
// SHARED SETUP
// =============================================================================

func (a *app) openResume(logger *slog.Logger) (*resume.Source, error) {
	src, err := resume.Open(a.cfg.Profile.Resume, logger)
	if err != nil {
		return nil, fmt.Errorf("open resume: %w", err)
	}
	return src, nil
}

// localSession builds a session for a local front end: preferences in the
// prefs file, history from the history file.
func (a *app) localSession(src *resume.Source, dl session.Downloader, logger *slog.Logger) *session.Session {
	return session.New(session.Config{
		Resume:     src,
		Store:      storage.NewFileStore(a.cfg.Paths.Prefs),
		Defaults:   a.cfg.Preferences(),
		Catalog:    styles.Catalog(),
		PromptUser: a.cfg.Profile.PromptUser,
		Registry:   commands.Builtins(),
		Downloader: dl,
		History:    repl.LoadHistory(a.cfg.Paths.History),
		Logger:     logger,
	})
}

// fileLogger logs to the config directory, for front ends that own the
// terminal.
func (a *app) fileLogger() (*slog.Logger, func(), error) {
	logger, closer, err := logging.New(logging.Options{Dir: a.cfg.Paths.Logs, Level: a.cfg.LogLevel})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { closer.Close() }, nil
}
