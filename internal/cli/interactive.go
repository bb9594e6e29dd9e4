// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/export"
	"github.com/jeranaias/termfolio/internal/repl"
	"github.com/jeranaias/termfolio/internal/ui/terminal"
)

// =============================================================================
// TUI
// =============================================================================

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen terminal (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if err := RequiresTTY("run the terminal"); err != nil {
		return fmt.Errorf("%w (try: termfolio repl, or termfolio exec <command>)", err)
	}

	logger, closeLog, err := a.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := a.openResume(logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := src.Watch(ctx); err != nil {
		logger.Warn("resume watch disabled", "error", err)
	}

	dl := export.NewDirDownloader(a.cfg.Paths.Downloads, a.cfg.Profile.DownloadFile, logger)
	sess := a.localSession(src, dl, logger)

	model := terminal.New(sess, terminal.Options{DownloadPath: dl.LastPath})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()
	if err := repl.SaveHistory(a.cfg.Paths.History, sess.History().Entries()); err != nil {
		logger.Debug("history save failed", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal: %w", runErr)
	}
	return nil
}

// =============================================================================
// REPL
// =============================================================================

func (a *app) newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Explore the portfolio in line mode",
		Long: `repl reads one command per line with tab completion and persistent
history, printing each answer below the prompt.`,
		Args: cobra.NoArgs,
		RunE: a.runREPL,
	}
}

func (a *app) runREPL(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := a.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := a.openResume(logger)
	if err != nil {
		return err
	}
	if err := src.Watch(cmd.Context()); err != nil {
		logger.Warn("resume watch disabled", "error", err)
	}

	out := cmd.OutOrStdout()
	dl := export.NewDirDownloader(a.cfg.Paths.Downloads, a.cfg.Profile.DownloadFile, logger)
	r := repl.New(a.localSession(src, dl, logger), repl.Options{
		Out:         out,
		Renderer:    rendererFor(out),
		HistoryFile: a.cfg.Paths.History,
		Logger:      logger,
	})
	defer r.Close()

	return r.Run(cmd.Context())
}
