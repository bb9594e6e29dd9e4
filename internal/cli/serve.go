// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/server"
	"github.com/jeranaias/termfolio/internal/storage"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr, db string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the terminal over HTTP",
		Long: `serve runs the web terminal. Each browser gets its own session;
preferences are kept per visitor in a SQLite database.

Environment: PORT or TERMFOLIO_ADDR set the listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if db != "" {
				a.cfg.Server.Database = db
			}
			return a.runServe(cmd)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&db, "db", "", "SQLite database for visitor preferences")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	logger, _, err := logging.New(logging.Options{Writer: cmd.ErrOrStderr(), Level: a.cfg.LogLevel})
	if err != nil {
		return err
	}
	if a.cfg.LogLevel != logging.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	src, err := a.openResume(logger)
	if err != nil {
		return err
	}

	db, err := storage.OpenDB(a.cfg.Server.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := server.New(server.Config{
		Addr:           a.cfg.Server.Addr,
		Resume:         src,
		DB:             db,
		Defaults:       a.cfg.Preferences(),
		PromptUser:     a.cfg.Profile.PromptUser,
		DownloadFile:   a.cfg.Profile.DownloadFile,
		RateLimit:      a.cfg.Server.RateLimit,
		Burst:          a.cfg.Server.Burst,
		MaxInput:       a.cfg.Server.MaxInput,
		IdleTimeout:    a.cfg.IdleTimeout(),
		MaxSessions:    a.cfg.Server.MaxSessions,
		PrefsRetention: a.cfg.PrefsRetention(),
		TrustedProxies: a.cfg.Server.TrustedProxies,
		Version:        Version,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting web terminal", "addr", a.cfg.Server.Addr, "resume", src.Current().Name, "version", Version)
	return srv.Run(ctx)
}
