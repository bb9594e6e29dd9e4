// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/export"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

func (a *app) newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run one terminal command and print its output",
		Example: `  termfolio exec skills
  termfolio exec theme dracula
  termfolio exec -- experience --help`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExec(cmd.OutOrStdout(), cmd.ErrOrStderr(), strings.Join(args, " "))
		},
	}
}

// runExec runs input in a fresh session that shares the local
// preferences file, and prints the lines it produced.
func (a *app) runExec(out, errOut io.Writer, input string) error {
	logger := logging.Discard()

	src, err := a.openResume(logger)
	if err != nil {
		return err
	}

	dl := export.NewDirDownloader(a.cfg.Paths.Downloads, a.cfg.Profile.DownloadFile, logger)
	sess := a.localSession(src, dl, logger)

	before := len(sess.Lines())
	res := sess.Run(input)

	lines := sess.Lines()
	if !res.Clear {
		// Skip the echoed prompt line.
		lines = lines[before+1:]
	}

	render := markup.PlainText
	if colorsEnabled(out) {
		theme := styles.NewTheme(rendererFor(out), sess.Prefs())
		render = theme.Render
	}
	for _, line := range lines {
		fmt.Fprintln(out, render(line))
	}

	if path := dl.LastPath(); path != "" {
		fmt.Fprintf(errOut, "saved %s\n", path)
	}
	return nil
}
