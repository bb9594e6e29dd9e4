// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/export"
	"github.com/jeranaias/termfolio/internal/logging"
)

type exportFlags struct {
	format      string
	output      string
	frontmatter bool
	open        bool
	theme       string
	light       bool
}

func (a *app) newExportCmd() *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print or save the resume in another format",
		Long: fmt.Sprintf(`export renders the resume as %s.

Without --output the result goes to stdout; on a terminal Markdown is
rendered and data formats are syntax highlighted.`, strings.Join(export.Formats(), ", ")),
		Example: `  termfolio export
  termfolio export --format json
  termfolio export --format html --output ./site --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExport(cmd.OutOrStdout(), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", "md", "output format: "+strings.Join(export.Formats(), ", "))
	fl.StringVarP(&f.output, "output", "o", "", "write a file into this directory instead of stdout")
	fl.BoolVar(&f.frontmatter, "frontmatter", false, "add YAML frontmatter to Markdown")
	fl.BoolVar(&f.open, "open", false, "open the written file (with --output)")
	fl.StringVar(&f.theme, "theme", "", "palette for HTML (default from config)")
	fl.BoolVar(&f.light, "light", false, "use the light palette for HTML")
	return cmd
}

func (a *app) runExport(out io.Writer, f exportFlags) error {
	src, err := a.openResume(logging.Discard())
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Frontmatter = f.frontmatter
	opts.OpenAfterExport = f.open
	opts.Theme = a.cfg.UI.Theme
	opts.Dark = a.cfg.UI.Dark && !f.light
	if f.theme != "" {
		opts.Theme = f.theme
	}

	exp, err := export.ForFormat(f.format, opts)
	if err != nil {
		return fmt.Errorf("%w (choose from %s)", err, strings.Join(export.Formats(), ", "))
	}

	if f.output != "" {
		opts.OutputDir = f.output
		path, err := export.ExportToFile(src.Current(), exp, opts)
		if path != "" {
			fmt.Fprintln(out, path)
		}
		return err
	}

	data, err := exp.Export(src.Current())
	if err != nil {
		return err
	}
	if !colorsEnabled(out) {
		_, err = out.Write(data)
		return err
	}

	switch exp.FileExtension() {
	case ".md":
		fmt.Fprint(out, renderMarkdown(string(data), terminalWidth(out)))
	case ".json", ".yaml", ".toml", ".html":
		fmt.Fprint(out, highlightCode(string(data), strings.TrimPrefix(exp.FileExtension(), ".")))
	default:
		_, err = out.Write(data)
	}
	return err
}

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

// renderMarkdown renders Markdown for terminal display. It returns the
// input unchanged when rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// highlightCode applies terminal syntax highlighting, falling back to
// the plain input.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
