// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"html/template"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports the resume as a standalone page styled with one of
// the terminal palettes.
type HTMLExporter struct {
	options *Options
	now     func() time.Time
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts, now: time.Now}
}

type htmlColors struct {
	Background, Text, Panel, Prompt, Secondary, Accent template.CSS
	Output, Error, Input, Highlight                    template.CSS
}

type htmlSection struct {
	Heading string
	Lines   []template.HTML
}

type htmlPage struct {
	Name     string
	Title    string
	Theme    string
	Colors   htmlColors
	Sections []htmlSection
	Exported string
}

// Export converts a resume to HTML.
func (e *HTMLExporter) Export(r *resume.Resume) ([]byte, error) {
	if r == nil {
		return nil, errNilResume
	}

	palette, _ := styles.LookupPalette(e.options.Theme)
	pick := func(c lipgloss.AdaptiveColor) template.CSS {
		return template.CSS(styles.Pick(c, e.options.Dark))
	}

	page := htmlPage{
		Name:  r.Name,
		Title: r.Title,
		Theme: palette.Name,
		Colors: htmlColors{
			Background: pick(palette.Background),
			Text:       pick(palette.Text),
			Panel:      pick(palette.Panel),
			Prompt:     pick(palette.Prompt),
			Secondary:  pick(palette.Secondary),
			Accent:     pick(palette.Accent),
			Output:     pick(styles.Green),
			Error:      pick(styles.Red),
			Input:      pick(styles.Yellow),
			Highlight:  pick(styles.Cyan),
		},
		Exported: e.now().Format("January 2, 2006"),
	}
	for _, s := range sections(r) {
		hs := htmlSection{Heading: s.Name}
		for _, line := range s.Lines {
			// markup.HTML escapes all text content.
			hs.Lines = append(hs.Lines, template.HTML(markup.HTML(line)))
		}
		page.Sections = append(page.Sections, hs)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html; charset=utf-8"
}

var pageTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="generator" content="termfolio">
  <title>{{.Name}}</title>
  <style>
    body { margin: 0; padding: 2rem 1rem; background: {{.Colors.Background}}; color: {{.Colors.Text}}; font-family: ui-monospace, SFMono-Regular, Menlo, monospace; }
    main { max-width: 48rem; margin: 0 auto; padding: 1.5rem; border-radius: 0.5rem; background: {{.Colors.Panel}}; }
    h1 { margin: 0; color: {{.Colors.Accent}}; }
    .subtitle { margin: 0.25rem 0 1.5rem; color: {{.Colors.Secondary}}; }
    h2 { margin: 1.5rem 0 0.5rem; font-size: 0.9rem; text-transform: uppercase; color: {{.Colors.Prompt}}; }
    p { margin: 0.1rem 0; white-space: pre-wrap; }
    footer { margin-top: 2rem; font-size: 0.75rem; color: {{.Colors.Secondary}}; }
    .font-semibold { font-weight: 600; }
    .text-green-600 { color: {{.Colors.Output}}; }
    .text-red-600 { color: {{.Colors.Error}}; }
    .text-yellow-600 { color: {{.Colors.Input}}; }
    .text-cyan-600 { color: {{.Colors.Highlight}}; }
  </style>
</head>
<body class="theme-{{.Theme}}">
  <main>
    <h1>{{.Name}}</h1>
    <p class="subtitle">{{.Title}}</p>
{{- range .Sections}}
    <section>
      <h2>{{.Heading}}</h2>
{{- range .Lines}}
      <p>{{.}}</p>
{{- end}}
    </section>
{{- end}}
    <footer>Exported from termfolio on {{.Exported}}</footer>
  </main>
</body>
</html>
`))
