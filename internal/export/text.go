// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/resume"
)

// =============================================================================
// SECTIONS
// =============================================================================

// sectionCommands are the commands whose output makes up a printed
// resume, in order.
var sectionCommands = []string{
	"about", "skills", "experience", "education", "projects", "certifications", "contact",
}

type section struct {
	Name  string
	Lines []markup.Line
}

// sections runs each section command against r, so exported documents
// read exactly like the terminal.
func sections(r *resume.Resume) []section {
	registry := commands.Builtins()
	state := commands.State{Resume: r, Prefs: prefs.Defaults()}

	out := make([]section, 0, len(sectionCommands))
	for _, name := range sectionCommands {
		if name == "certifications" && len(r.Certifications) == 0 {
			continue
		}
		res := registry.Execute(state, name)
		if len(res.Lines) == 0 {
			continue
		}
		out = append(out, section{Name: name, Lines: res.Lines})
	}
	return out
}

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter exports the terminal's section output as plain text.
type TextExporter struct{}

// NewTextExporter creates a new plain-text exporter.
func NewTextExporter(*Options) *TextExporter {
	return &TextExporter{}
}

// Export converts a resume to plain text.
func (e *TextExporter) Export(r *resume.Resume) ([]byte, error) {
	if r == nil {
		return nil, errNilResume
	}

	var sb strings.Builder
	for i, s := range sections(r) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.ToUpper(s.Name))
		sb.WriteString("\n")
		for _, line := range s.Lines {
			sb.WriteString(markup.PlainText(line))
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String()), nil
}

func (e *TextExporter) FileExtension() string { return ".txt" }
func (e *TextExporter) MimeType() string      { return "text/plain; charset=utf-8" }
