// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/termfolio/internal/resume"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports the resume as Markdown.
type MarkdownExporter struct {
	options *Options
	now     func() time.Time
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts, now: time.Now}
}

type frontmatter struct {
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Exported  string `yaml:"exported"`
	Generator string `yaml:"generator"`
}

// Export converts a resume to Markdown.
func (e *MarkdownExporter) Export(r *resume.Resume) ([]byte, error) {
	if r == nil {
		return nil, errNilResume
	}

	var sb strings.Builder
	if e.options.Frontmatter {
		meta, err := yaml.Marshal(frontmatter{
			Title:     r.Name,
			Subtitle:  r.Title,
			Exported:  e.now().Format(time.RFC3339),
			Generator: "termfolio",
		})
		if err != nil {
			return nil, err
		}
		sb.WriteString("---\n")
		sb.Write(meta)
		sb.WriteString("---\n\n")
	}
	sb.WriteString(r.Markdown())
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown; charset=utf-8"
}
