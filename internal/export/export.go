// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for resume exporters.
type Exporter interface {
	// Export converts a resume to the target format and returns the content.
	Export(r *resume.Resume) ([]byte, error)

	// FileExtension returns the file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// ErrUnsupportedFormat is returned by ForFormat for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// errNilResume guards every exporter.
var errNilResume = errors.New("resume is nil")

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where ExportToFile writes.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// Frontmatter adds a YAML metadata header to Markdown exports.
	Frontmatter bool

	// Theme is the palette used by HTML exports.
	// Default: "default"
	Theme string

	// Dark selects the dark side of the palette for HTML exports.
	Dark bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		Theme:     "default",
		Dark:      true,
	}
}

// Formats lists the names ForFormat accepts, one per exporter.
func Formats() []string {
	return []string{"md", "txt", "html", "json", "yaml", "toml"}
}

// ForFormat returns the exporter for a format name or file extension.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "txt", "text":
		return NewTextExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	case "yaml", "yml":
		return NewYAMLExporter(opts), nil
	case "toml":
		return NewTOMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// FileName returns "<name>-resume<ext>" with the name made safe for file
// systems.
func FileName(r *resume.Resume, exporter Exporter) string {
	return sanitizeFilename(r.Name) + "-resume" + exporter.FileExtension()
}

// ExportToFile exports a resume to a file using the specified exporter.
// Returns the output file path or an error.
func ExportToFile(r *resume.Resume, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if r == nil {
		return "", errNilResume
	}

	content, err := exporter.Export(r)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, FileName(r, exporter))
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal - file was still created successfully
			return outputPath, fmt.Errorf("open %s: %w", outputPath, err)
		}
	}

	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename lowercases s and replaces anything outside [a-z0-9-_.]
// with '-'.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(strings.ToLower(strings.TrimSpace(s)), 50)

	var sb strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.':
			sb.WriteRune(r)
			lastDash = false
		case !lastDash:
			sb.WriteRune('-')
			lastDash = true
		}
	}

	out := strings.Trim(sb.String(), "-.")
	if out == "" {
		return "portfolio"
	}
	return out
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
