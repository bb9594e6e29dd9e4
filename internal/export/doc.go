// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders the resume record into downloadable documents.
//
// # Key Types
//
//   - Exporter: converts a resume into one file format
//   - Options: export configuration options
//   - File: a resolved download (name, content type, bytes)
//   - DirDownloader: writes the resume download into a directory
//
// # Supported Formats
//
//   - Markdown: the plain resume, optionally with YAML frontmatter
//   - Text: the terminal's own command output, unstyled
//   - HTML: a standalone page in a terminal palette
//   - JSON, YAML, TOML: the record itself, loadable again with resume.Load
//
// # Usage
//
//	exp, err := export.ForFormat("md", nil)
//	data, err := exp.Export(r)
//
//	path, err := export.ExportToFile(r, exp, &export.Options{OutputDir: "."})
package export
