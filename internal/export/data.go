// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/termfolio/internal/resume"
)

// =============================================================================
// DATA EXPORTERS
// =============================================================================

// The data exporters write the record itself. Their output loads back
// through resume.Load with the matching extension.

// JSONExporter exports the resume as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter. Options are accepted for
// consistency with other exporters.
func NewJSONExporter(*Options) *JSONExporter {
	return &JSONExporter{}
}

// Export converts a resume to JSON.
func (e *JSONExporter) Export(r *resume.Resume) ([]byte, error) {
	if r == nil {
		return nil, errNilResume
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (e *JSONExporter) FileExtension() string { return ".json" }
func (e *JSONExporter) MimeType() string      { return "application/json" }

// YAMLExporter exports the resume as YAML.
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter.
func NewYAMLExporter(*Options) *YAMLExporter {
	return &YAMLExporter{}
}

// Export converts a resume to YAML.
func (e *YAMLExporter) Export(r *resume.Resume) ([]byte, error) {
	if r == nil {
		return nil, errNilResume
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *YAMLExporter) FileExtension() string { return ".yaml" }
func (e *YAMLExporter) MimeType() string      { return "application/yaml" }

// TOMLExporter exports the resume as TOML.
type TOMLExporter struct{}

// NewTOMLExporter creates a new TOML exporter.
func NewTOMLExporter(*Options) *TOMLExporter {
	return &TOMLExporter{}
}

// Export converts a resume to TOML.
func (e *TOMLExporter) Export(r *resume.Resume) ([]byte, error) {
	if r == nil {
		return nil, errNilResume
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *TOMLExporter) FileExtension() string { return ".toml" }
func (e *TOMLExporter) MimeType() string      { return "application/toml" }
