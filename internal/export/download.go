// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/util"
)

// GeneratedResumeName is the download name of the generated resume.
const GeneratedResumeName = "resume.md"

// ErrNotFound is returned for download targets that do not exist.
var ErrNotFound = errors.New("download not found")

// =============================================================================
// DOWNLOAD FILE
// =============================================================================

// File is a resolved download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ResumeFile resolves the resume download. A configured file is served
// as is; otherwise the record is rendered as Markdown.
func ResumeFile(r *resume.Resume, path string) (File, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("read resume file: %w", err)
		}
		return File{
			Name:        filepath.Base(path),
			ContentType: contentType(path),
			Data:        data,
		}, nil
	}

	exp := NewMarkdownExporter(nil)
	data, err := exp.Export(r)
	if err != nil {
		return File{}, err
	}
	return File{Name: GeneratedResumeName, ContentType: exp.MimeType(), Data: data}, nil
}

// Target resolves a download target by name.
func Target(r *resume.Resume, target, path string) (File, error) {
	if target != commands.DownloadResume {
		return File{}, fmt.Errorf("%w: %q", ErrNotFound, target)
	}
	return ResumeFile(r, path)
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// DIRECTORY DOWNLOADER
// =============================================================================

// DirDownloader saves downloads into a local directory, the terminal
// front ends' stand-in for a browser download.
type DirDownloader struct {
	dir    string
	file   string
	logger *slog.Logger

	mu   sync.Mutex
	last string
}

// NewDirDownloader saves into dir. file is the configured resume file,
// or "" for the generated Markdown.
func NewDirDownloader(dir, file string, logger *slog.Logger) *DirDownloader {
	return &DirDownloader{
		dir:    dir,
		file:   file,
		logger: logging.OrDiscard(logger).With("component", "download"),
	}
}

// Download writes the target into the directory.
func (d *DirDownloader) Download(r *resume.Resume, target string) error {
	f, err := Target(r, target, d.file)
	if err != nil {
		return err
	}

	path := filepath.Join(d.dir, f.Name)
	if err := util.AtomicWriteFile(path, f.Data, 0644); err != nil {
		return fmt.Errorf("save download: %w", err)
	}

	d.mu.Lock()
	d.last = path
	d.mu.Unlock()
	d.logger.Info("download saved", "target", target, "path", path, "bytes", len(f.Data))
	return nil
}

// LastPath returns where the most recent download was saved.
func (d *DirDownloader) LastPath() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
