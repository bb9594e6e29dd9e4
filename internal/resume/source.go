// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resume

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/termfolio/internal/diff"
	"github.com/jeranaias/termfolio/internal/logging"
)

// DefaultDebounce is how long Watch waits after the last file event
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// =============================================================================
// SOURCE
// =============================================================================

// Source holds the current resume and swaps it atomically on reload.
// Commands already running keep the record they started with.
type Source struct {
	path     string
	current  atomic.Pointer[Resume]
	logger   *slog.Logger
	debounce time.Duration
}

// Static returns a source that always yields r.
func Static(r *Resume) *Source {
	s := &Source{logger: logging.Discard(), debounce: DefaultDebounce}
	s.current.Store(r)
	return s
}

// Open loads the resume at path. An empty path yields the built-in
// sample record.
func Open(path string, logger *slog.Logger) (*Source, error) {
	if path == "" {
		s := Static(Default())
		s.logger = logging.OrDiscard(logger)
		return s, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve resume path: %w", err)
	}

	s := &Source{
		path:     abs,
		logger:   logging.OrDiscard(logger).With("component", "resume"),
		debounce: DefaultDebounce,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the active record.
func (s *Source) Current() *Resume {
	return s.current.Load()
}

// Path returns the absolute file path, or "" for a static source.
func (s *Source) Path() string {
	return s.path
}

// SetDebounce changes the reload debounce used by Watch.
func (s *Source) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Reload re-reads the file. On error the previous record stays active.
func (s *Source) Reload() error {
	_, err := s.reload()
	return err
}

// reload swaps in the file's record and returns how its Markdown
// rendering changed.
func (s *Source) reload() (diff.Result, error) {
	if s.path == "" {
		return diff.Result{}, nil
	}
	r, err := Load(s.path)
	if err != nil {
		return diff.Result{}, err
	}

	var prev string
	if old := s.current.Swap(r); old != nil {
		prev = old.Markdown()
	}
	return diff.Lines(prev, r.Markdown()), nil
}

// =============================================================================
// WATCHING
// =============================================================================

// Watch reloads the resume whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up. Watch returns once the watcher is running.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	go s.watchLoop(ctx, w)
	return nil
}

func (s *Source) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			d, err := s.reload()
			if err != nil {
				s.logger.Warn("resume reload failed, keeping previous", "error", err)
				continue
			}
			if !d.Changed() {
				continue
			}
			s.logger.Info("resume reloaded", "name", s.Current().Name, "changes", d.Summary())
			s.logger.Debug("resume diff", "diff", d.Unified(1))

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("resume watcher error", "error", err)
		}
	}
}
