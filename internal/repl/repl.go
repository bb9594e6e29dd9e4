// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl is the line-mode front end: one prompt per command,
// readline-style editing and tab completion through liner.
package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/util"
)

// MaxHistory is how many entries SaveHistory keeps.
const MaxHistory = 500

// LineReader reads edited lines. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// Options configures a REPL.
type Options struct {
	// Out receives rendered output. Default: stdout.
	Out io.Writer

	// Renderer styles output. Default: one detecting Out's color profile.
	Renderer *lipgloss.Renderer

	// Reader supplies input lines. Default: a liner editor on the terminal.
	Reader LineReader

	// HistoryFile is written on Close. Empty disables persistence.
	HistoryFile string

	Logger *slog.Logger
}

// =============================================================================
// REPL
// =============================================================================

// REPL drives a session one line at a time.
type REPL struct {
	session     *session.Session
	reader      LineReader
	out         io.Writer
	renderer    *lipgloss.Renderer
	theme       *styles.Theme
	themedPrefs prefs.Preferences
	historyFile string
	logger      *slog.Logger
}

// New creates a REPL over s.
func New(s *session.Session, opts Options) *REPL {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Renderer == nil {
		opts.Renderer = styles.NewRenderer(opts.Out)
	}

	r := &REPL{
		session:     s,
		reader:      opts.Reader,
		out:         opts.Out,
		renderer:    opts.Renderer,
		historyFile: opts.HistoryFile,
		logger:      logging.OrDiscard(opts.Logger).With("component", "repl"),
	}
	if r.reader == nil {
		r.reader = newLiner(s)
	}
	r.applyTheme()
	return r
}

// newLiner builds the terminal line editor, seeded with the session's
// history and completing against the session's commands.
func newLiner(s *session.Session) *liner.State {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabCircular)

	completer := s.Completer()
	line.SetCompleter(func(text string) []string {
		return completer.Line(s.State(), text)
	})

	if entries := s.History().Entries(); len(entries) > 0 {
		if _, err := line.ReadHistory(strings.NewReader(strings.Join(entries, "\n") + "\n")); err != nil {
			line.ClearHistory()
		}
	}
	return line
}

func (r *REPL) applyTheme() {
	r.themedPrefs = r.session.Prefs()
	r.theme = styles.NewTheme(r.renderer, r.themedPrefs)
}

// Run prints the scrollback, then reads and runs lines until EOF, Ctrl+C,
// or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	r.print(r.session.Lines())

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		input, err := r.reader.Prompt(r.session.Prompt() + " ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		r.Step(input)
	}
}

// Step runs one input line and prints what it produced.
func (r *REPL) Step(input string) {
	if strings.TrimSpace(input) != "" {
		r.reader.AppendHistory(strings.TrimSpace(input))
	}

	before := len(r.session.Lines())
	res := r.session.Run(input)

	if r.session.Prefs() != r.themedPrefs {
		r.applyTheme()
	}

	lines := r.session.Lines()
	if res.Clear {
		r.clearScreen()
		r.print(lines)
		return
	}
	// The echo line is already on screen as the prompt.
	if before+1 <= len(lines) {
		r.print(lines[before+1:])
	}
}

func (r *REPL) print(lines []markup.Line) {
	for _, line := range lines {
		fmt.Fprintln(r.out, r.theme.Render(line))
	}
}

func (r *REPL) clearScreen() {
	r.renderer.Output().ClearScreen()
}

// Close saves history and releases the terminal.
func (r *REPL) Close() error {
	if r.historyFile != "" {
		if err := SaveHistory(r.historyFile, r.session.History().Entries()); err != nil {
			r.logger.Debug("history save failed", "path", r.historyFile, "error", err)
		}
	}
	return r.reader.Close()
}

// =============================================================================
// HISTORY FILE
// =============================================================================

// LoadHistory reads a history file, one entry per line. A missing or
// unreadable file yields no entries.
func LoadHistory(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entries = append(entries, line)
		}
	}
	if len(entries) > MaxHistory {
		entries = entries[len(entries)-MaxHistory:]
	}
	return entries
}

// SaveHistory writes the newest MaxHistory entries with owner-only
// permissions.
func SaveHistory(path string, entries []string) error {
	if len(entries) > MaxHistory {
		entries = entries[len(entries)-MaxHistory:]
	}
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}
