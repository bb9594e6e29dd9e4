// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"log/slog"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/storage"
)

// DefaultPromptHost is the host part of the prompt.
const DefaultPromptHost = "portfolio"

// Downloader delivers a requested file for the front end.
type Downloader interface {
	Download(r *resume.Resume, target string) error
}

// =============================================================================
// CONFIG
// =============================================================================

// Config wires a Session to its collaborators.
type Config struct {
	// Resume supplies the record for each command. Required.
	Resume *resume.Source

	// Store persists preferences. Defaults to an in-memory store.
	Store prefs.Store

	// Defaults are used for preferences that are missing from Store.
	Defaults prefs.Preferences

	// Catalog lists the known themes and sizes.
	Catalog prefs.Catalog

	// PromptUser is the user part of the prompt. Defaults to the resume
	// owner's first name.
	PromptUser string

	// Registry defaults to the built-in commands.
	Registry *commands.Registry

	// Downloader receives download requests. Nil drops them.
	Downloader Downloader

	// History seeds command history, oldest first.
	History []string

	Logger *slog.Logger
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the state a terminal view owns: scrollback, history,
// completion, preferences, and the line being edited. It is not safe for
// concurrent use.
type Session struct {
	source     *resume.Source
	store      prefs.Store
	catalog    prefs.Catalog
	registry   *commands.Registry
	downloader Downloader
	logger     *slog.Logger
	promptUser string

	scrollback []markup.Line
	history    *commands.History
	completion *commands.CompletionState
	prefs      prefs.Preferences
	input      string
}

// New builds a session and seeds scrollback with the welcome line.
func New(cfg Config) *Session {
	if cfg.Store == nil {
		cfg.Store = storage.NewMemoryStore()
	}
	if cfg.Registry == nil {
		cfg.Registry = commands.Builtins()
	}
	if cfg.Defaults == (prefs.Preferences{}) {
		cfg.Defaults = prefs.Defaults()
	}

	s := &Session{
		source:     cfg.Resume,
		store:      cfg.Store,
		catalog:    cfg.Catalog,
		registry:   cfg.Registry,
		downloader: cfg.Downloader,
		logger:     logging.OrDiscard(cfg.Logger).With("component", "session"),
		promptUser: cfg.PromptUser,
		history:    commands.NewHistory(),
		completion: commands.NewCompletionState(commands.NewCompleter(cfg.Registry)),
	}
	if s.promptUser == "" {
		s.promptUser = s.Resume().FirstName()
	}
	s.history.Load(cfg.History)
	s.prefs = prefs.Load(cfg.Store, cfg.Defaults, cfg.Catalog)
	s.scrollback = []markup.Line{Welcome(s.Resume().Name)}
	return s
}

// Welcome returns the greeting shown at the top of a new session.
func Welcome(name string) markup.Line {
	return markup.Line{
		markup.Text("Welcome to " + name + "'s portfolio! Type "),
		markup.Bold(markup.Text("help")),
		markup.Text(" to list commands or "),
		markup.Bold(markup.Text("<command> --help")),
		markup.Text(" for details."),
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Resume returns the record commands currently run against.
func (s *Session) Resume() *resume.Resume {
	return s.source.Current()
}

// Lines returns the scrollback. The slice must not be modified.
func (s *Session) Lines() []markup.Line {
	return s.scrollback
}

// Input returns the line being edited.
func (s *Session) Input() string {
	return s.input
}

// Prefs returns the active preferences.
func (s *Session) Prefs() prefs.Preferences {
	return s.prefs
}

// Catalog returns the known themes and sizes.
func (s *Session) Catalog() prefs.Catalog {
	return s.catalog
}

// History returns the command history.
func (s *Session) History() *commands.History {
	return s.history
}

// Completer returns a completer over the session's registry.
func (s *Session) Completer() *commands.Completer {
	return commands.NewCompleter(s.registry)
}

// State returns the interpreter state for the next command.
func (s *Session) State() commands.State {
	return commands.State{
		Resume:  s.Resume(),
		Prefs:   s.prefs,
		Catalog: s.catalog,
	}
}

// Prompt returns "<user>@portfolio:~$".
func (s *Session) Prompt() string {
	return s.promptUser + "@" + DefaultPromptHost + ":~$"
}

// PromptUser returns the user part of the prompt.
func (s *Session) PromptUser() string {
	return s.promptUser
}

// =============================================================================
// EDITING
// =============================================================================

// SetInput replaces the edited line, as typing does, and cancels any
// completion cycle.
func (s *Session) SetInput(input string) {
	s.input = input
	s.completion.Reset()
}

// Complete performs one tab-completion step on the input.
func (s *Session) Complete() {
	s.input = s.completion.Complete(s.input)
}

// HistoryPrev recalls the previous command.
func (s *Session) HistoryPrev() {
	s.completion.Reset()
	if entry, ok := s.history.Prev(); ok {
		s.input = entry
	}
}

// HistoryNext recalls the next command.
func (s *Session) HistoryNext() {
	s.completion.Reset()
	if entry, ok := s.history.Next(); ok {
		s.input = entry
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit echoes the input into scrollback, runs it, and applies the
// result. It returns the result for front ends that react to effects.
func (s *Session) Submit() commands.Result {
	raw := s.input
	s.input = ""
	s.completion.Reset()

	s.scrollback = append(s.scrollback, markup.Line{
		markup.Text(s.Prompt() + " "),
		markup.Styled(markup.RoleInput, markup.Split(raw)...),
	})

	parsed := commands.Parse(raw)
	if parsed.Empty {
		return commands.Result{}
	}
	s.history.Push(parsed.Raw)

	res := s.registry.Dispatch(s.State(), parsed)
	s.apply(res)
	return res
}

// Run sets the input to raw and submits it.
func (s *Session) Run(raw string) commands.Result {
	s.SetInput(raw)
	return s.Submit()
}

func (s *Session) apply(res commands.Result) {
	if res.Clear {
		s.scrollback = nil
	}
	s.scrollback = append(s.scrollback, res.Lines...)

	if res.Prefs != nil {
		s.prefs = *res.Prefs
		if err := prefs.Save(s.store, s.prefs); err != nil {
			s.logger.Debug("preference save failed", "error", err)
		}
	}

	if res.Download != nil && s.downloader != nil {
		if err := s.downloader.Download(s.Resume(), res.Download.Target); err != nil {
			s.logger.Warn("download failed", "target", res.Download.Target, "error", err)
			s.scrollback = append(s.scrollback, markup.Err("download failed: "+res.Download.Target))
		}
	}
}
