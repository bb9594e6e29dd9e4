// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/resume"
)

// =============================================================================
// STATE AND RESULT
// =============================================================================

// State is everything a command may read. It is never modified by
// Execute.
type State struct {
	Resume  *resume.Resume
	Prefs   prefs.Preferences
	Catalog prefs.Catalog
}

// Download asks the front end to deliver a file.
type Download struct {
	Target string
}

// Result describes the effects of one command. A non-help command sets
// at most one of Prefs, Clear, and Download.
type Result struct {
	// Lines are appended to scrollback.
	Lines []markup.Line

	// Prefs holds the new preferences when one changed.
	Prefs *prefs.Preferences

	// Clear empties scrollback.
	Clear bool

	// Download is set when a file should be delivered.
	Download *Download
}

func lines(l ...markup.Line) Result {
	return Result{Lines: l}
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Context is passed to a command handler.
type Context struct {
	State
	Args []string
}

// Command is one entry of the dispatch table.
type Command struct {
	// Name is the exact, case-sensitive command token.
	Name string

	// Usage shows argument syntax (e.g., "theme <name>").
	Usage string

	// Description is the one-line summary shown by help.
	Description string

	// Args lists positional arguments, used for argument completion.
	Args []ArgDef

	// Details returns extra help lines shown by "<name> --help".
	Details func(ctx *Context) []string

	// Run executes the command. It is never called for help requests.
	Run func(ctx *Context) Result
}

// ArgDef describes a positional argument.
type ArgDef struct {
	Name    string
	Default string

	// Values returns the accepted values, if the argument is an enum.
	Values func(ctx *Context) []string
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry is an ordered dispatch table. Registration order is the
// canonical order used by completion and help.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
}

// NewRegistry returns a registry holding the built-in commands.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Command)}
	r.registerBuiltins()
	return r
}

// Register appends cmd. A command with the same name replaces the old
// entry in place.
func (r *Registry) Register(cmd *Command) {
	if _, ok := r.byName[cmd.Name]; ok {
		for i, c := range r.commands {
			if c.Name == cmd.Name {
				r.commands[i] = cmd
			}
		}
	} else {
		r.commands = append(r.commands, cmd)
	}
	r.byName[cmd.Name] = cmd
}

// Get returns the command named exactly name, or nil.
func (r *Registry) Get(name string) *Command {
	return r.byName[name]
}

// All returns the commands in canonical order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns the command names in canonical order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.commands))
	for i, c := range r.commands {
		names[i] = c.Name
	}
	return names
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute parses raw and runs it against state. Blank input yields an
// empty Result.
func (r *Registry) Execute(state State, raw string) Result {
	return r.Dispatch(state, Parse(raw))
}

// Dispatch runs an already parsed input.
func (r *Registry) Dispatch(state State, in ParseResult) Result {
	if in.Empty {
		return Result{}
	}

	cmd := r.Get(in.Name)
	if cmd == nil {
		return lines(markup.Err("command not found: " + in.Name + " (try help)"))
	}

	ctx := &Context{State: state, Args: in.Args}
	if in.Help {
		return Result{Lines: helpLines(cmd, ctx)}
	}
	return cmd.Run(ctx)
}

func helpLines(cmd *Command, ctx *Context) []markup.Line {
	out := []markup.Line{markup.Out(cmd.Usage + " - " + cmd.Description)}
	if cmd.Details != nil {
		out = append(out, markup.Lines(markup.Out, cmd.Details(ctx)...)...)
	}
	return out
}

var builtins = NewRegistry()

// Execute runs raw against state with the built-in registry.
func Execute(state State, raw string) Result {
	return builtins.Execute(state, raw)
}

// Builtins returns the shared built-in registry.
func Builtins() *Registry {
	return builtins
}
