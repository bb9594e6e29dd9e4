// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer matches command names against a prefix.
type Completer struct {
	registry *Registry
}

// NewCompleter returns a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Candidates returns, in canonical order, the command names that start
// with the trimmed prefix. Matching is case-sensitive. An empty prefix
// matches nothing.
func (c *Completer) Candidates(prefix string) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}

	var out []string
	for _, cmd := range c.registry.commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			out = append(out, cmd.Name)
		}
	}
	return out
}

// Line completes a whole input line for line editors: the command name
// while it is still being typed, then the first positional argument from
// the command's enum values. Each result is a full replacement line.
func (c *Completer) Line(state State, line string) []string {
	fields := strings.Fields(line)
	trailingSpace := strings.HasSuffix(line, " ")

	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 && !trailingSpace {
		return c.Candidates(fields[0])
	}

	cmd := c.registry.Get(fields[0])
	if cmd == nil || len(cmd.Args) == 0 || cmd.Args[0].Values == nil {
		return nil
	}

	var partial string
	switch {
	case len(fields) == 1 && trailingSpace:
	case len(fields) == 2 && !trailingSpace:
		partial = fields[1]
	default:
		return nil
	}

	var out []string
	for _, v := range cmd.Args[0].Values(&Context{State: state}) {
		if strings.HasPrefix(v, partial) {
			out = append(out, cmd.Name+" "+v)
		}
	}
	return out
}

// =============================================================================
// COMPLETION STATE
// =============================================================================

// CompletionState is the tab-completion machine. It is idle until the
// first Complete finds candidates, then cycling through them until Reset.
type CompletionState struct {
	completer  *Completer
	candidates []string
	index      int
	applied    string
}

// NewCompletionState returns an idle machine.
func NewCompletionState(completer *Completer) *CompletionState {
	return &CompletionState{completer: completer}
}

// Cycling reports whether the machine holds candidates.
func (cs *CompletionState) Cycling() bool {
	return len(cs.candidates) > 0
}

// Candidates returns the current candidate list (nil when idle).
func (cs *CompletionState) Candidates() []string {
	return cs.candidates
}

// Index returns the position of the applied candidate, or -1 when idle.
func (cs *CompletionState) Index() int {
	if !cs.Cycling() {
		return -1
	}
	return cs.index
}

// Complete performs one completion step on input and returns the new
// input. When idle it matches the current input; with no match the input
// comes back unchanged and the machine stays idle. When cycling it moves
// to the next candidate, wrapping at the end. If input differs from the
// candidate last applied, the machine resets and starts a fresh match so
// candidates never come from stale input.
func (cs *CompletionState) Complete(input string) string {
	if cs.Cycling() && input != cs.applied {
		cs.Reset()
	}

	if !cs.Cycling() {
		matches := cs.completer.Candidates(input)
		if len(matches) == 0 {
			return input
		}
		cs.candidates = matches
		cs.index = 0
	} else {
		cs.index = (cs.index + 1) % len(cs.candidates)
	}

	cs.applied = cs.candidates[cs.index]
	return cs.applied
}

// Reset returns the machine to idle.
func (cs *CompletionState) Reset() {
	cs.candidates = nil
	cs.index = 0
	cs.applied = ""
}
