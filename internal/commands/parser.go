// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"slices"
	"strings"
)

// Help flags recognised anywhere in the argument list.
const (
	FlagHelp      = "--help"
	FlagHelpShort = "-h"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is one tokenized input line.
type ParseResult struct {
	// Raw is the input with surrounding whitespace removed.
	Raw string

	// Empty is true when the input was blank. Blank input is neither
	// recorded in history nor dispatched.
	Empty bool

	// Name is the command token.
	Name string

	// Args are the remaining tokens in order.
	Args []string

	// Help is true when --help or -h appears among Args.
	Help bool
}

// Parse trims raw and splits it on runs of whitespace.
func Parse(raw string) ParseResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ParseResult{Empty: true}
	}

	fields := strings.Fields(trimmed)
	args := fields[1:]
	return ParseResult{
		Raw:  trimmed,
		Name: fields[0],
		Args: args,
		Help: slices.Contains(args, FlagHelp) || slices.Contains(args, FlagHelpShort),
	}
}

// =============================================================================
// ARGUMENT FILTERING
// =============================================================================

// Positional returns the first argument that does not begin with "-",
// or def when there is none.
func Positional(args []string, def string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return def
}
