// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands is the terminal's command interpreter.
//
// Execution is a pure function of (State, input): handlers read the
// injected resume and preferences and return a Result describing the
// lines to print and at most one side effect (a preference change, a
// clear, or a download). Front ends apply the Result.
//
// # Key Types
//
//   - Registry: ordered dispatch table of the built-in commands
//   - ParseResult: tokenized input with the help flag detected
//   - Completer: prefix matching over command names
//   - CompletionState: idle/cycling tab-completion machine
//   - History: submitted commands with a recall cursor
//
// # Usage
//
//	res := commands.Execute(commands.State{Resume: r, Prefs: p, Catalog: c}, "theme dracula")
//	if res.Prefs != nil {
//	    p = *res.Prefs
//	}
package commands
