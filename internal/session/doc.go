// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the per-terminal state and applies interpreter
// results to it.
//
// # Key Types
//
//   - Session: scrollback, history, completion, preferences, input line
//   - Manager: visitor sessions for the web server, evicted when idle
//
// # Usage
//
//	s := session.New(session.Config{Resume: src, Store: store, Catalog: styles.Catalog()})
//	s.SetInput("theme dracula")
//	s.Submit()
//	fmt.Println(s.Prefs().Theme) // dracula
package session
