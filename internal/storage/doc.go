// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value stores behind termfolio's
// preferences.
//
// # Stores
//
//   - FileStore: one JSON object file, written atomically (TUI and REPL)
//   - SQLiteStore: a scope of the preferences table (one per web visitor)
//   - MemoryStore: in-process map for tests and ephemeral sessions
//
// Every store satisfies the same Get/Set contract: Get reports a missing
// key with ok=false and a nil error.
package storage
