// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across termfolio.
//
// File Operations:
//   - AtomicWriteFile: crash-safe writes for preferences and downloads
//
// Text:
//   - TruncateWidth: column-aware truncation for the TUI header and title bar
//   - TruncateRunes: bound untrusted input without splitting runes
package util
