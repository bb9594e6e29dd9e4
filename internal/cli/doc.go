// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the termfolio command line.
//
// # Commands
//
//   - termfolio [tui]       - Full-screen terminal (Bubble Tea)
//   - termfolio repl        - Line mode with completion and history
//   - termfolio serve       - Web terminal
//   - termfolio exec CMD    - Run one command and print its output
//   - termfolio export      - Render the resume as md, txt, html, json, yaml, or toml
//   - termfolio config ...  - show, path, init, validate
//   - termfolio version
//
// Global flags --config, --resume, and --log-level apply to every command
// except version.
package cli
