// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal is the full-screen Bubble Tea front end.
//
// The model forwards keys to a session.Session and renders its scrollback
// in a viewport sized by the session's size preference. Theme and dark
// mode changes take effect on the next frame.
package terminal
