// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server plays the portfolio terminal in a browser.
//
// # Endpoints
//
//   - GET  /                 - Terminal page
//   - POST /api/exec         - Submit a command line
//   - POST /api/complete     - One tab-completion step
//   - POST /api/history      - Walk history ("prev" or "next")
//   - GET  /download/resume  - Resume file as an attachment
//   - GET  /health           - Health check
//
// Each browser gets a session keyed by the termfolio_sid cookie. Commands
// for one visitor run one at a time; preferences are stored per visitor
// in SQLite when a database is configured.
//
// # Middleware
//
//   - Panic recovery
//   - Security headers (CSP, X-Frame-Options, nosniff)
//   - Request logging with hashed client IPs
//   - Per-IP token bucket rate limiting
//
// # Usage
//
//	srv, err := server.New(server.Config{Addr: ":8080", Resume: src})
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package server
