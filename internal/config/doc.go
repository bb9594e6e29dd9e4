// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for termfolio.
//
// Configuration sources (later wins):
//   - Built-in defaults
//   - ~/.termfolio/config.toml (or the file given with --config)
//   - .env files (current directory, then the config directory)
//   - TERMFOLIO_* environment variables
//
// # Key Types
//
//   - Config: the root configuration, one section per concern
//   - ValidateErrors: every problem found by Validate, sorted by field
//
// # Usage
//
//	cfg, err := config.Load("")          // ~/.termfolio/config.toml
//	cfg, err := config.Load("site.toml") // explicit file, must exist
//	config.SetGlobal(cfg)
//
// # Example config.toml
//
//	log_level = "info"
//
//	[profile]
//	resume = "~/resume.yaml"
//
//	[ui]
//	theme = "dracula"
//	size = "large"
//	dark = true
//
//	[server]
//	addr = ":8080"
//	rate_limit = 5.0
//	burst = 20
package config
