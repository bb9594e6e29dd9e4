// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line diffs between two versions of a text.
//
// It is used to report what changed when the resume file is reloaded:
//
//	d := diff.Lines(old.Markdown(), updated.Markdown())
//	logger.Info("resume reloaded", "changes", d.Summary())
package diff
