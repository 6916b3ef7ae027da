// Package log provides structured logging for boundary.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with JSON and text output. Loggers
//              are immutable: every With* call returns a configured clone, so
//              a logger can be handed to a component and narrowed there.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-19 v0.2.0: Removed async mode and timers
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelInfo,
//		Format: log.FormatText,
//		Output: os.Stderr,
//		Name:   "boundary",
//	})
//	logger.WithField("boundary", "episodes").Error("render fault", log.Err(err))
package log
