// Package logging assembles structured slog loggers and formatting helpers used
// across the catalog tools.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes typed attribute helpers so every stage tags its lines with the
// same component and event keys. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
