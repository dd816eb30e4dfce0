// Package logging assembles the structured slog loggers used by matchday.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context helpers that tag every line of an update run with its run id. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail, and a pruning helper for old log files and page snapshots.
package logging
