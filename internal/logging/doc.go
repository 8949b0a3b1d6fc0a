// Package logging assembles structured slog loggers and formatting helpers used
// across amutils.
//
// It owns the console and JSON handlers, resolves levels and output paths from
// configuration, and exposes helpers so import runs tag every line with their
// run ID and row number. NewNop provides a discarding logger for tests and for
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command
// writes the same shape to the terminal and to the log file.
package logging
