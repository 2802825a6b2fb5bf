// Package logging assembles structured slog loggers used across hwcheck.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and tags every line of a check run with a run identifier so a log
// file shared by several runs can be split apart again. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
