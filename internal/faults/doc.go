// Package faults defines the error markers shared by the roster loader, the
// hashing stage, and the CLI.
//
// Errors are built with Wrap so every failure carries a sentinel marker plus
// the component and operation that produced it. Callers classify them with
// errors.Is or SeverityOf: a roster format error halts the run, a file read
// error only degrades a single record, and a missing input is a waiting state
// rather than a failure.
package faults
