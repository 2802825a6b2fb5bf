// Package studentid extracts nine-digit student identifiers from filenames and
// spreadsheet cells.
package studentid
