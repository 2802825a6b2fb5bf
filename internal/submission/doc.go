// Package submission models where homework files come from.
//
// A Record pairs a filename with a FileSource. Uploads are buffer-backed and
// stamped with the time they were ingested; local folders are
// filesystem-backed and use each file's modification time. The
// classification engine only sees the FileSource interface, so the choice of
// source decides the observed time without any branching downstream.
package submission
