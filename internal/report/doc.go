// Package report turns a classification into rows a terminal table or a JSON
// document can render directly: headline metrics, the missing list, each
// student's representative file, unknown files, and duplicate groups.
package report
