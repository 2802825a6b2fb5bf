package main

import (
	"bytes"
	"strings"
	"testing"

	"hwcheck/internal/report"
	"hwcheck/internal/roster"
)

func TestRenderReportAllSubmitted(t *testing.T) {
	rep := report.Report{
		Summary: report.Summary{Submitted: 2, RosterSize: 2, Percent: 100, CompletionRate: 1, Files: 2, Algorithm: "md5"},
		Missing: []roster.Entry{},
		Submitted: []report.SubmittedRow{
			{StudentID: "201912345", Name: "Alice", File: "201912345.py", SizeKB: 1.5, Versions: 1},
			{StudentID: "987654321", Name: "Bob", File: "987654321.py", SizeKB: 0.25, Versions: 1},
		},
	}

	var buf bytes.Buffer
	renderReport(&buf, rep, false)
	out := buf.String()

	requireContains(t, out, "Everyone has submitted!")
	requireContains(t, out, "Missing (0)")
	requireContains(t, out, "1.50")
	requireContains(t, out, "0.25")
	requireContains(t, out, "Identical content (MD5)")
	requireContains(t, out, "No identical file contents found.")
	requireNotContains(t, out, "Unreadable files")
}

func TestRenderReportEmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, report.Report{}, false)
	out := buf.String()

	requireContains(t, out, "0/0 (0%)")
	requireNotContains(t, out, "Everyone has submitted!")
	if strings.Count(out, "None") != 4 {
		t.Fatalf("expected four empty sections, got:\n%s", out)
	}
}

func TestRenderReportColor(t *testing.T) {
	rep := report.Report{
		Summary:    report.Summary{Files: 1, Unreadable: 1},
		Unreadable: []report.UnreadableRow{{File: "x.py", Error: "permission denied"}},
	}
	var buf bytes.Buffer
	renderReport(&buf, rep, true)
	out := buf.String()

	requireContains(t, out, ansiBlue+"== Summary ==")
	requireContains(t, out, "Unreadable files")
	requireContains(t, out, "permission denied")
}
