package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hwcheck/internal/report"
)

// renderReport writes the terminal view of rep. Sections mirror the
// classification views: summary, missing, submitted, unknown files,
// repeat submitters, and identical content.
func renderReport(w io.Writer, rep report.Report, colorize bool) {
	var sections [][]string
	sections = append(sections, summarySection(rep.Summary, colorize))
	sections = append(sections, missingSection(rep, colorize))
	sections = append(sections, submittedSection(rep, colorize))
	sections = append(sections, unknownSection(rep, colorize))
	sections = append(sections, duplicateSection(rep, colorize))
	sections = append(sections, identicalSection(rep, colorize))
	if len(rep.Unreadable) > 0 {
		sections = append(sections, unreadableSection(rep, colorize))
	}

	for i, lines := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}
}

func summarySection(s report.Summary, colorize bool) []string {
	lines := renderSectionHeader("Summary", colorize)

	progress := fmt.Sprintf("%d/%d (%d%%) %s", s.Submitted, s.RosterSize, s.Percent, renderProgressBar(s.CompletionRate, progressWidth))
	kind := statusInfo
	if s.RosterSize > 0 && s.Submitted == s.RosterSize {
		kind = statusOK
	}
	lines = append(lines,
		renderStatusLine("Submitted", kind, progress, colorize),
		renderStatusLine("Files", statusInfo, strconv.Itoa(s.Files), colorize),
		renderStatusLine("Unknown files", countKind(s.Unknown, statusWarn), strconv.Itoa(s.Unknown), colorize),
		renderStatusLine("Repeat submitters", countKind(s.DuplicateSubmitters, statusWarn), strconv.Itoa(s.DuplicateSubmitters), colorize),
		renderStatusLine("Identical content", countKind(s.ExactDuplicateGroups, statusError), fmt.Sprintf("%d group(s)", s.ExactDuplicateGroups), colorize),
	)
	if s.Unreadable > 0 {
		lines = append(lines, renderStatusLine("Unreadable", statusWarn, strconv.Itoa(s.Unreadable), colorize))
	}
	if s.Deadline != nil {
		lines = append(lines, renderStatusLine("Deadline", statusInfo, s.Deadline.Format("2006-01-02 15:04 MST"), colorize))
		lines = append(lines, renderStatusLine("Late", countKind(s.Late, statusWarn), strconv.Itoa(s.Late), colorize))
	}
	if s.RosterSize > 0 && s.Submitted == s.RosterSize {
		lines = append(lines, statusIndent+"Everyone has submitted!")
	}
	return lines
}

func missingSection(rep report.Report, colorize bool) []string {
	lines := renderSectionHeader(fmt.Sprintf("Missing (%d)", len(rep.Missing)), colorize)
	if len(rep.Missing) == 0 {
		return append(lines, statusIndent+"None")
	}
	rows := make([][]string, 0, len(rep.Missing))
	for _, entry := range rep.Missing {
		rows = append(rows, []string{entry.StudentID, entry.Name})
	}
	return append(lines, renderTable([]column{textColumn("Student ID"), textColumn("Name")}, rows))
}

func submittedSection(rep report.Report, colorize bool) []string {
	lines := renderSectionHeader(fmt.Sprintf("Submitted (%d)", len(rep.Submitted)), colorize)
	if len(rep.Submitted) == 0 {
		return append(lines, statusIndent+"None")
	}

	withDeadline := rep.Summary.Deadline != nil
	columns := []column{
		textColumn("Student ID"),
		textColumn("Name"),
		fileColumn("File"),
		numberColumn("Size (KB)"),
		numberColumn("Versions"),
	}
	if withDeadline {
		columns = append(columns, textColumn("Late"))
	}

	rows := make([][]string, 0, len(rep.Submitted))
	for _, row := range rep.Submitted {
		cells := []string{
			row.StudentID,
			row.Name,
			row.File,
			strconv.FormatFloat(row.SizeKB, 'f', 2, 64),
			strconv.Itoa(row.Versions),
		}
		if withDeadline {
			cells = append(cells, yesNo(row.Late))
		}
		rows = append(rows, cells)
	}
	return append(lines, renderTable(columns, rows))
}

func unknownSection(rep report.Report, colorize bool) []string {
	lines := renderSectionHeader("Unknown files", colorize)
	if len(rep.Unknown) == 0 {
		return append(lines, statusIndent+"None")
	}
	rows := make([][]string, 0, len(rep.Unknown))
	for _, row := range rep.Unknown {
		rows = append(rows, []string{row.File, row.StudentID, row.Reason})
	}
	return append(lines, renderTable([]column{fileColumn("File"), textColumn("Extracted ID"), textColumn("Reason")}, rows))
}

func duplicateSection(rep report.Report, colorize bool) []string {
	lines := renderSectionHeader("Repeat submitters", colorize)
	if len(rep.Duplicates) == 0 {
		return append(lines, statusIndent+"None")
	}
	for _, row := range rep.Duplicates {
		label := row.StudentID
		if row.Name != "" {
			label = fmt.Sprintf("%s (%s)", row.StudentID, row.Name)
		}
		lines = append(lines, renderStatusLine(label, statusWarn, fmt.Sprintf("%d files: %s", row.Count, strings.Join(row.Files, ", ")), colorize))
	}
	return lines
}

func identicalSection(rep report.Report, colorize bool) []string {
	title := "Identical content"
	if algo := rep.Summary.Algorithm; algo != "" {
		title = fmt.Sprintf("Identical content (%s)", strings.ToUpper(algo))
	}
	lines := renderSectionHeader(title, colorize)
	if len(rep.ExactDuplicates) == 0 {
		return append(lines, statusIndent+"No identical file contents found.")
	}
	for _, group := range rep.ExactDuplicates {
		lines = append(lines, renderStatusLine("Fingerprint "+group.Fingerprint, statusError, fmt.Sprintf("%d identical files", len(group.Files)), colorize))
		for _, name := range group.Files {
			lines = append(lines, statusIndent+statusIndent+"- "+name)
		}
	}
	return lines
}

func unreadableSection(rep report.Report, colorize bool) []string {
	lines := renderSectionHeader("Unreadable files", colorize)
	for _, row := range rep.Unreadable {
		lines = append(lines, renderStatusLine(row.File, statusWarn, row.Error, colorize))
	}
	return lines
}
