package report

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"hwcheck/internal/classify"
	"hwcheck/internal/digest"
	"hwcheck/internal/roster"
	"hwcheck/internal/studentid"
)

// Unknown file reasons.
const (
	ReasonNoID        = "no student ID in filename"
	ReasonNotInRoster = "student ID not in roster"
)

// Summary holds the headline metrics of a run.
type Summary struct {
	Submitted            int        `json:"submitted" yaml:"submitted"`
	RosterSize           int        `json:"roster_size" yaml:"roster_size"`
	Percent              int        `json:"percent" yaml:"percent"`
	CompletionRate       float64    `json:"completion_rate" yaml:"completion_rate"`
	Files                int        `json:"files" yaml:"files"`
	Unknown              int        `json:"unknown" yaml:"unknown"`
	DuplicateSubmitters  int        `json:"duplicate_submitters" yaml:"duplicate_submitters"`
	ExactDuplicateGroups int        `json:"exact_duplicate_groups" yaml:"exact_duplicate_groups"`
	Unreadable           int        `json:"unreadable" yaml:"unreadable"`
	Late                 int        `json:"late" yaml:"late"`
	Deadline             *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Algorithm            string     `json:"algorithm" yaml:"algorithm"`
}

// SubmittedRow describes one student's representative submission.
type SubmittedRow struct {
	StudentID string     `json:"student_id" yaml:"student_id"`
	Name      string     `json:"name" yaml:"name"`
	File      string     `json:"file" yaml:"file"`
	SizeBytes int64      `json:"size_bytes" yaml:"size_bytes"`
	SizeKB    float64    `json:"size_kb" yaml:"size_kb"`
	SizeHuman string     `json:"size_human" yaml:"size_human"`
	Versions  int        `json:"versions" yaml:"versions"`
	Observed  *time.Time `json:"observed,omitempty" yaml:"observed,omitempty"`
	Late      bool       `json:"late" yaml:"late"`
}

// UnknownRow describes a file that could not be attributed to a student.
type UnknownRow struct {
	File      string `json:"file" yaml:"file"`
	StudentID string `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	Reason    string `json:"reason" yaml:"reason"`
}

// DuplicateRow describes a student who submitted more than one file.
type DuplicateRow struct {
	StudentID string   `json:"student_id" yaml:"student_id"`
	Name      string   `json:"name" yaml:"name"`
	Count     int      `json:"count" yaml:"count"`
	Files     []string `json:"files" yaml:"files"`
}

// ExactDuplicateRow describes files with byte-identical content.
type ExactDuplicateRow struct {
	Fingerprint string   `json:"fingerprint" yaml:"fingerprint"`
	Digest      string   `json:"digest" yaml:"digest"`
	Files       []string `json:"files" yaml:"files"`
	// Students lists distinct roster IDs among the files; a group spanning
	// several students is the interesting case.
	Students []string `json:"students" yaml:"students"`
}

// UnreadableRow describes a file whose content could not be fingerprinted.
type UnreadableRow struct {
	File  string `json:"file" yaml:"file"`
	Error string `json:"error" yaml:"error"`
}

// Report is the presentation-ready view of a Classification.
type Report struct {
	RunID           string              `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Summary         Summary             `json:"summary" yaml:"summary"`
	Missing         []roster.Entry      `json:"missing" yaml:"missing"`
	Submitted       []SubmittedRow      `json:"submitted" yaml:"submitted"`
	Unknown         []UnknownRow        `json:"unknown" yaml:"unknown"`
	Duplicates      []DuplicateRow      `json:"duplicates" yaml:"duplicates"`
	ExactDuplicates []ExactDuplicateRow `json:"exact_duplicates" yaml:"exact_duplicates"`
	Unreadable      []UnreadableRow     `json:"unreadable" yaml:"unreadable"`
}

// Build flattens c into report rows. Students are listed by ID; unknown and
// unreadable files keep input order; exact duplicates follow first appearance.
func Build(c *classify.Classification) Report {
	rep := Report{
		Missing:         c.MissingEntries(),
		Submitted:       make([]SubmittedRow, 0, len(c.Groups)),
		Unknown:         make([]UnknownRow, 0, len(c.Unknown)),
		Duplicates:      make([]DuplicateRow, 0),
		ExactDuplicates: make([]ExactDuplicateRow, 0),
		Unreadable:      make([]UnreadableRow, 0),
	}

	for _, id := range c.SubmittedIDs() {
		files := c.Groups[id]
		pick, _ := c.Representative(id)
		name := studentName(c, id)
		rep.Submitted = append(rep.Submitted, SubmittedRow{
			StudentID: id,
			Name:      name,
			File:      pick.Name,
			SizeBytes: pick.Size,
			SizeKB:    math.Round(float64(pick.Size)/1024*100) / 100,
			SizeHuman: humanize.IBytes(uint64(max(pick.Size, 0))),
			Versions:  len(files),
			Observed:  pick.Observed,
			Late:      pick.Late,
		})
		if len(files) > 1 {
			rep.Duplicates = append(rep.Duplicates, DuplicateRow{
				StudentID: id,
				Name:      name,
				Count:     len(files),
				Files:     names(files),
			})
		}
	}

	for _, file := range c.Unknown {
		row := UnknownRow{File: file.Name, Reason: ReasonNoID}
		if id, ok := studentid.Extract(file.Name); ok {
			row.StudentID = id
			row.Reason = ReasonNotInRoster
		}
		rep.Unknown = append(rep.Unknown, row)
	}

	for _, group := range c.ExactDuplicates() {
		rep.ExactDuplicates = append(rep.ExactDuplicates, ExactDuplicateRow{
			Fingerprint: digest.Short(group.Digest),
			Digest:      group.Digest,
			Files:       names(group.Files),
			Students:    students(group.Files),
		})
	}

	for _, file := range c.Files {
		if !file.DigestAvailable() {
			rep.Unreadable = append(rep.Unreadable, UnreadableRow{File: file.Name, Error: file.DigestError})
		}
	}

	rosterSize := c.Roster.Len()
	percent := 0
	if rosterSize > 0 {
		percent = len(c.Groups) * 100 / rosterSize
	}
	rep.Summary = Summary{
		Submitted:            len(c.Groups),
		RosterSize:           rosterSize,
		Percent:              percent,
		CompletionRate:       c.CompletionRate(),
		Files:                len(c.Files),
		Unknown:              len(c.Unknown),
		DuplicateSubmitters:  len(rep.Duplicates),
		ExactDuplicateGroups: len(rep.ExactDuplicates),
		Unreadable:           len(rep.Unreadable),
		Late:                 c.LateCount(),
		Deadline:             c.Deadline,
		Algorithm:            c.Algorithm,
	}
	return rep
}

func studentName(c *classify.Classification, id string) string {
	name, _ := c.Roster.Name(id)
	return name
}

func names(files []classify.Submission) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func students(files []classify.Submission) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f.StudentID == "" {
			continue
		}
		if _, ok := seen[f.StudentID]; ok {
			continue
		}
		seen[f.StudentID] = struct{}{}
		out = append(out, f.StudentID)
	}
	return out
}
