package classify

import (
	"sort"

	"hwcheck/internal/roster"
)

// DigestGroup is a set of files sharing identical content.
type DigestGroup struct {
	Digest string       `json:"digest" yaml:"digest"`
	Files  []Submission `json:"files" yaml:"files"`
}

// Missing returns roster IDs with no submission, ascending.
func (c *Classification) Missing() []string {
	missing := make([]string, 0)
	for _, id := range c.Roster.IDs() {
		if _, ok := c.Groups[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// MissingEntries resolves Missing against the roster names.
func (c *Classification) MissingEntries() []roster.Entry {
	if c.Roster == nil {
		return []roster.Entry{}
	}
	return c.Roster.Entries(c.Missing())
}

// SubmittedIDs returns the IDs of students with at least one file, ascending.
func (c *Classification) SubmittedIDs() []string {
	ids := make([]string, 0, len(c.Groups))
	for id := range c.Groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DuplicateSubmitters returns the groups of students who submitted more than
// one file.
func (c *Classification) DuplicateSubmitters() map[string][]Submission {
	dups := make(map[string][]Submission)
	for id, files := range c.Groups {
		if len(files) > 1 {
			dups[id] = files
		}
	}
	return dups
}

// ExactDuplicates returns every fingerprint shared by more than one file,
// ordered by the input position of each group's first file.
func (c *Classification) ExactDuplicates() []DigestGroup {
	groups := make([]DigestGroup, 0)
	for sum, files := range c.Digests {
		if len(files) > 1 {
			groups = append(groups, DigestGroup{Digest: sum, Files: files})
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Files[0].Index < groups[j].Files[0].Index
	})
	return groups
}

// CompletionRate is the share of the roster with at least one file. An empty
// roster yields zero.
func (c *Classification) CompletionRate() float64 {
	total := c.Roster.Len()
	if total == 0 {
		return 0
	}
	return float64(len(c.Groups)) / float64(total)
}

// LateCount returns how many files were observed after the deadline.
func (c *Classification) LateCount() int {
	late := 0
	for _, file := range c.Files {
		if file.Late {
			late++
		}
	}
	return late
}

// Representative picks the file that stands for a student's submission.
//
// When every file in the group carries an observed time the newest one wins,
// with later arrival breaking ties. Otherwise the last file to arrive wins.
func (c *Classification) Representative(id string) (Submission, bool) {
	files := c.Groups[id]
	if len(files) == 0 {
		return Submission{}, false
	}
	return representative(files), true
}

func representative(files []Submission) Submission {
	for _, file := range files {
		if file.Observed == nil {
			return files[len(files)-1]
		}
	}
	best := files[0]
	for _, file := range files[1:] {
		if !file.Observed.Before(*best.Observed) {
			best = file
		}
	}
	return best
}
