package roster

import (
	"fmt"
	"sort"
	"strings"

	"hwcheck/internal/faults"
	"hwcheck/internal/studentid"
)

// Table is a roster sheet: a header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Options controls column discovery.
type Options struct {
	IDHeaderMarker  string
	NameHeader      string
	NamePlaceholder string
	ScanRows        int
	Sheet           string
}

func (o Options) withDefaults() Options {
	if o.IDHeaderMarker == "" {
		o.IDHeaderMarker = "学号"
	}
	if o.NameHeader == "" {
		o.NameHeader = "姓名"
	}
	if o.NamePlaceholder == "" {
		o.NamePlaceholder = "未知"
	}
	if o.ScanRows <= 0 {
		o.ScanRows = 5
	}
	return o
}

// Entry is a single enrolled student.
type Entry struct {
	StudentID string `json:"student_id" yaml:"student_id"`
	Name      string `json:"name" yaml:"name"`
}

// Roster maps student IDs to names. It is immutable once parsed.
type Roster struct {
	students map[string]string

	// IDHeader and NameHeader label exported columns in the roster's language.
	IDHeader   string
	NameHeader string
}

// New builds a roster from an ID to name mapping, mostly for tests and callers
// that already hold a parsed mapping.
func New(students map[string]string) *Roster {
	copied := make(map[string]string, len(students))
	for id, name := range students {
		copied[id] = name
	}
	opts := Options{}.withDefaults()
	return &Roster{students: copied, IDHeader: opts.IDHeaderMarker, NameHeader: opts.NameHeader}
}

// Len returns the number of students.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.students)
}

// Contains reports whether id is enrolled.
func (r *Roster) Contains(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r.students[id]
	return ok
}

// Name returns the student's name.
func (r *Roster) Name(id string) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.students[id]
	return name, ok
}

// IDs returns every student ID in ascending order.
func (r *Roster) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.students))
	for id := range r.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries resolves ids to entries, preserving their order.
func (r *Roster) Entries(ids []string) []Entry {
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		name, _ := r.Name(id)
		entries = append(entries, Entry{StudentID: id, Name: name})
	}
	return entries
}

// Parse discovers the ID and name columns of table and builds a roster.
//
// The ID column is the first whose header contains the marker, or failing
// that the first column where any of its leading non-empty values holds a
// nine-digit run. The name column is the one immediately to its right. Rows
// without an ID are skipped and a repeated ID keeps the last row's name.
func Parse(table Table, opts Options) (*Roster, error) {
	opts = opts.withDefaults()

	columns := columnCount(table)
	if columns == 0 {
		return nil, faults.Wrap(faults.ErrRosterFormat, "roster", "parse", "roster has no columns", nil)
	}

	idIdx, byHeader := findIDColumn(table, columns, opts)
	if idIdx < 0 {
		return nil, faults.Wrap(faults.ErrRosterFormat, "roster", "parse", "no student-ID column found", nil)
	}
	nameIdx := idIdx + 1

	students := make(map[string]string, len(table.Rows))
	for _, row := range table.Rows {
		id, ok := studentid.Extract(cell(row, idIdx))
		if !ok {
			continue
		}
		name := opts.NamePlaceholder
		if nameIdx < columns {
			name = strings.TrimSpace(cell(row, nameIdx))
		}
		students[id] = name
	}

	r := &Roster{students: students, IDHeader: opts.IDHeaderMarker, NameHeader: opts.NameHeader}
	if byHeader {
		r.IDHeader = strings.TrimSpace(cell(table.Header, idIdx))
		if label := strings.TrimSpace(cell(table.Header, nameIdx)); label != "" {
			r.NameHeader = label
		}
	}
	return r, nil
}

func findIDColumn(table Table, columns int, opts Options) (int, bool) {
	for i := 0; i < columns; i++ {
		if strings.Contains(normalizeHeader(cell(table.Header, i)), normalizeHeader(opts.IDHeaderMarker)) {
			return i, true
		}
	}
	for i := 0; i < columns; i++ {
		inspected := 0
		for _, row := range table.Rows {
			value := strings.TrimSpace(cell(row, i))
			if value == "" {
				continue
			}
			if _, ok := studentid.Extract(value); ok {
				return i, false
			}
			inspected++
			if inspected >= opts.ScanRows {
				break
			}
		}
	}
	return -1, false
}

func columnCount(table Table) int {
	columns := len(table.Header)
	for _, row := range table.Rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	return columns
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// String summarises the roster for log lines.
func (r *Roster) String() string {
	return fmt.Sprintf("roster(%d students)", r.Len())
}
