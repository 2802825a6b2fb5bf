package submission

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hwcheck/internal/faults"
)

// Options filters which files count as submissions.
type Options struct {
	// Extensions limits accepted files by extension (case-insensitive, with or
	// without the leading dot). Empty accepts everything.
	Extensions    []string
	IncludeHidden bool
}

// Accepts reports whether a filename passes the extension and hidden-file
// filters.
func (o Options) Accepts(name string) bool {
	if !o.IncludeHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if len(o.Extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range o.Extensions {
		if strings.TrimPrefix(strings.ToLower(strings.TrimSpace(allowed)), ".") == ext {
			return true
		}
	}
	return false
}

// ScanDirectory lists the regular files directly inside dir, sorted by name.
// Symlinks to regular files are included; subdirectories are not traversed.
func ScanDirectory(dir string, opts Options) ([]Record, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, faults.Wrap(faults.ErrMissingInput, "submission", "scan", "submission directory not supplied", nil)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFileRead, "submission", "scan", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Type()
		if (!mode.IsRegular() && mode&fs.ModeSymlink == 0) || !opts.Accepts(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := fileInfo(path, entry)
		if err != nil {
			// Removed between ReadDir and Info, or a dangling link; report it
			// with no content.
			records = append(records, unreadable(entry.Name(), err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		records = append(records, NewFile(path, info))
	}
	return records, nil
}

// fileInfo follows symlinks so a linked submission reports the target's size
// and mtime.
func fileInfo(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return entry.Info()
}

// LoadUploads reads each path into memory and stamps it with the ingestion
// time from now, mirroring browser uploads that carry no intrinsic timestamp.
// Unreadable paths are kept as records whose content cannot be opened.
func LoadUploads(paths []string, opts Options, now func() time.Time) ([]Record, error) {
	if len(paths) == 0 {
		return nil, faults.Wrap(faults.ErrMissingInput, "submission", "upload", "no submission files supplied", nil)
	}
	if now == nil {
		now = time.Now
	}
	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if !opts.Accepts(name) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			records = append(records, unreadable(name, err))
			continue
		}
		records = append(records, NewBuffer(name, data, now()))
	}
	return records, nil
}

type unreadableSource struct {
	err error
}

func unreadable(name string, err error) Record {
	return Record{Name: name, Source: unreadableSource{err: err}}
}

func (u unreadableSource) Open() (io.ReadCloser, error) {
	return nil, fmt.Errorf("open: %w", u.err)
}

func (unreadableSource) Size() int64 { return 0 }

func (unreadableSource) ObservedTime() (time.Time, bool) { return time.Time{}, false }
