package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"hwcheck/internal/faults"
	"hwcheck/internal/fileutil"
)

const exportSheet = "Sheet1"

// WriteEntries writes entries to path as an ID column followed by a name
// column, using the roster's header labels. The file type follows the
// extension: .xlsx or .csv.
func (r *Roster) WriteEntries(path string, entries []Entry) error {
	idHeader, nameHeader := r.headers()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, idHeader, nameHeader, entries)
	case ".csv":
		return writeCSV(path, idHeader, nameHeader, entries)
	default:
		return faults.Wrap(faults.ErrValidation, "roster", "export", fmt.Sprintf("unsupported export file type %q (use .xlsx or .csv)", filepath.Ext(path)), nil)
	}
}

func (r *Roster) headers() (string, string) {
	defaults := Options{}.withDefaults()
	idHeader, nameHeader := defaults.IDHeaderMarker, defaults.NameHeader
	if r != nil {
		if r.IDHeader != "" {
			idHeader = r.IDHeader
		}
		if r.NameHeader != "" {
			nameHeader = r.NameHeader
		}
	}
	return idHeader, nameHeader
}

func writeXLSX(path, idHeader, nameHeader string, entries []Entry) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetRow(exportSheet, "A1", &[]any{idHeader, nameHeader}); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for i, entry := range entries {
		row := i + 2
		// IDs stay text so leading zeros survive.
		if err := book.SetCellStr(exportSheet, fmt.Sprintf("A%d", row), entry.StudentID); err != nil {
			return fmt.Errorf("write export row %d: %w", row, err)
		}
		if err := book.SetCellStr(exportSheet, fmt.Sprintf("B%d", row), entry.Name); err != nil {
			return fmt.Errorf("write export row %d: %w", row, err)
		}
	}
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return book.Write(w)
	})
	if err != nil {
		return fmt.Errorf("save export %s: %w", path, err)
	}
	return nil
}

func writeCSV(path, idHeader, nameHeader string, entries []Entry) error {
	err := fileutil.WriteAtomic(path, 0o644, func(out io.Writer) error {
		// Spreadsheet tools need the BOM to detect UTF-8.
		if _, err := out.Write(utf8BOM); err != nil {
			return err
		}
		w := csv.NewWriter(out)
		if err := w.Write([]string{idHeader, nameHeader}); err != nil {
			return fmt.Errorf("write export header: %w", err)
		}
		for _, entry := range entries {
			if err := w.Write([]string{entry.StudentID, entry.Name}); err != nil {
				return fmt.Errorf("write export row: %w", err)
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}
