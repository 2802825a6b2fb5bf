package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"

	"hwcheck/internal/faults"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a CSV or XLSX roster from path and parses it.
func Load(path string, opts Options) (*Roster, error) {
	table, err := ReadTable(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	return Parse(table, opts)
}

// ReadTable reads the first (or named) sheet of a roster file. The first row
// becomes the header.
func ReadTable(path, sheet string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return Table{}, faults.Wrap(faults.ErrMissingInput, "roster", "read", "roster file not supplied", nil)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return Table{}, fmt.Errorf("read roster %s: %w", path, err)
		}
		return ReadCSV(bytes.NewReader(data))
	case ".xlsx", ".xlsm":
		file, err := os.Open(path)
		if err != nil {
			return Table{}, fmt.Errorf("open roster %s: %w", path, err)
		}
		defer file.Close()
		return ReadXLSX(file, sheet)
	default:
		return Table{}, faults.Wrap(faults.ErrRosterFormat, "roster", "read", fmt.Sprintf("unsupported roster file type %q", filepath.Ext(path)), nil)
	}
}

// ReadCSV parses comma-separated roster data. UTF-8 with or without a byte
// order mark is accepted; anything that is not valid UTF-8 is decoded as
// GB18030, the encoding spreadsheet tools commonly use for Chinese CSV exports.
func ReadCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read roster csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data)
		if err != nil {
			return Table{}, faults.Wrap(faults.ErrRosterFormat, "roster", "decode", "csv is neither UTF-8 nor GB18030", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, faults.Wrap(faults.ErrRosterFormat, "roster", "parse csv", "", err)
	}
	return tableFromRows(records), nil
}

// ReadXLSX parses an Excel workbook. An empty sheet name selects the first
// worksheet.
func ReadXLSX(r io.Reader, sheet string) (Table, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, faults.Wrap(faults.ErrRosterFormat, "roster", "open xlsx", "", err)
	}
	defer book.Close()

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, faults.Wrap(faults.ErrRosterFormat, "roster", "open xlsx", "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}
	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, faults.Wrap(faults.ErrRosterFormat, "roster", "read xlsx", fmt.Sprintf("sheet %q", sheet), err)
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	return Table{Header: rows[0], Rows: rows[1:]}
}
