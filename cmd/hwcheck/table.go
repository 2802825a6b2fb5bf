package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// fileColumnWidth caps file-name columns; longer names wrap at word-like
// boundaries instead of stretching the table past the terminal.
const fileColumnWidth = 48

type column struct {
	title string
	align text.Align
	// maxWidth wraps cell text beyond this many columns. Zero means no limit.
	maxWidth int
}

func textColumn(title string) column { return column{title: title, align: text.AlignLeft} }

func numberColumn(title string) column { return column{title: title, align: text.AlignRight} }

func fileColumn(title string) column {
	return column{title: title, align: text.AlignLeft, maxWidth: fileColumnWidth}
}

// renderTable draws rows with rounded borders. Short rows are padded with
// empty cells; extra cells are dropped.
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
		}
		if col.maxWidth > 0 {
			configs[i].WidthMax = col.maxWidth
			configs[i].WidthMaxEnforcer = text.WrapSoft
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}
