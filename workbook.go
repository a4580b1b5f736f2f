package hfcharts

import "strings"

// Workbook is the raw content of a spreadsheet: its worksheets, in order.
type Workbook struct {
	ID     string // spreadsheet ID or file path
	Sheets []Sheet
}

// Sheet is a single worksheet. Rows[0], if any, is the header row.
//
// Rows can be ragged: trailing empty cells are usually omitted by sources.
type Sheet struct {
	Title string
	Rows  [][]string
}

// Header returns the header row, or nil for a blank sheet.
func (s Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// Records returns the data rows, that is all rows but the header.
func (s Sheet) Records() [][]string {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// cell returns the i-th cell of row, or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// isBlank reports whether all cells of row are empty.
func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
