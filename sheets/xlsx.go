package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/hfcharts"
	"github.com/xuri/excelize/v2"
)

// File reads a local .xlsx workbook laid out like the Google spreadsheet: one worksheet per
// snapshot.
type File struct {
	Path string
}

// Fetch reads all the worksheets of the file, in tab order.
func (f *File) Fetch(_ context.Context) (*hfcharts.Workbook, error) {
	x, err := excelize.OpenFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: workbook %q: %w", hfcharts.ErrNotFound, f.Path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open workbook %q: %w", hfcharts.ErrIO, f.Path, err)
	}
	defer x.Close()

	wb := &hfcharts.Workbook{ID: f.Path}
	for _, name := range x.GetSheetList() {
		rows, err := x.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read worksheet %q of %q: %w", hfcharts.ErrIO, name, f.Path, err)
		}
		log.Printf("Processing worksheet: %s", name)
		wb.Sheets = append(wb.Sheets, hfcharts.Sheet{Title: name, Rows: rows})
	}
	return wb, nil
}

// SaveXLSX writes wb to a new .xlsx file, one worksheet per sheet. Numeric cells are stored
// as numbers. Titles that are not valid or not unique worksheet names are renamed.
func SaveXLSX(path string, wb *hfcharts.Workbook) error {
	x := excelize.NewFile()
	defer x.Close()

	const defaultSheet = "Sheet1" // created by excelize.NewFile
	used := make(map[string]bool)
	for i, s := range wb.Sheets {
		name := uniqueSheetName(s.Title, used)
		if name != s.Title {
			log.Printf("worksheet %q saved as %q", s.Title, name)
		}
		if i == 0 {
			if err := x.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("%w: worksheet %q: %w", hfcharts.ErrIO, s.Title, err)
			}
		} else if _, err := x.NewSheet(name); err != nil {
			return fmt.Errorf("%w: worksheet %q: %w", hfcharts.ErrIO, s.Title, err)
		}

		for r, row := range s.Rows {
			cells := make([]any, len(row))
			for j, c := range row {
				cells[j] = cellValue(c)
			}
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return fmt.Errorf("%w: worksheet %q: %w", hfcharts.ErrIO, s.Title, err)
			}
			if err := x.SetSheetRow(name, axis, &cells); err != nil {
				return fmt.Errorf("%w: worksheet %q row %d: %w", hfcharts.ErrIO, s.Title, r+1, err)
			}
		}
	}
	if err := x.SaveAs(path); err != nil {
		return fmt.Errorf("%w: cannot save workbook %q: %w", hfcharts.ErrIO, path, err)
	}
	return nil
}

// cellValue returns a number for numeric cells, the string itself otherwise.
func cellValue(c string) any {
	if f, err := strconv.ParseFloat(c, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return c
}

// sheetName makes title a valid excel worksheet name.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, title)
	if name == "" {
		name = "Sheet"
	}
	return truncate(name, maxSheetName)
}

// maxSheetName is the maximum length of a worksheet name, in runes.
const maxSheetName = 31

// uniqueSheetName returns a valid worksheet name for title that is not in used, and adds it.
// Worksheet names are case insensitive.
func uniqueSheetName(title string, used map[string]bool) string {
	base := sheetName(title)
	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
