package hfcharts

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/etnz/hfcharts/date"
	"github.com/shopspring/decimal"
)

// Default column headers, as exported by the positions downloader.
const (
	DefaultNameColumn  = "SecurityName"
	DefaultValueColumn = "MarketValue"
	DefaultDateColumn  = "date"
)

// Transformer reshapes raw worksheets into timeseries points.
//
// The zero value is ready to use with the default columns.
type Transformer struct {
	NameColumn  string // header of the series name column, DefaultNameColumn if empty
	ValueColumn string // header of the value column, DefaultValueColumn if empty
	// DateColumn is the header of the date column. When a sheet has no such column, the sheet
	// title is the date of all its rows.
	DateColumn string
	// SkipMalformed logs and skips rows that cannot be read instead of failing.
	SkipMalformed bool
}

func (t *Transformer) nameColumn() string  { return or(t.NameColumn, DefaultNameColumn) }
func (t *Transformer) valueColumn() string { return or(t.ValueColumn, DefaultValueColumn) }
func (t *Transformer) dateColumn() string  { return or(t.DateColumn, DefaultDateColumn) }

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Transform reads every sheet of wb and returns one point per non blank data row, in reading
// order.
//
// Malformed cells fail with a *ParseError, unless SkipMalformed is set.
func (t *Transformer) Transform(wb *Workbook) (*Collection, error) {
	c := new(Collection)
	for _, sheet := range wb.Sheets {
		points, err := t.TransformSheet(sheet)
		if err != nil {
			return nil, err
		}
		c.Append(points...)
	}
	return c, nil
}

// columns locates the columns of interest in a header row.
type columns struct {
	name, value, date int
}

func (t *Transformer) columns(sheet Sheet) (columns, error) {
	cols := columns{name: -1, value: -1, date: -1}
	for i, h := range sheet.Header() {
		switch strings.TrimSpace(h) {
		case t.nameColumn():
			if cols.name < 0 {
				cols.name = i
			}
		case t.valueColumn():
			if cols.value < 0 {
				cols.value = i
			}
		case t.dateColumn():
			if cols.date < 0 {
				cols.date = i
			}
		}
	}
	for _, required := range []struct {
		index  int
		header string
	}{{cols.name, t.nameColumn()}, {cols.value, t.valueColumn()}} {
		if required.index < 0 {
			return cols, &ParseError{Sheet: sheet.Title, Row: 1, Column: required.header, Value: strings.Join(sheet.Header(), ","), Err: errors.New("missing column")}
		}
	}
	return cols, nil
}

// TransformSheet reads a single sheet. A blank sheet has no points.
func (t *Transformer) TransformSheet(sheet Sheet) ([]Point, error) {
	if isBlank(sheet.Header()) {
		log.Printf("skipping blank worksheet %q", sheet.Title)
		return nil, nil
	}
	cols, err := t.columns(sheet)
	if err != nil {
		return nil, err
	}

	// The sheet date is only required if some rows do not carry their own.
	var sheetDate date.Date
	var sheetDateErr error
	if cols.date < 0 {
		sheetDate, sheetDateErr = parseSheetDate(sheet.Title)
	}

	points := make([]Point, 0, len(sheet.Records()))
	for i, row := range sheet.Records() {
		if isBlank(row) {
			continue
		}
		rowNum := i + 2 // 1-based, after the header
		p, err := t.point(sheet, rowNum, row, cols, sheetDate, sheetDateErr)
		if err != nil {
			if t.SkipMalformed {
				log.Printf("skipping malformed row: %v", err)
				continue
			}
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (t *Transformer) point(sheet Sheet, rowNum int, row []string, cols columns, sheetDate date.Date, sheetDateErr error) (Point, error) {
	perr := func(column, value string, err error) error {
		return &ParseError{Sheet: sheet.Title, Row: rowNum, Column: column, Value: value, Err: err}
	}

	on := sheetDate
	if cols.date >= 0 {
		raw := cell(row, cols.date)
		d, err := date.Parse(raw)
		if err != nil {
			return Point{}, perr(t.dateColumn(), raw, err)
		}
		on = d
	} else if sheetDateErr != nil {
		return Point{}, perr("", sheet.Title, sheetDateErr)
	}

	name := strings.TrimSpace(cell(row, cols.name))
	if name == "" {
		return Point{}, perr(t.nameColumn(), name, errors.New("empty series name"))
	}

	raw := cell(row, cols.value)
	value, err := ParseValue(raw)
	if err != nil {
		return Point{}, perr(t.valueColumn(), raw, err)
	}
	return Point{Date: on, Series: name, Value: value}, nil
}

// parseSheetDate parses a worksheet title as a date. A " (2)" suffix, given to worksheets
// sharing a name, is ignored.
func parseSheetDate(title string) (date.Date, error) {
	d, err := date.Parse(title)
	if err == nil {
		return d, nil
	}
	i := strings.LastIndex(title, " (")
	if i < 0 || !strings.HasSuffix(title, ")") {
		return d, err
	}
	if _, nerr := strconv.Atoi(title[i+2 : len(title)-1]); nerr != nil {
		return d, err
	}
	if d, cerr := date.Parse(title[:i]); cerr == nil {
		return d, nil
	}
	return d, err
}

// ParseValue parses a numeric cell. Surrounding spaces and thousands separators are ignored.
func ParseValue(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, errors.New("empty value")
	}
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %w", err)
	}
	return v, nil
}
