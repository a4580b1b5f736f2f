package sheets

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/hfcharts"
)

func TestSaveAndFetchXLSX(t *testing.T) {
	in := &hfcharts.Workbook{ID: "sheet-id", Sheets: []hfcharts.Sheet{
		{Title: "2024-01-31", Rows: [][]string{
			{"SecurityName", "MarketValue"},
			{"Apple", "1000.5"},
			{"Tesla", "-250"},
		}},
		{Title: "2024-02-29", Rows: [][]string{
			{"SecurityName", "MarketValue"},
			{"Apple", "1200"},
		}},
	}}
	path := filepath.Join(t.TempDir(), "fund.xlsx")
	if err := SaveXLSX(path, in); err != nil {
		t.Fatalf("SaveXLSX() unexpected error: %v", err)
	}

	out, err := (&File{Path: path}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if out.ID != path {
		t.Errorf("Fetch().ID = %q, want %q", out.ID, path)
	}
	if len(out.Sheets) != len(in.Sheets) {
		t.Fatalf("Fetch() got %d sheets, want %d", len(out.Sheets), len(in.Sheets))
	}
	for i, s := range in.Sheets {
		if out.Sheets[i].Title != s.Title {
			t.Errorf("sheet %d title = %q, want %q", i, out.Sheets[i].Title, s.Title)
		}
		for r, row := range s.Rows {
			if !slices.Equal(out.Sheets[i].Rows[r], row) {
				t.Errorf("sheet %d row %d = %q, want %q", i, r, out.Sheets[i].Rows[r], row)
			}
		}
	}

	// and the transformer reads it like the online one.
	c, err := new(hfcharts.Transformer).Transform(out)
	if err != nil {
		t.Fatalf("Transform() unexpected error: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Transform() got %d points, want 3", c.Len())
	}
}

func TestSaveXLSXCollidingTitles(t *testing.T) {
	header := []string{"SecurityName", "MarketValue"}
	in := &hfcharts.Workbook{Sheets: []hfcharts.Sheet{
		{Title: "2024/01/01", Rows: [][]string{header, {"A", "1"}}},
		{Title: "2024-01-01", Rows: [][]string{header, {"B", "2"}}},
		{Title: "2024-01-02", Rows: [][]string{header, {"C", "3"}}},
	}}
	path := filepath.Join(t.TempDir(), "fund.xlsx")
	if err := SaveXLSX(path, in); err != nil {
		t.Fatalf("SaveXLSX() unexpected error: %v", err)
	}
	out, err := (&File{Path: path}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	var titles, names []string
	for _, s := range out.Sheets {
		titles = append(titles, s.Title)
		names = append(names, s.Rows[1][0])
	}
	if want := []string{"2024-01-01", "2024-01-01 (2)", "2024-01-02"}; !slices.Equal(titles, want) {
		t.Errorf("Fetch() titles = %q, want %q", titles, want)
	}
	if want := []string{"A", "B", "C"}; !slices.Equal(names, want) {
		t.Errorf("Fetch() positions = %q, want %q", names, want)
	}

	// both snapshots of 2024-01-01 still read as that date.
	c, err := new(hfcharts.Transformer).Transform(out)
	if err != nil {
		t.Fatalf("Transform() unexpected error: %v", err)
	}
	if dates := c.Dates(); len(dates) != 2 {
		t.Errorf("Transform() dates = %v, want 2 dates", dates)
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := make(map[string]bool)
	long := strings.Repeat("x", 40)
	tests := []struct{ in, want string }{
		{"Jan", "Jan"},
		{"JAN", "JAN (2)"},
		{"jan", "jan (3)"},
		{long, strings.Repeat("x", 31)},
		{long, strings.Repeat("x", 27) + " (2)"},
	}
	for _, tt := range tests {
		if got := uniqueSheetName(tt.in, used); got != tt.want {
			t.Errorf("uniqueSheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchXLSXMissing(t *testing.T) {
	_, err := (&File{Path: filepath.Join(t.TempDir(), "missing.xlsx")}).Fetch(context.Background())
	if !errors.Is(err, hfcharts.ErrNotFound) {
		t.Errorf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestSaveXLSXUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "fund.xlsx")
	err := SaveXLSX(path, &hfcharts.Workbook{})
	if !errors.Is(err, hfcharts.ErrIO) {
		t.Errorf("SaveXLSX() error = %v, want ErrIO", err)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2024-01-31", "2024-01-31"},
		{"2024/01/31", "2024-01-31"},
		{"[a]:b*?", "-a--b--"},
		{"", "Sheet"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		if got := sheetName(tt.in); got != tt.want {
			t.Errorf("sheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
