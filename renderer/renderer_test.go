package renderer

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/hfcharts"
)

// allocation is a helper for test to build an allocation from "date,name,value" rows.
func allocation(t *testing.T, rows ...string) *hfcharts.Allocation {
	t.Helper()
	sheet := hfcharts.Sheet{Title: "positions", Rows: [][]string{{"date", "SecurityName", "MarketValue"}}}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, strings.Split(r, ","))
	}
	c, err := new(hfcharts.Transformer).Transform(&hfcharts.Workbook{Sheets: []hfcharts.Sheet{sheet}})
	if err != nil {
		t.Fatalf("Transform() unexpected error: %v", err)
	}
	return hfcharts.NewAllocation(c)
}

func sample(t *testing.T) *hfcharts.Allocation {
	return allocation(t,
		"2024-01-01,Apple,600",
		"2024-01-01,Tesla,-200",
		"2024-01-01,Bonds,200",
		"2024-01-02,Apple,700",
		"2024-01-02,Tesla,-100",
		"2024-01-02,Bonds,200",
	)
}

func TestNewFigure(t *testing.T) {
	a := sample(t)
	f := NewFigure("hfgm", a)

	if !strings.HasPrefix(f.Layout.Title.Text, "(HFGM) ") {
		t.Errorf("title = %q", f.Layout.Title.Text)
	}
	if f.Layout.BarMode != "relative" || f.Layout.Height != 600 || f.Layout.XAxis.TickAngle != -45 {
		t.Errorf("layout = %+v", f.Layout)
	}
	if len(f.Data) != len(a.Names) {
		t.Fatalf("got %d traces, want %d", len(f.Data), len(a.Names))
	}
	for j, tr := range f.Data {
		if tr.Name != a.Names[j] || tr.Type != "bar" {
			t.Errorf("trace %d = %q %q, want bar %q", j, tr.Type, tr.Name, a.Names[j])
		}
		if len(tr.X) != 2 || tr.X[0] != "2024-01-01" || tr.X[1] != "2024-01-02" {
			t.Errorf("trace %d x = %v", j, tr.X)
		}
		if !strings.Contains(tr.HoverTemplate, "Security Name=%{fullData.name}") {
			t.Errorf("trace %d hovertemplate = %q", j, tr.HoverTemplate)
		}
	}
	// Apple is the largest position, stacked last: 600 / 1000 gross.
	apple := f.Data[len(f.Data)-1]
	if apple.Name != "Apple" || !hfcharts.Percent(apple.Y[0]).Equal(60) || !hfcharts.Percent(apple.Y[1]).Equal(70) {
		t.Errorf("Apple trace = %v %v", apple.Name, apple.Y)
	}
	for _, tr := range f.Data {
		if tr.Name == "Tesla" && !hfcharts.Percent(tr.Y[0]).Equal(-20) {
			t.Errorf("Tesla y = %v, want -20 on first date", tr.Y)
		}
	}
}

func TestNewFigureHoverTemplate(t *testing.T) {
	f := NewFigure("hfgm", allocation(t, "2024-01-01,%{y} <b>Corp</b>,100"))
	if len(f.Data) != 1 {
		t.Fatalf("got %d traces, want 1", len(f.Data))
	}
	tr := f.Data[0]
	if tr.Name != "%{y} <b>Corp</b>" {
		t.Errorf("trace name = %q", tr.Name)
	}
	if strings.Contains(tr.HoverTemplate, "Corp") || strings.Count(tr.HoverTemplate, "%{") != 3 {
		t.Errorf("hovertemplate = %q, want the name substituted by Plotly", tr.HoverTemplate)
	}
}

func TestNewFigureEmpty(t *testing.T) {
	f := NewFigure("hfeq", allocation(t))
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"data":[]`) {
		t.Errorf("empty figure = %s, want an empty data array", b)
	}
}

func TestSnapshot(t *testing.T) {
	tests := []struct {
		name string
		a    *hfcharts.Allocation
	}{
		{"sample", sample(t)},
		{"single date", allocation(t, "2024-01-01,Apple,600")},
		{"flat", allocation(t, "2024-01-01,Apple,0", "2024-01-02,Apple,0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg, err := Snapshot(tt.a)
			if err != nil {
				t.Fatalf("Snapshot() unexpected error: %v", err)
			}
			if !bytes.HasPrefix(svg, []byte("<svg")) {
				t.Errorf("Snapshot() is not an svg: %.40q", svg)
			}
			for _, name := range []string{"Long", "Short", "Net"} {
				if !bytes.Contains(svg, []byte(name)) {
					t.Errorf("Snapshot() legend misses %q", name)
				}
			}
		})
	}

	svg, err := Snapshot(allocation(t))
	if err != nil || svg != nil {
		t.Errorf("Snapshot(empty) = %q, %v, want nil, nil", svg, err)
	}
}

func TestNewSummary(t *testing.T) {
	s := NewSummary("hfgm", "USD", sample(t), 2)

	if s.Title() != "HFGM" || s.IsEmpty() {
		t.Errorf("Title() = %q, IsEmpty() = %v", s.Title(), s.IsEmpty())
	}
	if s.Date.String() != "2024-01-02" || s.Positions != 3 {
		t.Errorf("summary date %v positions %d, want 2024-01-02 and 3", s.Date, s.Positions)
	}
	if s.Long.String() != "$900.00" || s.Short.String() != "-$100.00" || s.Net.String() != "$800.00" {
		t.Errorf("summary long %v short %v net %v", s.Long, s.Short, s.Net)
	}
	if len(s.Top) != 2 || s.Top[0].Name != "Apple" || s.Top[1].Name != "Bonds" {
		t.Fatalf("summary top = %+v, want Apple and Bonds", s.Top)
	}
	if !s.Top[0].Weight.Equal(70) {
		t.Errorf("Apple weight = %v, want 70%%", s.Top[0].Weight)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	s := NewSummary("hfgm", "USD", allocation(t, "2024-01-01,A|B,100", "2024-01-01,Short,-50"), 10)
	s.Commentary = "Mostly long."
	md := SummaryMarkdown(s)
	for _, want := range []string{
		"## HFGM",
		"As of **2024-01-01**, 2 positions.",
		"| Long | $100.00 |",
		"| Short | -$50.00 |",
		`| A\|B | $100.00 | +66.67% |`,
		"| Short | -$50.00 | -33.33% |",
		"Mostly long.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("SummaryMarkdown() misses %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "error") {
		t.Errorf("SummaryMarkdown() failed:\n%s", md)
	}

	empty := SummaryMarkdown(NewSummary("hfeq", "USD", allocation(t), 10))
	if !strings.Contains(empty, "No positions.") || strings.Contains(empty, "|") {
		t.Errorf("SummaryMarkdown(empty) =\n%s", empty)
	}
}

func TestMarkdownHTML(t *testing.T) {
	html, err := MarkdownHTML("| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Errorf("MarkdownHTML() has no table: %s", html)
	}
	if strings.Contains(string(html), "<script>") {
		t.Errorf("MarkdownHTML() kept raw html: %s", html)
	}
}

func newTestPage(t *testing.T, allocations map[string]*hfcharts.Allocation, tickers ...string) *Page {
	t.Helper()
	p := NewPage()
	for _, ticker := range tickers {
		a := allocations[ticker]
		c, err := NewChart(ticker, a, NewSummary(ticker, "USD", a, 5))
		if err != nil {
			t.Fatalf("NewChart() unexpected error: %v", err)
		}
		p.Append(c)
	}
	return p
}

func TestWritePage(t *testing.T) {
	allocations := map[string]*hfcharts.Allocation{"hfgm": sample(t), "hfeq": allocation(t)}
	path := filepath.Join(t.TempDir(), "website", "index.html")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WritePage(path, newTestPage(t, allocations, "hfgm", "hfeq")); err != nil {
		t.Fatalf("WritePage() unexpected error: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	page := string(content)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Market Value Analysis</title>",
		DefaultPlotlyURL,
		`id="chart-hfgm"`,
		`id="chart-hfeq"`,
		`Plotly.newPlot("chart-hfgm"`,
		`Plotly.newPlot("chart-hfeq", [], `,
		`"name":"Apple"`,
		`"name":"Tesla"`,
		"<svg",
		"<table>",
		"No positions.",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page misses %q", want)
		}
	}
	if strings.Contains(page, "stale") {
		t.Errorf("page was not overwritten")
	}
}

func TestWritePageDeterministic(t *testing.T) {
	allocations := map[string]*hfcharts.Allocation{"hfgm": sample(t)}
	dir := t.TempDir()
	var pages [2][]byte
	for i := range pages {
		path := filepath.Join(dir, "index.html")
		if err := WritePage(path, newTestPage(t, allocations, "hfgm")); err != nil {
			t.Fatalf("WritePage() unexpected error: %v", err)
		}
		var err error
		if pages[i], err = os.ReadFile(path); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(pages[0], pages[1]) {
		t.Errorf("two runs on the same input produced different pages")
	}
}

func TestWritePageUnwritable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	// the parent "directory" is a regular file.
	err := WritePage(filepath.Join(file, "index.html"), NewPage())
	if !errors.Is(err, hfcharts.ErrIO) {
		t.Errorf("WritePage() error = %v, want ErrIO", err)
	}
}
