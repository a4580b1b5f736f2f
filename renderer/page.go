package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/hfcharts"
)

// DefaultPlotlyURL is where the page loads Plotly from.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// DefaultTitle is the page title.
const DefaultTitle = "Market Value Analysis"

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// Page is the static dashboard: one chart per fund.
type Page struct {
	Title     string
	PlotlyURL string
	Charts    []Chart
}

// NewPage returns an empty page with the default title and Plotly location.
func NewPage() *Page {
	return &Page{Title: DefaultTitle, PlotlyURL: DefaultPlotlyURL}
}

// Chart is a fund's section of the page.
type Chart struct {
	ID       string // DOM id of the chart element
	Figure   *Figure
	Snapshot template.HTML // static SVG rendering, may be empty
	Summary  template.HTML // may be empty
}

// NewChart builds a fund's section. A snapshot that cannot be rendered is left out.
func NewChart(ticker string, a *hfcharts.Allocation, summary *Summary) (Chart, error) {
	c := Chart{
		ID:     "chart-" + strings.ToLower(ticker),
		Figure: NewFigure(ticker, a),
	}
	svg, err := Snapshot(a)
	if err != nil {
		log.Printf("%s: no snapshot: %v", ticker, err)
	}
	c.Snapshot = template.HTML(svg)

	if summary != nil {
		html, err := MarkdownHTML(SummaryMarkdown(summary))
		if err != nil {
			return c, fmt.Errorf("cannot render %s summary: %w", ticker, err)
		}
		c.Summary = html
	}
	return c, nil
}

// Append adds charts to the page.
func (p *Page) Append(charts ...Chart) { p.Charts = append(p.Charts, charts...) }

// RenderPage writes the page's HTML to w.
func RenderPage(w io.Writer, p *Page) error {
	return pageTemplate.Execute(w, p)
}

// WritePage renders the page into the file at path, creating its directory and replacing any
// existing file.
func WritePage(path string, p *Page) (err error) {
	// Render first, so that a template error leaves the previous file alone.
	var buf bytes.Buffer
	if err := RenderPage(&buf, p); err != nil {
		return fmt.Errorf("cannot render page: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: cannot create output directory: %w", hfcharts.ErrIO, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: cannot create %q: %w", hfcharts.ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: cannot close %q: %w", hfcharts.ErrIO, path, cerr)
		}
	}()
	if _, err := buf.WriteTo(f); err != nil {
		return fmt.Errorf("%w: cannot write %q: %w", hfcharts.ErrIO, path, err)
	}
	return nil
}
