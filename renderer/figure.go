package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/hfcharts"
)

// Figure is a Plotly figure, as consumed by Plotly.newPlot in the browser.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single bar series of a figure.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	LegendGroup   string    `json:"legendgroup"`
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	HoverTemplate string    `json:"hovertemplate"`
}

// Layout is the subset of Plotly's layout attributes in use.
type Layout struct {
	Title   Text   `json:"title"`
	BarMode string `json:"barmode"`
	Height  int    `json:"height"`
	XAxis   Axis   `json:"xaxis"`
	YAxis   Axis   `json:"yaxis"`
	Legend  Legend `json:"legend"`
}

// Axis configures a figure axis.
type Axis struct {
	Title     Text   `json:"title"`
	Type      string `json:"type,omitempty"`
	TickAngle int    `json:"tickangle,omitempty"`
}

// Legend configures the figure legend.
type Legend struct {
	Title Text `json:"title"`
}

// Text is Plotly's title object.
type Text struct {
	Text string `json:"text"`
}

// labels of the chart.
const (
	dateLabel  = "Date"
	valueLabel = "Normalized Market Value (%)"
	nameLabel  = "Security Name"
)

// NewFigure returns the stacked bar chart of the normalized allocation: one bar per date, one
// trace per security. Shorts are stacked below zero.
func NewFigure(ticker string, a *hfcharts.Allocation) *Figure {
	x := make([]string, len(a.Dates))
	for i, on := range a.Dates {
		x[i] = on.String()
	}
	normalized := a.Normalized()

	f := &Figure{
		Data: make([]Trace, 0, len(a.Names)),
		Layout: Layout{
			Title:   Text{fmt.Sprintf("(%s) Market Value Stacked by SecurityName per Date (Ordered by Total Market Value, Negative for shorts)", strings.ToUpper(ticker))},
			BarMode: "relative",
			Height:  600,
			XAxis:   Axis{Title: Text{dateLabel}, Type: "date", TickAngle: -45},
			YAxis:   Axis{Title: Text{valueLabel}},
			Legend:  Legend{Title: Text{nameLabel}},
		},
	}
	for j, name := range a.Names {
		y := make([]float64, len(a.Dates))
		for i := range a.Dates {
			y[i] = float64(normalized[i][j])
		}
		f.Data = append(f.Data, Trace{
			Type:          "bar",
			Name:          name,
			LegendGroup:   name,
			X:             x,
			Y:             y,
			HoverTemplate: hoverTemplate,
		})
	}
	return f
}

// hoverTemplate is the hover label of every trace. Plotly substitutes %{...}, the trace name
// included, so that names are never read as a template.
const hoverTemplate = dateLabel + "=%{x|%Y-%m-%d}<br>" + valueLabel + "=%{y:,.2f}<br>" + nameLabel + "=%{fullData.name}<extra></extra>"
