package renderer

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/etnz/hfcharts"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Snapshot size, in pixels.
const (
	snapshotWidth  = 1024
	snapshotHeight = 320
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

// Snapshot renders the long, short and net market values of the allocation over time as an
// SVG image. It returns nil for an empty allocation.
func Snapshot(a *hfcharts.Allocation) ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	n := a.Len()
	times := make([]time.Time, n)
	long := make([]float64, n)
	short := make([]float64, n)
	net := make([]float64, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, on := range a.Dates {
		times[i] = on.Time()
		long[i] = a.Long(i).InexactFloat64()
		short[i] = a.Short(i).InexactFloat64()
		net[i] = a.Net(i).InexactFloat64()
		lo = min(lo, short[i], net[i])
		hi = max(hi, long[i], net[i])
	}
	if n == 1 {
		// go-chart needs at least two x values.
		times = append(times, times[0].Add(24*time.Hour))
		long = append(long, long[0])
		short = append(short, short[0])
		net = append(net, net[0])
	}

	graph := chart.Chart{
		Width:      snapshotWidth,
		Height:     snapshotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 10}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Name: "Market Value", ValueFormatter: compactFormatter},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Long", XValues: times, YValues: long, Style: lineStyle(chart.ColorBlue)},
			chart.TimeSeries{Name: "Short", XValues: times, YValues: short, Style: lineStyle(chart.ColorRed)},
			chart.TimeSeries{Name: "Net", XValues: times, YValues: net, Style: lineStyle(chart.ColorBlack)},
		},
	}
	if lo == hi {
		// flat lines, go-chart refuses a zero y range.
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("cannot render snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// compactFormatter formats axis values like 1.2M or 350k.
func compactFormatter(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	switch abs := math.Abs(f); {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", f/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", f/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.0fk", f/1e3)
	default:
		return fmt.Sprintf("%.0f", f)
	}
}
