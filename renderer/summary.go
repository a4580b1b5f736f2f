package renderer

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/hfcharts"
	"github.com/etnz/hfcharts/date"
	"github.com/shopspring/decimal"
)

// Summary describes the latest snapshot of a fund.
type Summary struct {
	Ticker    string
	Date      date.Date // latest date, zero if the fund has no data
	Positions int       // number of non zero positions on Date
	Long      hfcharts.Money
	Short     hfcharts.Money
	Net       hfcharts.Money
	Top       []Holding // largest positions first
	// Commentary is an optional markdown paragraph appended to the summary.
	Commentary string
}

// Holding is a single position in a Summary.
type Holding struct {
	Name   string
	Value  hfcharts.Money
	Weight hfcharts.Percent // share of the gross market value, negative for shorts
}

// Title returns the fund's display name.
func (s *Summary) Title() string { return strings.ToUpper(s.Ticker) }

// IsEmpty reports whether the fund has no data.
func (s *Summary) IsEmpty() bool { return s.Date.IsZero() }

// NewSummary summarizes the latest date of the allocation, listing at most top positions.
func NewSummary(ticker, currency string, a *hfcharts.Allocation, top int) *Summary {
	s := &Summary{Ticker: ticker}
	if a.IsEmpty() {
		return s
	}
	last := a.Len() - 1
	s.Date = a.Dates[last]
	s.Long = hfcharts.M(a.Long(last), currency)
	s.Short = hfcharts.M(a.Short(last), currency)
	s.Net = hfcharts.M(a.Net(last), currency)

	gross := a.Gross(last)
	for j, name := range a.Names {
		v := a.Values[last][j]
		if v.IsZero() {
			continue
		}
		s.Positions++
		var weight decimal.Decimal
		if !gross.IsZero() {
			weight = v.Div(gross).Mul(decimal.NewFromInt(100))
		}
		s.Top = append(s.Top, Holding{
			Name:   name,
			Value:  hfcharts.M(v, currency),
			Weight: hfcharts.Percent(weight.InexactFloat64()),
		})
	}
	slices.SortStableFunc(s.Top, func(a, b Holding) int {
		if c := b.Value.Value().Abs().Cmp(a.Value.Value().Abs()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(s.Top) > top {
		s.Top = s.Top[:top]
	}
	return s
}

// SummaryMarkdown renders the summary as markdown.
func SummaryMarkdown(s *Summary) string {
	partials := map[string]string{
		"summary_exposure": "summary_exposure.md",
		"summary_top":      "summary_top.md",
	}
	if s.IsEmpty() {
		partials["summary_exposure"] = ""
		partials["summary_top"] = ""
	}
	return renderTemplate("summary", "summary.md", partials, s)
}
