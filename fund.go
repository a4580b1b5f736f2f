package hfcharts

import (
	"fmt"
	"strings"
)

// Fund is a fund to chart: its ticker and where its positions are kept.
type Fund struct {
	Ticker string
	// Source is a Google spreadsheet ID, or the path to a local .xlsx workbook.
	Source string
}

// DefaultFunds are the funds charted when none is configured.
var DefaultFunds = []Fund{
	{Ticker: "hfgm", Source: "1qSxF2O1K7ZznYiYPmco0-2bjly6BOfchF122oUMSC1w"},
	{Ticker: "hfeq", Source: "11cnEliJDlETvYHXE2UKCo4CbzGbZPT8jjGGxF53H3e0"},
}

// IsLocal reports whether the fund's source is a local workbook file.
func (f Fund) IsLocal() bool {
	return strings.HasSuffix(strings.ToLower(f.Source), ".xlsx")
}

func (f Fund) String() string { return f.Ticker + "=" + f.Source }

// ParseFunds parses a comma separated list of ticker=source pairs.
func ParseFunds(s string) ([]Fund, error) {
	var funds []Fund
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ticker, source, ok := strings.Cut(item, "=")
		ticker, source = strings.TrimSpace(ticker), strings.TrimSpace(source)
		if !ok || ticker == "" || source == "" {
			return nil, fmt.Errorf("invalid fund %q want format ticker=source", item)
		}
		funds = append(funds, Fund{Ticker: ticker, Source: source})
	}
	if len(funds) == 0 {
		return nil, fmt.Errorf("no fund in %q", s)
	}
	return funds, nil
}

// FormatFunds is the inverse of ParseFunds.
func FormatFunds(funds []Fund) string {
	items := make([]string, len(funds))
	for i, f := range funds {
		items[i] = f.String()
	}
	return strings.Join(items, ",")
}
