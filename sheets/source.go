// Package sheets fetches the raw worksheets of a fund, from the Google Sheets API or from a
// local .xlsx workbook.
package sheets

import (
	"context"

	"github.com/etnz/hfcharts"
)

// Source returns the raw content of a spreadsheet.
type Source interface {
	Fetch(ctx context.Context) (*hfcharts.Workbook, error)
}

// Config holds what is needed to reach Google spreadsheets.
type Config struct {
	// Credentials is the path to a service account key file.
	Credentials string
	// Cache keeps successful API reads on disk for the day.
	Cache bool
}

// Open returns the Source of a fund: a local workbook for .xlsx sources, the Google Sheets API
// otherwise.
func Open(ctx context.Context, fund hfcharts.Fund, cfg Config) (Source, error) {
	if fund.IsLocal() {
		return &File{Path: fund.Source}, nil
	}
	return NewGoogle(ctx, fund.Source, cfg)
}
