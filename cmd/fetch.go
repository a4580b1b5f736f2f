package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/hfcharts/sheets"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	dir   string
	cache bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "saves the worksheets of funds into .xlsx files" }
func (*fetchCmd) Usage() string {
	return `hfcharts fetch [-d <dir>] [<ticker>...]

Fetches the worksheets of every fund (or only the given tickers) and saves
each fund into <dir>/<ticker>.xlsx, one worksheet per snapshot.

The files can be charted offline with -funds <ticker>=<dir>/<ticker>.xlsx.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "d", ".", "Directory where to save the workbooks")
	f.BoolVar(&c.cache, "cache", false, "Cache the Google Sheets API responses on disk for the day")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds, err := decodeFunds(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create directory %q: %v\n", c.dir, err)
		return subcommands.ExitFailure
	}

	for _, fund := range funds {
		wb, err := fetch(ctx, fund, c.cache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot fetch %s: %v\n", fund.Ticker, err)
			return subcommands.ExitFailure
		}
		path := filepath.Join(c.dir, fund.Ticker+".xlsx")
		if err := sheets.SaveXLSX(path, wb); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Saved %d worksheets of %s to %s\n", len(wb.Sheets), fund.Ticker, path)
	}
	return subcommands.ExitSuccess
}
