// Package cmd implements the CLI application to chart the funds' market values.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/hfcharts"
	"github.com/etnz/hfcharts/sheets"
	"github.com/google/subcommands"
)

// Commands are the subcommands of the application.
var Commands = []subcommands.Command{
	&buildCmd{},
	&fetchCmd{},
	&summaryCmd{},
}

// DefaultCommand runs when no subcommand is given.
const DefaultCommand = "build"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const (
	credentialsEnv     = "HFCHARTS_CREDENTIALS"
	fundsEnv           = "HFCHARTS_FUNDS"
	defaultCredentials = "positionsdownloader-b257900bcaa5.json"
)

var credentialsFile = flag.String("credentials", "", "Path to the Google service account key file. Defaults to $"+credentialsEnv+" or "+defaultCredentials)
var fundsList = flag.String("funds", "", "Funds to chart as ticker=source pairs, the source is a spreadsheet ID or an .xlsx file. Defaults to $"+fundsEnv+" or "+hfcharts.FormatFunds(hfcharts.DefaultFunds))
var verbose = flag.Bool("v", false, "Log progress to stderr")

// Setup applies the global flags, once they are parsed.
func Setup() {
	log.SetFlags(0)
	if !*verbose {
		log.SetOutput(io.Discard)
	}
}

// credentials returns the path to the service account key file.
func credentials() string {
	if *credentialsFile != "" {
		return *credentialsFile
	}
	if env := os.Getenv(credentialsEnv); env != "" {
		return env
	}
	return defaultCredentials
}

// decodeFunds returns the configured funds, restricted to tickers if any.
func decodeFunds(tickers ...string) ([]hfcharts.Fund, error) {
	list := *fundsList
	if list == "" {
		list = os.Getenv(fundsEnv)
	}
	funds := hfcharts.DefaultFunds
	if list != "" {
		var err error
		if funds, err = hfcharts.ParseFunds(list); err != nil {
			return nil, err
		}
	}
	if len(tickers) == 0 {
		return funds, nil
	}

	selected := make([]hfcharts.Fund, 0, len(tickers))
	for _, ticker := range tickers {
		i := slices.IndexFunc(funds, func(f hfcharts.Fund) bool { return strings.EqualFold(f.Ticker, ticker) })
		if i < 0 {
			return nil, fmt.Errorf("unknown fund %q, known funds are %s", ticker, hfcharts.FormatFunds(funds))
		}
		selected = append(selected, funds[i])
	}
	return selected, nil
}

// fetch reads the raw worksheets of a fund.
func fetch(ctx context.Context, fund hfcharts.Fund, cache bool) (*hfcharts.Workbook, error) {
	src, err := sheets.Open(ctx, fund, sheets.Config{Credentials: credentials(), Cache: cache})
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx)
}

// loadAllocation fetches a fund and pivots its positions.
func loadAllocation(ctx context.Context, fund hfcharts.Fund, t *hfcharts.Transformer, cache bool) (*hfcharts.Allocation, error) {
	log.Printf("Fetching data for %s", fund.Ticker)
	wb, err := fetch(ctx, fund, cache)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", fund.Ticker, err)
	}
	c, err := t.Transform(wb)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s positions: %w", fund.Ticker, err)
	}
	log.Printf("%s: %d points", fund.Ticker, c.Len())
	return hfcharts.NewAllocation(c), nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
