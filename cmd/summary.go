package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/hfcharts"
	"github.com/etnz/hfcharts/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	skipMalformed bool
	cache         bool
	currency      string
	top           int
	raw           bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the latest allocation of funds" }
func (*summaryCmd) Usage() string {
	return `hfcharts summary [-top <n>] [<ticker>...]

  Displays, for every fund (or only the given tickers), the long, short and net
  market values of the latest date and its largest positions.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipMalformed, "skip-malformed", false, "Skip rows that cannot be read instead of failing")
	f.BoolVar(&c.cache, "cache", false, "Cache the Google Sheets API responses on disk for the day")
	f.StringVar(&c.currency, "currency", "USD", "Currency of the market values")
	f.IntVar(&c.top, "top", 10, "Number of positions listed")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds, err := decodeFunds(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	t := &hfcharts.Transformer{SkipMalformed: c.skipMalformed}
	var b strings.Builder
	for _, fund := range funds {
		a, err := loadAllocation(ctx, fund, t, c.cache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		b.WriteString(renderer.SummaryMarkdown(renderer.NewSummary(fund.Ticker, c.currency, a, c.top)))
		b.WriteString("\n")
	}

	if c.raw {
		fmt.Print(b.String())
		return subcommands.ExitSuccess
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
