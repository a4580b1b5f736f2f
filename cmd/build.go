package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/hfcharts"
	"github.com/etnz/hfcharts/agent"
	"github.com/etnz/hfcharts/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type buildCmd struct {
	output        string
	skipMalformed bool
	cache         bool
	currency      string
	top           int
	commentary    bool
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "builds the static website charting every fund" }
func (*buildCmd) Usage() string {
	return `hfcharts build [-o <file>] [-commentary] [<ticker>...]

Fetches the positions of every fund (or only the given tickers), and writes a
single static HTML page with, for each fund, the market value of its
positions stacked per date, a static snapshot and a summary of the latest
date.

The page is overwritten on every run. Any error aborts the build and leaves
the previous page untouched.

With -commentary, Gemini writes a short paragraph on each fund. The API key
is read from the GEMINI_API_KEY environment variable.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "website/index.html", "Path of the generated page")
	f.BoolVar(&c.skipMalformed, "skip-malformed", false, "Skip rows that cannot be read instead of failing")
	f.BoolVar(&c.cache, "cache", false, "Cache the Google Sheets API responses on disk for the day")
	f.StringVar(&c.currency, "currency", "USD", "Currency of the market values")
	f.IntVar(&c.top, "top", 10, "Number of positions listed in the summaries")
	f.BoolVar(&c.commentary, "commentary", false, "Add a Gemini commentary to the summaries")
}

func (c *buildCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds, err := decodeFunds(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	t := &hfcharts.Transformer{SkipMalformed: c.skipMalformed}
	allocations := make([]*hfcharts.Allocation, len(funds))
	summaries := make([]*renderer.Summary, len(funds))
	for i, fund := range funds {
		a, err := loadAllocation(ctx, fund, t, c.cache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		allocations[i] = a
		summaries[i] = renderer.NewSummary(fund.Ticker, c.currency, a, c.top)
	}

	if c.commentary {
		if err := comment(ctx, summaries); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	page := renderer.NewPage()
	for i, fund := range funds {
		chart, err := renderer.NewChart(fund.Ticker, allocations[i], summaries[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		page.Append(chart)
	}
	if err := renderer.WritePage(c.output, page); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("Successfully saved static chart to %s", c.output)
	return subcommands.ExitSuccess
}

// comment adds a Gemini commentary to the non empty summaries.
func comment(ctx context.Context, summaries []*renderer.Summary) error {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot initialize Gemini's client: %w", err)
	}
	return commentWith(ctx, client, summaries)
}

func commentWith(ctx context.Context, client *genai.Client, summaries []*renderer.Summary) error {
	known := make(agent.Summaries)
	for _, s := range summaries {
		known[strings.ToLower(s.Ticker)] = renderer.SummaryMarkdown(s)
	}
	analyst := agent.NewAnalyst(known)
	if err := analyst.Start(ctx, client); err != nil {
		return fmt.Errorf("%w: cannot start the analyst: %w", hfcharts.ErrNetwork, err)
	}
	for _, s := range summaries {
		if s.IsEmpty() {
			continue
		}
		text, err := analyst.Comment(ctx, s.Ticker, known[strings.ToLower(s.Ticker)])
		if err != nil {
			return err
		}
		s.Commentary = text
	}
	return nil
}
