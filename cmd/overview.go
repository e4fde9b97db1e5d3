package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/etfsheet/date"
	"github.com/etnz/etfsheet/renderer"
	"github.com/google/subcommands"
)

type overviewCmd struct {
	tickerMapFile string
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "displays the normalized ETF table in the terminal" }
func (*overviewCmd) Usage() string {
	return `efs overview [-ticker-map <file>]

Reads all profile documents from the documents folder and renders the
normalized instrument table as markdown in the terminal. This is the quick
way to inspect what an export would contain, without writing any file.

Usage Examples:
$ efs overview
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tickerMapFile, "ticker-map", "", "Optional JSON file mapping ISINs to tickers.")
}

func (c *overviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	instruments, err := LoadInstruments(c.tickerMapFile, date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load instruments: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderOverview(renderer.NewOverview(instruments, date.Today())))
	return subcommands.ExitSuccess
}
