package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/etfsheet"
	"github.com/etnz/etfsheet/date"
	"github.com/google/subcommands"
)

type exportCmd struct {
	overviewFile   string
	projectionFile string
	tickerMapFile  string

	horizon        int
	initialCapital float64
	inflation      float64
	monthlyDCA     float64
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exports the overview and projection spreadsheets" }
func (*exportCmd) Usage() string {
	return `efs export [-overview <file>] [-projection <file>] [options]

Reads all profile documents from the documents folder, normalizes each one
into a single instrument row, and exports two semicolon-separated CSV files:

  - an overview table, one row per ETF with its key facts and return
    metrics (CAGR, worst year, number of negative years, fund age...),
  - a capital projection sheet whose cells hold spreadsheet formulas, so
    the assumptions stay editable after import into LibreOffice or Excel.

Usage Examples:
# Export with the default assumptions (30 years, 10000 initial, 2% inflation).
$ efs export

# Project 10000 plus 200 a month over 25 years.
$ efs export -years 25 -dca 200
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.overviewFile, "overview", "etf_overview.csv", "Overview CSV file to write.")
	f.StringVar(&c.projectionFile, "projection", "etf_projection.csv", "Projection CSV file to write.")
	f.StringVar(&c.tickerMapFile, "ticker-map", "", "Optional JSON file mapping ISINs to tickers.")

	defaults := etfsheet.DefaultParameters()
	f.IntVar(&c.horizon, "years", defaults.Horizon, "Projection horizon in years.")
	f.Float64Var(&c.initialCapital, "capital", defaults.InitialCapital, "Initial capital.")
	f.Float64Var(&c.inflation, "inflation", defaults.Inflation, "Annual inflation rate (0.02 is 2%).")
	f.Float64Var(&c.monthlyDCA, "dca", defaults.MonthlyDCA, "Monthly recurring contribution.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	params := etfsheet.Parameters{
		Horizon:        c.horizon,
		InitialCapital: c.initialCapital,
		Inflation:      c.inflation,
		MonthlyDCA:     c.monthlyDCA,
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	instruments, err := LoadInstruments(c.tickerMapFile, date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load instruments: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := c.writeOverview(instruments); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing overview: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.writeProjection(instruments, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing projection: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully exported %d instruments to %s and %s.\n", len(instruments), c.overviewFile, c.projectionFile)
	return subcommands.ExitSuccess
}

func (c *exportCmd) writeOverview(instruments []*etfsheet.Instrument) error {
	f, err := os.Create(c.overviewFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return etfsheet.WriteOverview(f, instruments)
}

func (c *exportCmd) writeProjection(instruments []*etfsheet.Instrument, params etfsheet.Parameters) error {
	f, err := os.Create(c.projectionFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return etfsheet.BuildProjection(instruments, params).WriteCSV(f)
}
