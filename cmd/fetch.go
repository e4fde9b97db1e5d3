package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/etfsheet/justetf"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	isinsFile string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches ETF profiles from justETF" }
func (*fetchCmd) Usage() string {
	return `efs fetch [-isins <file>] [<isin>...]

Fetches the profile page of each ETF from justETF, extracts its key facts and
monthly return heatmap, and saves one profile document (JSON) per ISIN into
the documents folder.

ISINs are taken from the command line, or from a JSON list of strings with
the -isins flag. Fetch failures are collected into errors.json in the
documents folder instead of aborting the run.

Responses are cached on disk for a day, so re-running the command is cheap.

Usage Examples:
# Fetch two ETFs by ISIN.
$ efs fetch IE00B4L5Y983 LU1681043599

# Fetch every ISIN listed in a file.
$ efs fetch -isins isins.json
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isinsFile, "isins", "", "JSON file containing the list of ISINs to fetch.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	isins := f.Args()
	if c.isinsFile != "" {
		fromFile, err := justetf.LoadISINs(c.isinsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not load ISIN list: %v\n", err)
			return subcommands.ExitFailure
		}
		isins = append(isins, fromFile...)
	}
	if len(isins) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ISIN must be specified.")
		f.Usage()
		return subcommands.ExitUsageError
	}

	if err := os.MkdirAll(*documentsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not create documents folder: %v\n", err)
		return subcommands.ExitFailure
	}

	client := justetf.NewClient()
	failures := make(map[string]string)
	var saved int
	for _, isin := range isins {
		fmt.Printf("Fetching %s...\n", isin)
		profile, err := client.FetchProfile(isin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Error fetching %s: %v\n", isin, err)
			failures[isin] = err.Error()
			continue
		}
		if err := justetf.SaveDocument(*documentsDir, profile); err != nil {
			fmt.Fprintf(os.Stderr, "  Error saving %s: %v\n", isin, err)
			failures[isin] = err.Error()
			continue
		}
		saved++
	}

	if err := justetf.SaveErrors(*documentsDir, failures); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error report: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully saved %d profile documents to %s (%d failures).\n", saved, *documentsDir, len(failures))
	if len(failures) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
