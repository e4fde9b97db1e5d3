// Package cmd implements the CLI application to fetch and export ETF profiles.
package cmd

import (
	"flag"
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/etfsheet"
	"github.com/etnz/etfsheet/date"
	"github.com/etnz/etfsheet/justetf"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "ingestion")

	c.Register(&exportCmd{}, "reports")
	c.Register(&overviewCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var documentsDir = flag.String("documents-dir", "output", "Path to the folder containing one profile document (JSON) per ISIN")

// LoadInstruments decodes all profile documents from the app documents folder
// and normalizes each one into an Instrument, merging tickers from the
// optional mapping file.
//
// Unreadable documents and documents that cannot be normalized are skipped
// with a warning, so one bad file never blocks a whole export.
func LoadInstruments(tickerMapFile string, asof date.Date) ([]*etfsheet.Instrument, error) {
	profiles, err := justetf.LoadDocuments(*documentsDir)
	if err != nil {
		log.Printf("warning, some documents were skipped: %v", err)
	}

	var tickers map[etfsheet.ISIN]string
	if tickerMapFile != "" {
		tickers, err = justetf.LoadTickerMap(tickerMapFile)
		if err != nil {
			return nil, fmt.Errorf("cannot load ticker map: %w", err)
		}
	}

	var instruments []*etfsheet.Instrument
	for _, p := range profiles {
		instrument, err := etfsheet.NewInstrument(p, asof)
		if err != nil {
			log.Printf("warning, skipping document %q: %v", p.ISIN, err)
			continue
		}
		instrument.Ticker = tickers[instrument.ISIN]
		instruments = append(instruments, instrument)
	}
	return instruments, nil
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
