package etfsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// overviewHeaders lists the flat-table columns, in the historical export
// order and wording.
var overviewHeaders = []string{
	"ISIN",
	"Nom ETF",
	"Ticker",
	"Indice suivi",
	"Axe investissement",
	"Categorie",
	"Devise fonds",
	"TER (%)",
	"Replication",
	"Distribution",
	"Domicile",
	"Promoteur",
	"AUM (MEUR)",
	"Date lancement",
	"Age du fonds",
	"Volatilite 1 an (%)",
	"CAGR (%)",
	"Nb annees negatives",
	"Pire annee (%)",
}

// WriteOverview emits one row per instrument with all normalized fields,
// ';' delimited and locale formatted. Absent metrics are empty cells.
func WriteOverview(w io.Writer, instruments []*Instrument) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(overviewHeaders); err != nil {
		return fmt.Errorf("cannot write overview header: %w", err)
	}
	for _, inst := range instruments {
		if err := cw.Write(overviewRecord(inst)); err != nil {
			return fmt.Errorf("cannot write overview row for %s: %w", inst.ISIN, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func overviewRecord(inst *Instrument) []string {
	percent := func(p *Percent, places int32) string {
		if p == nil {
			return ""
		}
		return FormatNumber(float64(*p), places)
	}

	launch, age := "", ""
	if !inst.Launch.IsZero() {
		launch = inst.Launch.Format("02/01/2006")
	}
	if inst.AgeYears != nil {
		age = strconv.Itoa(*inst.AgeYears)
	}
	aum, negative := "", ""
	if inst.AUM != nil {
		aum = FormatNumber(*inst.AUM, 3)
	}
	if inst.NegativeYears != nil {
		negative = strconv.Itoa(*inst.NegativeYears)
	}

	return []string{
		string(inst.ISIN),
		inst.Name,
		inst.Ticker,
		inst.Index,
		inst.Axis,
		string(inst.Category),
		inst.Currency,
		percent(inst.TER, 4),
		inst.Replication,
		inst.Distribution,
		inst.Domicile,
		inst.Provider,
		aum,
		launch,
		age,
		percent(inst.Volatility1Y, 4),
		percent(inst.CAGR, 6),
		negative,
		percent(inst.WorstYear, 4),
	}
}
