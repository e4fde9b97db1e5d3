package renderer

import (
	"strconv"

	"github.com/etnz/etfsheet"
	"github.com/etnz/etfsheet/date"
)

// Overview is the view model of the instrument overview report.
type Overview struct {
	Date  string
	Count int
	Rows  []OverviewRow
}

// OverviewRow is one instrument of the overview report, preformatted for
// display.
type OverviewRow struct {
	ISIN      string
	Name      string
	Category  string
	Currency  string
	TER       string
	AUM       string
	Age       string
	CAGR      string
	Source    string
	WorstYear string
}

// NewOverview builds the overview view model from normalized instruments.
func NewOverview(instruments []*etfsheet.Instrument, on date.Date) *Overview {
	o := &Overview{Date: on.String(), Count: len(instruments)}
	for _, inst := range instruments {
		row := OverviewRow{
			ISIN:      string(inst.ISIN),
			Name:      inst.Name,
			Category:  string(inst.Category),
			Currency:  inst.Currency,
			TER:       percentCell(inst.TER),
			CAGR:      percentCell(inst.CAGR),
			Source:    inst.CAGRSource.String(),
			WorstYear: percentCell(inst.WorstYear),
		}
		if inst.AUM != nil {
			row.AUM = etfsheet.FormatNumber(*inst.AUM, 1)
		} else {
			row.AUM = "-"
		}
		if inst.AgeYears != nil {
			row.Age = strconv.Itoa(*inst.AgeYears)
		} else {
			row.Age = "-"
		}
		o.Rows = append(o.Rows, row)
	}
	return o
}

func percentCell(p *etfsheet.Percent) string {
	if p == nil {
		return "-"
	}
	return p.String()
}
