package etfsheet

import (
	"fmt"
	"strconv"
)

// Parameters configures a projection run.
type Parameters struct {
	Horizon        int     // projection horizon in years
	InitialCapital float64 // capital at year 0
	Inflation      float64 // annual inflation rate, 0.02 is 2%
	MonthlyDCA     float64 // recurring monthly contribution
}

// DefaultParameters returns the historical defaults of the export: 30 years,
// 10000 of initial capital, 2% inflation and no recurring contribution.
func DefaultParameters() Parameters {
	return Parameters{Horizon: 30, InitialCapital: 10000, Inflation: 0.02}
}

// Validate checks the run parameters.
func (p Parameters) Validate() error {
	if p.Horizon < 1 {
		return fmt.Errorf("horizon must be a positive number of years, got %d", p.Horizon)
	}
	if p.InitialCapital < 0 {
		return fmt.Errorf("initial capital cannot be negative, got %g", p.InitialCapital)
	}
	if p.MonthlyDCA < 0 {
		return fmt.Errorf("monthly contribution cannot be negative, got %g", p.MonthlyDCA)
	}
	return nil
}

// BuildProjection lays out the instruments and run parameters into a
// formula-bearing sheet with four blocks stacked vertically:
//
//  1. a fixed key/value parameter block,
//  2. a rate block, one column per instrument, ending with the net real
//     annual rate (1+cagr)*(1-ter)/(1+inflation)-1,
//  3. two growth series of Horizon+1 rows each, fee-adjusted then fee-free,
//     where every cell is a formula referencing the previous year's row,
//  4. a shortfall summary, one row per instrument.
//
// Block starting rows are computed from the size of the block above, so the
// layout adapts to any instrument count and horizon. Instruments keep their
// input order, left to right. An instrument with an absent CAGR or TER
// contributes a zero rate rather than an empty formula.
//
// An empty instrument list is a valid degenerate input: the sheet then
// holds a single explanatory placeholder row.
func BuildProjection(instruments []*Instrument, params Parameters) *Sheet {
	s := NewSheet()
	if len(instruments) == 0 {
		s.Set(0, 0, "Aucun ETF exploitable")
		return s
	}

	// Parameter block: fixed two-column key/value pairs.
	s.Set(0, 0, "Parametre")
	s.Set(0, 1, "Valeur")
	s.Set(1, 0, "Capital initial")
	s.Set(1, 1, FormatNumber(params.InitialCapital, 2))
	s.Set(2, 0, "Inflation annuelle")
	s.Set(2, 1, FormatNumber(params.Inflation, 6))
	s.Set(3, 0, "DCA mensuel")
	s.Set(3, 1, FormatNumber(params.MonthlyDCA, 2))
	s.Set(4, 0, "Horizon (annees)")
	s.Set(4, 1, strconv.Itoa(params.Horizon))

	capitalCell := AbsRef(1, 1)
	inflationCell := AbsRef(2, 1)
	dcaCell := AbsRef(3, 1)

	// Rate block: one column per instrument, one blank row after the
	// parameter block.
	rateTop := 6
	cagrRow, terRow, netRow := rateTop+2, rateTop+3, rateTop+4
	s.Set(rateTop, 0, "ETF")
	s.Set(rateTop+1, 0, "ISIN")
	s.Set(cagrRow, 0, "CAGR brut annuel")
	s.Set(terRow, 0, "TER annuel")
	s.Set(netRow, 0, "Rendement net reel annuel")
	for i, inst := range instruments {
		col := i + 1
		var cagr, ter Percent
		if inst.CAGR != nil {
			cagr = *inst.CAGR
		}
		if inst.TER != nil {
			ter = *inst.TER
		}
		s.Set(rateTop, col, inst.Name)
		s.Set(rateTop+1, col, string(inst.ISIN))
		s.Setf(cagrRow, col, "=%s", FormatNumber(cagr.Fraction(), 10))
		s.Setf(terRow, col, "=%s", FormatNumber(ter.Fraction(), 10))
		s.Setf(netRow, col, "=(1+%s)*(1-%s)/(1+%s)-1", Ref(cagrRow, col), Ref(terRow, col), inflationCell)
	}

	// growthBlock emits one (Horizon+1)-row compounding series per
	// instrument column: year 0 references the initial capital, later years
	// apply previous*(1+rate)+12*dca, with the rate row anchored so the
	// formulas survive a fill-down. It returns the row of the final year.
	growthBlock := func(top int, header string, rateRow int) (finalRow int) {
		s.Set(top, 0, header)
		for i, inst := range instruments {
			s.Set(top, i+1, string(inst.ISIN))
		}
		for y := 0; y <= params.Horizon; y++ {
			r := top + 1 + y
			s.Set(r, 0, strconv.Itoa(y))
			for i := range instruments {
				col := i + 1
				if y == 0 {
					s.Setf(r, col, "=%s", capitalCell)
				} else {
					s.Setf(r, col, "=%s*(1+%s)+%s*12", Ref(r-1, col), RowAbsRef(rateRow, col), dcaCell)
				}
			}
		}
		return top + 1 + params.Horizon
	}

	netFinal := growthBlock(netRow+2, "Annee", netRow)
	grossFinal := growthBlock(netFinal+3, "Annee (sans frais)", cagrRow)

	// Summary block: final capitals and the fee shortfall, absolute and as
	// a fraction of the fee-free figure.
	top := grossFinal + 3
	s.Set(top, 0, "ISIN")
	s.Set(top, 1, "Nom ETF")
	s.Set(top, 2, "Capital final net reel")
	s.Set(top, 3, "Capital final sans frais")
	s.Set(top, 4, "Manque a gagner")
	s.Set(top, 5, "Manque a gagner %")
	for i, inst := range instruments {
		r := top + 1 + i
		col := i + 1 // the instrument's column in the growth blocks
		s.Set(r, 0, string(inst.ISIN))
		s.Set(r, 1, inst.Name)
		s.Setf(r, 2, "=%s", Ref(netFinal, col))
		s.Setf(r, 3, "=%s", Ref(grossFinal, col))
		s.Setf(r, 4, "=%s-%s", Ref(r, 3), Ref(r, 2))
		s.Setf(r, 5, "=%s/%s", Ref(r, 4), Ref(r, 3))
	}

	return s
}
