package etfsheet

import (
	"math"

	"github.com/etnz/etfsheet/date"
)

// CAGRSource tags the provenance of an instrument's CAGR metric, so that a
// consumer can tell a measured rate from an estimated one.
type CAGRSource int

const (
	// CAGRAbsent means no rate could be derived at all.
	CAGRAbsent CAGRSource = iota
	// CAGRFromGrid means the rate was compounded from the monthly-return grid.
	CAGRFromGrid
	// CAGREstimated means the rate was estimated from a since-inception
	// total return and the launch date.
	CAGREstimated
)

func (s CAGRSource) String() string {
	switch s {
	case CAGRFromGrid:
		return "grid"
	case CAGREstimated:
		return "estimate"
	default:
		return "absent"
	}
}

// CAGR compounds all monthly observations, in chronological order, into a
// Compound Annual Growth Rate.
//
// Annualization uses the number of observations actually present as the
// month count, not the wall-clock time since launch, so gaps in the grid do
// not distort the rate. It reports false when the grid is empty or when the
// compounded growth factor is not positive (total loss or invalid data).
func (g *ReturnGrid) CAGR() (Percent, bool) {
	if g.Len() == 0 {
		return 0, false
	}
	compounded := 1.0
	for _, p := range g.points {
		compounded *= 1 + p.Return.Fraction()
	}
	if compounded <= 0 {
		return 0, false
	}
	cagr := math.Pow(compounded, 12/float64(len(g.points))) - 1
	return Percent(100 * cagr), true
}

// YearlyReturn is the compounded return of one calendar year.
type YearlyReturn struct {
	Year   int
	Return Percent
}

// YearlyReturns compounds the observations of each calendar year into one
// annual return, in ascending year order.
//
// A year with partial month coverage (typically the launch year) is
// compounded over only the months present, without any flag: this matches
// the historical exporter behavior and is kept deliberately.
func (g *ReturnGrid) YearlyReturns() []YearlyReturn {
	if g.Len() == 0 {
		return nil
	}
	var years []YearlyReturn
	// points are already sorted by (year, month).
	i := 0
	for i < len(g.points) {
		year := g.points[i].Year
		compounded := 1.0
		for i < len(g.points) && g.points[i].Year == year {
			compounded *= 1 + g.points[i].Return.Fraction()
			i++
		}
		years = append(years, YearlyReturn{Year: year, Return: Percent(100 * (compounded - 1))})
	}
	return years
}

// NegativeYears counts the calendar years that ended with a loss.
func NegativeYears(years []YearlyReturn) int {
	count := 0
	for _, y := range years {
		if y.Return < 0 {
			count++
		}
	}
	return count
}

// WorstYear returns the lowest annual return, or false for an empty list.
func WorstYear(years []YearlyReturn) (Percent, bool) {
	if len(years) == 0 {
		return 0, false
	}
	worst := years[0].Return
	for _, y := range years[1:] {
		if y.Return < worst {
			worst = y.Return
		}
	}
	return worst, true
}

// EstimateCAGR derives an annual growth rate from a since-inception total
// return, used only when no monthly-return grid exists. A grid-derived CAGR
// always takes priority over this estimate.
//
// The elapsed time is days/365.2425 (Gregorian mean year, an approximation).
// It reports false when the launch date is unknown or not strictly before
// asOf, or when the total growth factor is not positive.
func EstimateCAGR(totalReturn Percent, launch, asOf date.Date) (Percent, bool) {
	if launch.IsZero() {
		return 0, false
	}
	days := asOf.DaysSince(launch)
	if days <= 0 {
		return 0, false
	}
	growth := 1 + totalReturn.Fraction()
	if growth <= 0 {
		return 0, false
	}
	years := float64(days) / date.GregorianYear
	return Percent(100 * (math.Pow(growth, 1/years) - 1)), true
}
