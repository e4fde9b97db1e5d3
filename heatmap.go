package etfsheet

import (
	"cmp"
	"fmt"
	"slices"
)

// ReturnPoint is one observed monthly return of the grid.
type ReturnPoint struct {
	Year   int
	Month  int // calendar month index, 1 to 12
	Return Percent
}

// ReturnGrid is the year x month matrix of monthly percentage returns
// published on an instrument profile page (the "heatmap").
//
// The grid is sparse: a missing month is simply absent, never zero filled.
// The month and year label sequences are kept only for display, all
// computations go through the points. A grid is immutable once constructed.
type ReturnGrid struct {
	months []string
	years  []string
	points []ReturnPoint // sorted by (Year, Month)
}

// NewReturnGrid builds a grid from display labels and observed points.
// It rejects month indexes outside 1..12 and duplicate (year, month) pairs.
func NewReturnGrid(months, years []string, points []ReturnPoint) (*ReturnGrid, error) {
	seen := make(map[[2]int]bool, len(points))
	for _, p := range points {
		if p.Month < 1 || p.Month > 12 {
			return nil, fmt.Errorf("invalid month index %d in year %d: want 1 to 12", p.Month, p.Year)
		}
		key := [2]int{p.Year, p.Month}
		if seen[key] {
			return nil, fmt.Errorf("duplicate return point for %d month %d", p.Year, p.Month)
		}
		seen[key] = true
	}
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b ReturnPoint) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return &ReturnGrid{
		months: slices.Clone(months),
		years:  slices.Clone(years),
		points: sorted,
	}, nil
}

// Len returns the number of monthly observations actually present.
func (g *ReturnGrid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.points)
}

// Points returns the observations in chronological order.
func (g *ReturnGrid) Points() []ReturnPoint {
	if g == nil {
		return nil
	}
	return slices.Clone(g.points)
}

// Months returns the month display labels.
func (g *ReturnGrid) Months() []string { return slices.Clone(g.months) }

// Years returns the year display labels.
func (g *ReturnGrid) Years() []string { return slices.Clone(g.years) }

// Earliest returns the oldest observation of the grid.
func (g *ReturnGrid) Earliest() (ReturnPoint, bool) {
	if g.Len() == 0 {
		return ReturnPoint{}, false
	}
	return g.points[0], true
}
