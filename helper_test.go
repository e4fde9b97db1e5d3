package etfsheet

import "testing"

// mustGrid is a helper for tests to build a grid from points only.
func mustGrid(t *testing.T, points ...ReturnPoint) *ReturnGrid {
	t.Helper()
	g, err := NewReturnGrid(nil, nil, points)
	if err != nil {
		t.Fatalf("NewReturnGrid() error = %v", err)
	}
	return g
}

// flatYear is a helper for tests to produce 12 monthly points of the same return.
func flatYear(year int, monthly Percent) []ReturnPoint {
	points := make([]ReturnPoint, 12)
	for m := 1; m <= 12; m++ {
		points[m-1] = ReturnPoint{Year: year, Month: m, Return: monthly}
	}
	return points
}
