package etfsheet

import "testing"

func TestNewReturnGrid_RejectsInvalidMonth(t *testing.T) {
	_, err := NewReturnGrid(nil, nil, []ReturnPoint{{Year: 2024, Month: 13, Return: 1}})
	if err == nil {
		t.Fatal("NewReturnGrid() accepted month 13, want error")
	}
	_, err = NewReturnGrid(nil, nil, []ReturnPoint{{Year: 2024, Month: 0, Return: 1}})
	if err == nil {
		t.Fatal("NewReturnGrid() accepted month 0, want error")
	}
}

func TestNewReturnGrid_RejectsDuplicatePoint(t *testing.T) {
	_, err := NewReturnGrid(nil, nil, []ReturnPoint{
		{Year: 2024, Month: 3, Return: 1},
		{Year: 2024, Month: 3, Return: 2},
	})
	if err == nil {
		t.Fatal("NewReturnGrid() accepted a duplicate (2024, 3) point, want error")
	}
}

func TestNewReturnGrid_SortsPoints(t *testing.T) {
	g, err := NewReturnGrid(nil, nil, []ReturnPoint{
		{Year: 2024, Month: 2, Return: 1},
		{Year: 2023, Month: 12, Return: 2},
		{Year: 2024, Month: 1, Return: 3},
	})
	if err != nil {
		t.Fatalf("NewReturnGrid() error = %v", err)
	}
	points := g.Points()
	want := []ReturnPoint{
		{Year: 2023, Month: 12, Return: 2},
		{Year: 2024, Month: 1, Return: 3},
		{Year: 2024, Month: 2, Return: 1},
	}
	if len(points) != len(want) {
		t.Fatalf("Points() len = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("Points()[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}

	first, ok := g.Earliest()
	if !ok || first != want[0] {
		t.Errorf("Earliest() = %+v, %v, want %+v, true", first, ok, want[0])
	}
}

func TestReturnGrid_NilSafety(t *testing.T) {
	var g *ReturnGrid
	if g.Len() != 0 {
		t.Errorf("nil grid Len() = %d, want 0", g.Len())
	}
	if g.Points() != nil {
		t.Errorf("nil grid Points() = %v, want nil", g.Points())
	}
	if _, ok := g.CAGR(); ok {
		t.Error("nil grid CAGR() reported a value, want absent")
	}
	if got := g.YearlyReturns(); got != nil {
		t.Errorf("nil grid YearlyReturns() = %v, want nil", got)
	}
}
