package etfsheet

import (
	"math"
	"testing"
	"time"

	"github.com/etnz/etfsheet/date"
)

func TestReturnGrid_CAGR(t *testing.T) {
	testCases := []struct {
		name       string
		points     []ReturnPoint
		want       Percent
		wantAbsent bool
	}{
		{
			name:       "empty grid has no rate",
			points:     nil,
			wantAbsent: true,
		},
		{
			name:   "twelve flat months give a zero rate",
			points: flatYear(2024, 0),
			want:   0,
		},
		{
			name:   "one percent a month compounds to the annual rate",
			points: flatYear(2024, 1),
			want:   Percent(100 * (math.Pow(1.01, 12) - 1)),
		},
		{
			name: "six observations annualize over six months",
			points: []ReturnPoint{
				{2024, 1, 2}, {2024, 2, 2}, {2024, 3, 2},
				{2024, 4, 2}, {2024, 5, 2}, {2024, 6, 2},
			},
			want: Percent(100 * (math.Pow(1.02, 12) - 1)),
		},
		{
			name:       "a total loss month voids the rate",
			points:     []ReturnPoint{{2024, 1, 5}, {2024, 2, -100}},
			wantAbsent: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := mustGrid(t, tc.points...).CAGR()
			if tc.wantAbsent {
				if ok {
					t.Fatalf("CAGR() = %v, want absent", got)
				}
				return
			}
			if !ok {
				t.Fatal("CAGR() is absent, want a value")
			}
			if !got.Equal(tc.want) {
				t.Errorf("CAGR() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReturnGrid_CAGR_IgnoresGaps(t *testing.T) {
	// The same twelve observations spread over two years must give the same
	// rate as twelve consecutive months: annualization counts observations,
	// not elapsed time.
	var sparse []ReturnPoint
	for m := 1; m <= 6; m++ {
		sparse = append(sparse, ReturnPoint{Year: 2022, Month: m, Return: 1})
		sparse = append(sparse, ReturnPoint{Year: 2024, Month: m, Return: 1})
	}
	got, ok := mustGrid(t, sparse...).CAGR()
	if !ok {
		t.Fatal("CAGR() is absent, want a value")
	}
	want, ok := mustGrid(t, flatYear(2024, 1)...).CAGR()
	if !ok {
		t.Fatal("CAGR() is absent for the dense grid, want a value")
	}
	if !got.Equal(want) {
		t.Errorf("CAGR() = %v for the sparse grid, want %v", got, want)
	}
}

func TestReturnGrid_YearlyReturns(t *testing.T) {
	g := mustGrid(t,
		ReturnPoint{Year: 2023, Month: 11, Return: 10},
		ReturnPoint{Year: 2023, Month: 12, Return: -5},
		ReturnPoint{Year: 2024, Month: 1, Return: 2},
		ReturnPoint{Year: 2022, Month: 12, Return: -1},
	)
	got := g.YearlyReturns()
	want := []YearlyReturn{
		{Year: 2022, Return: -1},
		{Year: 2023, Return: Percent(100 * (1.10*0.95 - 1))},
		{Year: 2024, Return: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("YearlyReturns() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Year != want[i].Year || !got[i].Return.Equal(want[i].Return) {
			t.Errorf("YearlyReturns()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if n := NegativeYears(got); n != 1 {
		t.Errorf("NegativeYears() = %d, want 1", n)
	}
	worst, ok := WorstYear(got)
	if !ok || !worst.Equal(-1) {
		t.Errorf("WorstYear() = %v, %v, want -1, true", worst, ok)
	}
}

func TestWorstYear_Empty(t *testing.T) {
	if _, ok := WorstYear(nil); ok {
		t.Error("WorstYear(nil) reported a value, want absent")
	}
}

func TestEstimateCAGR(t *testing.T) {
	launch := date.New(2023, time.January, 1)
	asof := date.New(2024, time.January, 1)

	got, ok := EstimateCAGR(100, launch, asof)
	if !ok {
		t.Fatal("EstimateCAGR() is absent, want a value")
	}
	// Doubling over one calendar year is close to a 100% annual rate, up to
	// the mean-year approximation.
	if math.Abs(float64(got)-100) > 0.2 {
		t.Errorf("EstimateCAGR(100%% over one year) = %v, want about 100", got)
	}

	if _, ok := EstimateCAGR(50, date.Date{}, asof); ok {
		t.Error("EstimateCAGR() with an unknown launch reported a value, want absent")
	}
	if _, ok := EstimateCAGR(50, asof, asof); ok {
		t.Error("EstimateCAGR() with launch == asof reported a value, want absent")
	}
	if _, ok := EstimateCAGR(-100, launch, asof); ok {
		t.Error("EstimateCAGR() with a -100%% total return reported a value, want absent")
	}
}

func TestCAGRSource_String(t *testing.T) {
	testCases := []struct {
		source CAGRSource
		want   string
	}{
		{CAGRAbsent, "absent"},
		{CAGRFromGrid, "grid"},
		{CAGREstimated, "estimate"},
	}
	for _, tc := range testCases {
		if got := tc.source.String(); got != tc.want {
			t.Errorf("CAGRSource(%d).String() = %q, want %q", tc.source, got, tc.want)
		}
	}
}
