package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestDaysSince(t *testing.T) {
	testCases := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"same day", New(2024, time.March, 1), New(2024, time.March, 1), 0},
		{"one day", New(2024, time.March, 1), New(2024, time.March, 2), 1},
		{"leap february", New(2024, time.February, 28), New(2024, time.March, 1), 2},
		{"one plain year", New(2023, time.May, 10), New(2024, time.May, 10), 366}, // crosses Feb 29 2024
		{"negative", New(2024, time.March, 2), New(2024, time.March, 1), -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.to.DaysSince(tc.from); got != tc.want {
				t.Errorf("DaysSince() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2019-2-5")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if got := d.String(); got != "2019-02-05" {
		t.Errorf("String() = %q, want %q", got, "2019-02-05")
	}
}
