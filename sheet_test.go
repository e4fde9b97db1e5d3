package etfsheet

import (
	"bytes"
	"testing"
)

func TestColName(t *testing.T) {
	testCases := []struct {
		index int
		want  string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tc := range testCases {
		if got := ColName(tc.index); got != tc.want {
			t.Errorf("ColName(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestRefs(t *testing.T) {
	if got := Ref(8, 1); got != "B9" {
		t.Errorf("Ref(8, 1) = %q, want B9", got)
	}
	if got := Ref(0, 0); got != "A1" {
		t.Errorf("Ref(0, 0) = %q, want A1", got)
	}
	if got := AbsRef(2, 1); got != "$B$3" {
		t.Errorf("AbsRef(2, 1) = %q, want $B$3", got)
	}
	if got := RowAbsRef(10, 1); got != "B$11" {
		t.Errorf("RowAbsRef(10, 1) = %q, want B$11", got)
	}
}

func TestSheet_Grows(t *testing.T) {
	s := NewSheet()
	s.Set(0, 0, "a")
	s.Set(5, 3, "b")
	if s.Rows() != 6 {
		t.Errorf("Rows() = %d, want 6", s.Rows())
	}
	if s.Cols() != 4 {
		t.Errorf("Cols() = %d, want 4", s.Cols())
	}
	if got := s.Get(5, 3); got != "b" {
		t.Errorf("Get(5, 3) = %q, want b", got)
	}
	if got := s.Get(2, 2); got != "" {
		t.Errorf("Get(2, 2) = %q, want empty", got)
	}
	if got := s.Get(100, 100); got != "" {
		t.Errorf("Get out of range = %q, want empty", got)
	}
}

func TestSheet_WriteCSV(t *testing.T) {
	s := NewSheet()
	s.Set(0, 0, "a")
	s.Set(1, 2, "c")
	s.Set(0, 1, "with;semicolon")

	var buf bytes.Buffer
	if err := s.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	// Every row is padded to the sheet width, and the delimiter is quoted
	// away inside cells.
	want := "a;\"with;semicolon\";\n;;c\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		value  float64
		places int32
		want   string
	}{
		{10000, 2, "10000"},
		{0.02, 6, "0,02"},
		{0.1234567891, 10, "0,1234567891"},
		{1.50, 2, "1,5"},
		{-3.456, 2, "-3,46"},
		{0, 2, "0"},
	}
	for _, tc := range testCases {
		if got := FormatNumber(tc.value, tc.places); got != tc.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tc.value, tc.places, got, tc.want)
		}
	}
}
