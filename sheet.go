package etfsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Sheet is a growable rectangular grid of cells, serialized as a
// ';' separated CSV for a downstream spreadsheet application.
//
// A cell holds either literal text or formula text starting with "=";
// the sheet itself never evaluates anything. Unset cells are empty strings,
// and the grid grows to accommodate any (row, column) index that is set.
type Sheet struct {
	rows [][]string
	cols int // widest row set so far
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet { return &Sheet{} }

// Set stores a value at the 0-based (row, column) cell, growing the grid.
func (s *Sheet) Set(row, col int, value string) {
	for len(s.rows) <= row {
		s.rows = append(s.rows, nil)
	}
	for len(s.rows[row]) <= col {
		s.rows[row] = append(s.rows[row], "")
	}
	s.rows[row][col] = value
	if col+1 > s.cols {
		s.cols = col + 1
	}
}

// Setf stores a formatted value, convenient for formula cells.
func (s *Sheet) Setf(row, col int, format string, args ...any) {
	s.Set(row, col, fmt.Sprintf(format, args...))
}

// Get returns the value at the 0-based (row, column) cell, "" when unset.
func (s *Sheet) Get(row, col int) string {
	if row < 0 || row >= len(s.rows) || col < 0 || col >= len(s.rows[row]) {
		return ""
	}
	return s.rows[row][col]
}

// Rows returns the number of rows of the sheet.
func (s *Sheet) Rows() int { return len(s.rows) }

// Cols returns the number of columns of the sheet.
func (s *Sheet) Cols() int { return s.cols }

// WriteCSV serializes the sheet with ';' as field delimiter, padding every
// row to the sheet width so the output is rectangular.
func (s *Sheet) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	record := make([]string, s.cols)
	for _, row := range s.rows {
		for c := range record {
			if c < len(row) {
				record[c] = row[c]
			} else {
				record[c] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write sheet row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ColName converts a 1-based column index to its spreadsheet letter name:
// 1 is "A", 26 is "Z", 27 is "AA". The alphabet has no zero digit, hence the
// 1-subtracted remainder at each base-26 division.
func ColName(index int) string {
	var name []byte
	for n := index; n > 0; {
		var rem int
		n, rem = (n-1)/26, (n-1)%26
		name = append([]byte{byte('A' + rem)}, name...)
	}
	return string(name)
}

// Ref returns the relative A1-style address of the 0-based (row, column)
// cell: Ref(8, 1) is "B9".
func Ref(row, col int) string {
	return ColName(col+1) + strconv.Itoa(row+1)
}

// AbsRef returns the fully anchored address: AbsRef(2, 1) is "$B$3".
func AbsRef(row, col int) string {
	return "$" + ColName(col+1) + "$" + strconv.Itoa(row+1)
}

// RowAbsRef returns an address with relative column and anchored row:
// RowAbsRef(10, 1) is "B$11". Growth-series formulas use it so the rate row
// survives a fill-down in the consuming spreadsheet tool.
func RowAbsRef(row, col int) string {
	return ColName(col+1) + "$" + strconv.Itoa(row+1)
}

// FormatNumber renders a literal numeric cell value: rounded to the given
// number of decimal places, trailing zeros stripped, and the decimal
// separator replaced by a comma to match the target locale.
// Non-finite values render as the empty cell.
func FormatNumber(value float64, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	text := decimal.NewFromFloat(value).Round(places).String()
	return strings.Replace(text, ".", ",", 1)
}
