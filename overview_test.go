package etfsheet

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/etnz/etfsheet/date"
)

func TestWriteOverview(t *testing.T) {
	full, err := NewInstrument(sampleProfile(t), date.New(2025, time.June, 15))
	if err != nil {
		t.Fatalf("NewInstrument() error = %v", err)
	}
	full.Ticker = "IWDA"
	bare, err := NewInstrument(&Profile{ISIN: "LU1681043599", Name: "Bare ETF"}, date.Today())
	if err != nil {
		t.Fatalf("NewInstrument() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteOverview(&buf, []*Instrument{full, bare}); err != nil {
		t.Fatalf("WriteOverview() error = %v", err)
	}

	cr := csv.NewReader(&buf)
	cr.Comma = ';'
	records, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("reading the overview back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want a header and two rows", len(records))
	}

	header := records[0]
	if len(header) != 19 {
		t.Fatalf("header has %d columns, want 19", len(header))
	}
	if header[0] != "ISIN" || header[1] != "Nom ETF" || header[18] != "Pire annee (%)" {
		t.Errorf("unexpected header: %v", header)
	}

	col := func(name string) int {
		t.Helper()
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("no column %q in %v", name, header)
		return -1
	}

	row := records[1]
	if row[col("ISIN")] != "IE00B4L5Y983" {
		t.Errorf("ISIN cell = %q", row[col("ISIN")])
	}
	if row[col("Ticker")] != "IWDA" {
		t.Errorf("Ticker cell = %q", row[col("Ticker")])
	}
	if row[col("Categorie")] != "Core" {
		t.Errorf("Categorie cell = %q", row[col("Categorie")])
	}
	if row[col("TER (%)")] != "0,2" {
		t.Errorf("TER cell = %q, want 0,2", row[col("TER (%)")])
	}
	if row[col("AUM (MEUR)")] != "9453" {
		t.Errorf("AUM cell = %q, want 9453", row[col("AUM (MEUR)")])
	}
	if row[col("Date lancement")] != "25/09/2009" {
		t.Errorf("Date lancement cell = %q, want 25/09/2009", row[col("Date lancement")])
	}
	if row[col("Age du fonds")] != "15" {
		t.Errorf("Age du fonds cell = %q, want 15", row[col("Age du fonds")])
	}
	if row[col("Nb annees negatives")] != "0" {
		t.Errorf("Nb annees negatives cell = %q, want 0", row[col("Nb annees negatives")])
	}
	if row[col("Pire annee (%)")] != "2" {
		t.Errorf("Pire annee cell = %q, want 2", row[col("Pire annee (%)")])
	}

	// Absent metrics are empty cells, never zeros.
	row = records[2]
	for _, name := range []string{
		"TER (%)", "AUM (MEUR)", "Date lancement", "Age du fonds",
		"Volatilite 1 an (%)", "CAGR (%)", "Nb annees negatives", "Pire annee (%)",
	} {
		if got := row[col(name)]; got != "" {
			t.Errorf("column %q = %q for a bare instrument, want empty", name, got)
		}
	}
}
