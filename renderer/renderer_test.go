package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/etfsheet"
	"github.com/etnz/etfsheet/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func testInstruments() []*etfsheet.Instrument {
	ter := etfsheet.Percent(0.20)
	cagr := etfsheet.Percent(8.5)
	worst := etfsheet.Percent(-12.3)
	aum := 9453.0
	age := 15
	return []*etfsheet.Instrument{
		{
			ISIN:       "IE00B4L5Y983",
			Name:       "World ETF",
			Category:   etfsheet.Core,
			Currency:   "USD",
			TER:        &ter,
			AUM:        &aum,
			AgeYears:   &age,
			CAGR:       &cagr,
			CAGRSource: etfsheet.CAGRFromGrid,
			WorstYear:  &worst,
		},
		{
			ISIN:     "LU1681043599",
			Name:     "Bare ETF",
			Category: etfsheet.Satellite,
		},
	}
}

func TestRenderOverview(t *testing.T) {
	on := date.New(2025, time.June, 15)
	md := RenderOverview(NewOverview(testInstruments(), on))

	// The report must be valid markdown with the dated title as its only
	// level-1 heading.
	if got := headings(t, md); len(got) != 1 || got[0] != "ETF Overview on 2025-06-15" {
		t.Errorf("headings = %v", got)
	}

	for _, want := range []string{
		"2 instrument(s) normalized.",
		"| IE00B4L5Y983 | World ETF | Core | USD | 0.20% | 9453 | 15 | 8.50% | grid | -12.30% |",
		"| LU1681043599 | Bare ETF | Satellite |  | - | - | - | - | absent | - |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report is missing %q:\n%s", want, md)
		}
	}
}

func TestRenderOverview_Empty(t *testing.T) {
	md := RenderOverview(NewOverview(nil, date.New(2025, time.June, 15)))
	if !strings.Contains(md, "No instrument could be normalized.") {
		t.Errorf("empty report is missing the placeholder:\n%s", md)
	}
	if strings.Contains(md, "|") {
		t.Errorf("empty report must not contain a table:\n%s", md)
	}
}

// headings parses the markdown and returns the text of its level-1 headings.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var found []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			var b strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				b.Write(line.Value(source))
			}
			found = append(found, strings.TrimSpace(b.String()))
		}
		return ast.WalkContinue, nil
	})
	return found
}
