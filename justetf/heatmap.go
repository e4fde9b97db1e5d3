package justetf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/etnz/etfsheet"
)

// This file rebuilds the monthly-return grid from the Highcharts setup
// script embedded in the page (or in the Wicket ajax response). The chart
// holds month labels on the x axis, year labels on the y axis, and the
// observations either as [x, y, value] triples or as {x, y, value} objects.

var (
	xCategoriesRegex = regexp.MustCompile(`(?s)xAxis\s*:\s*\{.*?categories\s*:\s*\[([^\]]+)\]`)
	yCategoriesRegex = regexp.MustCompile(`(?s)yAxis\s*:\s*\{.*?categories\s*:\s*\[([^\]]+)\]`)
	xSetRegex        = regexp.MustCompile(`(?s)\.xAxis\[0\]\.setCategories\(\[([^\]]+)\]\)`)
	ySetRegex        = regexp.MustCompile(`(?s)\.yAxis\[0\]\.setCategories\(\[([^\]]+)\]\)`)

	tripleRegex = regexp.MustCompile(`\[\s*(\d+)\s*,\s*(\d+)\s*,\s*(-?\d+(?:\.\d+)?)\s*\]`)
	objectRegex = regexp.MustCompile(`(?i)\{\s*x\s*:\s*(\d+)\s*,\s*y\s*:\s*(\d+)\s*,\s*value\s*:\s*(null|-?\d+(?:\.\d+)?)\s*\}`)

	quotedRegex = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)

	cdataRegex = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
)

// parseHeatmap extracts the return grid from one script text, or nil when
// the script is not the heatmap chart.
func parseHeatmap(script string) *etfsheet.ReturnGrid {
	lowered := strings.ToLower(script)
	if !strings.Contains(lowered, "heatmap") &&
		!strings.Contains(lowered, "coloraxis") &&
		!strings.Contains(lowered, "rendements mensuels") {
		return nil
	}

	months := categories(script, xCategoriesRegex, xSetRegex)
	years := categories(script, yCategoriesRegex, ySetRegex)
	if len(months) == 0 || len(years) == 0 {
		return nil
	}

	seen := make(map[[2]int]bool)
	var points []etfsheet.ReturnPoint
	add := func(xs, ys, vs string) {
		if strings.EqualFold(vs, "null") {
			return
		}
		x, _ := strconv.Atoi(xs)
		y, _ := strconv.Atoi(ys)
		if x >= len(months) || y >= len(years) {
			return
		}
		year, err := strconv.Atoi(strings.TrimSpace(years[y]))
		if err != nil {
			return
		}
		value, err := strconv.ParseFloat(vs, 64)
		if err != nil {
			return
		}
		key := [2]int{year, x + 1}
		if seen[key] {
			return
		}
		seen[key] = true
		points = append(points, etfsheet.ReturnPoint{Year: year, Month: x + 1, Return: etfsheet.Percent(value)})
	}
	for _, m := range tripleRegex.FindAllStringSubmatch(script, -1) {
		add(m[1], m[2], m[3])
	}
	for _, m := range objectRegex.FindAllStringSubmatch(script, -1) {
		add(m[1], m[2], m[3])
	}
	if len(points) == 0 {
		return nil
	}

	grid, err := etfsheet.NewReturnGrid(months, years, points)
	if err != nil {
		return nil
	}
	return grid
}

// categories extracts the axis labels, trying the chart-options form first
// and the setCategories call as a fallback.
func categories(script string, rx ...*regexp.Regexp) []string {
	for _, r := range rx {
		if m := r.FindStringSubmatch(script); m != nil {
			return splitQuoted(m[1])
		}
	}
	return nil
}

// splitQuoted returns the quoted values of a javascript list literal.
func splitQuoted(list string) []string {
	var values []string
	for _, m := range quotedRegex.FindAllStringSubmatch(list, -1) {
		if m[1] != "" {
			values = append(values, m[1])
		} else if m[2] != "" {
			values = append(values, m[2])
		}
	}
	return values
}

// extractCDATA concatenates the CDATA blocks of a Wicket ajax response.
func extractCDATA(xml string) string {
	var b strings.Builder
	for _, m := range cdataRegex.FindAllStringSubmatch(xml, -1) {
		b.WriteString(m[1])
		b.WriteString("\n")
	}
	return b.String()
}
