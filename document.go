package etfsheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Profile is one raw per-instrument document, as persisted by the justetf
// scraper (one JSON file per ISIN). All fields are display text straight
// from the page; normalization happens in NewInstrument.
type Profile struct {
	ISIN        string
	Name        string
	Description string
	Facts       Facts
	Grid        *ReturnGrid // nil when the page exposed no heatmap

	// Since-inception figures kept for the fallback CAGR estimator.
	MaxReturnText  string
	LaunchDateText string
}

// Facts holds the fund-facts section of a scraped profile.
type Facts struct {
	Axis         string // investment focus
	FundSize     string
	TER          string
	Replication  string
	StrategyRisk string
	Currency     string
	Volatility1Y string
	Distribution string
	Domicile     string
	Provider     string
}

// DecodeProfile reads one scraped profile document.
//
// The document shape is loose (scraped from an unstable source), so the
// nested sections are extracted with jsonpath and individually tolerant:
// a malformed field yields an empty value, only a document that is not a
// JSON object at all is an error.
func DecodeProfile(r io.Reader) (*Profile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read profile document: %w", err)
	}
	// the scraper writes utf-8-sig files.
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	var jobj any
	if err := json.Unmarshal(content, &jobj); err != nil {
		return nil, fmt.Errorf("cannot parse profile document: %w", err)
	}
	if _, ok := jobj.(map[string]any); !ok {
		return nil, fmt.Errorf("profile document is not a JSON object")
	}

	p := &Profile{
		ISIN:        strings.ToUpper(strings.TrimSpace(jstring(jobj, "$.isin"))),
		Name:        jstring(jobj, "$.nom"),
		Description: jstring(jobj, "$.description"),
		Facts: Facts{
			Axis:         jstring(jobj, "$.donnees.axe_investissement"),
			FundSize:     jstring(jobj, "$.donnees.taille_du_fonds"),
			TER:          jstring(jobj, "$.donnees.frais_totaux_sur_encours_ter"),
			Replication:  jstring(jobj, "$.donnees.methode_de_replication"),
			StrategyRisk: jstring(jobj, "$.donnees.risque_de_la_strategie"),
			Currency:     jstring(jobj, "$.donnees.monnaie_du_fonds"),
			Volatility1Y: jstring(jobj, "$.donnees.volatilite_sur_1_an"),
			Distribution: jstring(jobj, "$.donnees.distribution"),
			Domicile:     jstring(jobj, "$.donnees.domicile_du_fonds"),
			Provider:     jstring(jobj, "$.donnees.promoteur"),
		},
		MaxReturnText:  jstring(jobj, "$._meta_returns.max_return_text"),
		LaunchDateText: jstring(jobj, "$._meta_returns.launch_date_text"),
	}
	p.Grid = decodeGrid(jobj)
	return p, nil
}

// jstring extracts a string value at path, or "" when absent or not a string.
func jstring(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	// because jsonpath is never clear about wheter it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	return s
}

// decodeGrid rebuilds the monthly-return grid from the "heatmap_mensuelle"
// section. Rows with a non-numeric year, out-of-range month index or missing
// return are silently skipped; duplicate (year, month) pairs keep the first
// occurrence.
func decodeGrid(jobj any) *ReturnGrid {
	jval, err := jsonpath.Get("$.heatmap_mensuelle", jobj)
	if err != nil {
		return nil
	}
	heatmap, ok := jval.(map[string]any)
	if !ok {
		return nil
	}

	rows, _ := heatmap["values"].([]any)
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[[2]int]bool, len(rows))
	var points []ReturnPoint
	for _, row := range rows {
		cell, ok := row.(map[string]any)
		if !ok {
			continue
		}
		year, ok := jint(cell["year"])
		if !ok {
			continue
		}
		month, ok := jint(cell["month_index"])
		if !ok || month < 1 || month > 12 {
			continue
		}
		ret, ok := cell["return_pct"].(float64)
		if !ok {
			continue
		}
		key := [2]int{year, month}
		if seen[key] {
			continue
		}
		seen[key] = true
		points = append(points, ReturnPoint{Year: year, Month: month, Return: Percent(ret)})
	}
	if len(points) == 0 {
		return nil
	}

	grid, err := NewReturnGrid(jstrings(heatmap["months"]), jstrings(heatmap["years"]), points)
	if err != nil {
		// cannot happen: points are validated and deduplicated above.
		return nil
	}
	return grid
}

// The persisted document shape, with the French keys the scraper historically
// wrote. Decoding stays on jsonpath to remain tolerant of foreign documents;
// these types are only used to write well-formed ones.
type jProfile struct {
	ISIN        string    `json:"isin"`
	Nom         string    `json:"nom"`
	Description string    `json:"description"`
	Donnees     jFacts    `json:"donnees"`
	Heatmap     *jHeatmap `json:"heatmap_mensuelle"`
	Meta        jMeta     `json:"_meta_returns"`
}

type jFacts struct {
	Axis         string `json:"axe_investissement"`
	FundSize     string `json:"taille_du_fonds"`
	TER          string `json:"frais_totaux_sur_encours_ter"`
	Replication  string `json:"methode_de_replication"`
	StrategyRisk string `json:"risque_de_la_strategie"`
	Currency     string `json:"monnaie_du_fonds"`
	Volatility1Y string `json:"volatilite_sur_1_an"`
	Distribution string `json:"distribution"`
	Domicile     string `json:"domicile_du_fonds"`
	Provider     string `json:"promoteur"`
}

type jHeatmap struct {
	Months []string `json:"months"`
	Years  []string `json:"years"`
	Values []jPoint `json:"values"`
}

type jPoint struct {
	Year       string  `json:"year"`
	Month      string  `json:"month"`
	MonthIndex int     `json:"month_index"`
	ReturnPct  float64 `json:"return_pct"`
}

type jMeta struct {
	MaxReturnText  string `json:"max_return_text"`
	LaunchDateText string `json:"launch_date_text"`
}

// EncodeProfile writes a profile document in the persisted JSON format that
// DecodeProfile reads back.
func EncodeProfile(w io.Writer, p *Profile) error {
	jp := jProfile{
		ISIN:        p.ISIN,
		Nom:         p.Name,
		Description: p.Description,
		Donnees: jFacts{
			Axis:         p.Facts.Axis,
			FundSize:     p.Facts.FundSize,
			TER:          p.Facts.TER,
			Replication:  p.Facts.Replication,
			StrategyRisk: p.Facts.StrategyRisk,
			Currency:     p.Facts.Currency,
			Volatility1Y: p.Facts.Volatility1Y,
			Distribution: p.Facts.Distribution,
			Domicile:     p.Facts.Domicile,
			Provider:     p.Facts.Provider,
		},
		Meta: jMeta{MaxReturnText: p.MaxReturnText, LaunchDateText: p.LaunchDateText},
	}
	if p.Grid.Len() > 0 {
		months := p.Grid.Months()
		h := &jHeatmap{Months: months, Years: p.Grid.Years()}
		for _, point := range p.Grid.Points() {
			label := ""
			if point.Month-1 < len(months) {
				label = months[point.Month-1]
			}
			h.Values = append(h.Values, jPoint{
				Year:       strconv.Itoa(point.Year),
				Month:      label,
				MonthIndex: point.Month,
				ReturnPct:  float64(point.Return),
			})
		}
		jp.Heatmap = h
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jp); err != nil {
		return fmt.Errorf("cannot encode profile %s: %w", p.ISIN, err)
	}
	return nil
}

// jint converts a scraped value to an int: years in particular come out of
// the chart script as strings.
func jint(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func jstrings(v any) []string {
	jlist, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(jlist))
	for _, item := range jlist {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
