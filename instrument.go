package etfsheet

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/etfsheet/date"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ISIN is the ISO 6166 identifier of a fund, case-normalized upper.
type ISIN string

// NewISIN validates and normalizes an ISIN.
func NewISIN(s string) (ISIN, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 12 {
		return "", fmt.Errorf("invalid ISIN %q: must be 12 characters, got %d", s, len(s))
	}
	if !isinRegex.MatchString(s) {
		return "", fmt.Errorf("invalid ISIN %q: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit", s)
	}
	return ISIN(s), nil
}

// Category buckets an instrument by its role in a long-horizon allocation.
type Category string

const (
	Core      Category = "Core"
	Hedge     Category = "Hedge"
	Satellite Category = "Satellite"
)

// categoryKeywords are matched, in order, against the combined name and
// investment-axis text. First match wins, so "core" shadows "hedg".
var categoryKeywords = []struct {
	substring string
	category  Category
}{
	{"core", Core},
	{"hedg", Hedge},
}

// Classify derives the category from a case-insensitive substring match on
// the combined name and axis text, defaulting to Satellite.
func Classify(name, axis string) Category {
	text := strings.ToLower(name + " " + axis)
	for _, k := range categoryKeywords {
		if strings.Contains(text, k.substring) {
			return k.category
		}
	}
	return Satellite
}

// Instrument is the normalized record derived from one scraped Profile.
// It is constructed once by NewInstrument, optionally completed with a
// Ticker, and read-only afterward.
//
// Nullable metrics are pointers: nil means "unmeasurable", which consumers
// must distinguish from a measured zero.
type Instrument struct {
	ISIN     ISIN
	Name     string
	Ticker   string // from the optional ticker map, may be empty
	Index    string // tracked index name
	Axis     string // investment-axis label
	Category Category

	Currency     string
	TER          *Percent
	Replication  string
	Distribution string
	Domicile     string
	Provider     string
	AUM          *float64 // in million currency units

	Launch   date.Date // zero when unknown
	AgeYears *int

	Volatility1Y *Percent

	CAGR          *Percent
	CAGRSource    CAGRSource
	NegativeYears *int // nil when no yearly returns could be derived
	WorstYear     *Percent
}

// NewInstrument merges the raw fund facts and the return analytics of a
// profile into one normalized record, evaluated as of the given date.
//
// It fails only on missing identity (invalid ISIN, empty name): any other
// malformed field degrades to its absent value.
func NewInstrument(p *Profile, asOf date.Date) (*Instrument, error) {
	isin, err := NewISIN(p.ISIN)
	if err != nil {
		return nil, err
	}
	name := cleanSpaces(p.Name)
	if name == "" {
		return nil, fmt.Errorf("profile %s has no name", isin)
	}

	axis := cleanSpaces(p.Facts.Axis)
	inst := &Instrument{
		ISIN:         isin,
		Name:         name,
		Index:        ParseIndexName(p.Description),
		Axis:         axis,
		Category:     Classify(name, axis),
		Currency:     normalizeCurrency(p.Facts.Currency),
		Replication:  cleanSpaces(p.Facts.Replication),
		Distribution: cleanSpaces(p.Facts.Distribution),
		Domicile:     cleanSpaces(p.Facts.Domicile),
		Provider:     cleanSpaces(p.Facts.Provider),
	}

	if ter, ok := ParsePercent(p.Facts.TER); ok {
		inst.TER = &ter
	}
	if vol, ok := ParsePercent(p.Facts.Volatility1Y); ok {
		inst.Volatility1Y = &vol
	}
	if aum, ok := ParseAUM(p.Facts.FundSize); ok {
		inst.AUM = &aum
	}

	inst.Launch = resolveLaunch(p)
	if age, ok := ageYears(inst.Launch, asOf); ok {
		inst.AgeYears = &age
	}

	// A grid-derived CAGR always takes priority over the fallback estimate.
	if cagr, ok := p.Grid.CAGR(); ok {
		inst.CAGR = &cagr
		inst.CAGRSource = CAGRFromGrid
	} else if total, ok := ParsePercent(p.MaxReturnText); ok {
		if cagr, ok := EstimateCAGR(total, estimateLaunch(p), asOf); ok {
			inst.CAGR = &cagr
			inst.CAGRSource = CAGREstimated
		}
	}

	if yearly := p.Grid.YearlyReturns(); len(yearly) > 0 {
		neg := NegativeYears(yearly)
		inst.NegativeYears = &neg
		if worst, ok := WorstYear(yearly); ok {
			inst.WorstYear = &worst
		}
	}

	return inst, nil
}

// resolveLaunch applies the launch-date resolution order: the French
// description sentence first, then the earliest grid observation anchored to
// the first day of its month.
func resolveLaunch(p *Profile) date.Date {
	if launch, ok := ParseLaunchDate(p.Description); ok {
		return launch
	}
	if earliest, ok := p.Grid.Earliest(); ok {
		return date.New(earliest.Year, time.Month(earliest.Month), 1)
	}
	return date.Date{}
}

// estimateLaunch resolves the launch date for the fallback CAGR estimator,
// which carries its own launch-date text next to the total-return figure.
func estimateLaunch(p *Profile) date.Date {
	if launch, ok := ParseFrenchDate(p.LaunchDateText); ok {
		return launch
	}
	return resolveLaunch(p)
}

// ageYears floors the elapsed Gregorian-mean years since launch. It reports
// false when the launch is unknown or in the future.
func ageYears(launch, asOf date.Date) (int, bool) {
	if launch.IsZero() {
		return 0, false
	}
	days := asOf.DaysSince(launch)
	if days < 0 {
		return 0, false
	}
	return int(float64(days) / date.GregorianYear), true
}

// normalizeCurrency validates a scraped currency code against the ISO 4217
// table, keeping the cleaned raw text when the code is unknown.
func normalizeCurrency(s string) string {
	code := strings.ToUpper(cleanSpaces(s))
	if cur := money.GetCurrency(code); cur != nil {
		return cur.Code
	}
	return code
}
