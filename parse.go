package etfsheet

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/etnz/etfsheet/date"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// This file contains the locale-tolerant text parsers for scraped fund facts.
// The source pages are French: decimal commas, non-breaking spaces, unit
// suffixes like "Mrd", and free-text dates like "lancé le 25 septembre 2009".

// frenchMonths maps a lowercased, deaccented French month token (full names
// and the abbreviations seen on the source pages) to its index.
var frenchMonths = map[string]time.Month{
	"jan": time.January, "janv": time.January, "janvier": time.January,
	"fev": time.February, "fevr": time.February, "fevrier": time.February, "feb": time.February,
	"mar": time.March, "mars": time.March,
	"avr": time.April, "avril": time.April,
	"mai": time.May,
	"jun": time.June, "juin": time.June,
	"jul": time.July, "juil": time.July, "juillet": time.July,
	"aou": time.August, "aout": time.August, "aug": time.August,
	"sep": time.September, "sept": time.September, "septembre": time.September,
	"oct": time.October, "octobre": time.October,
	"nov": time.November, "novembre": time.November,
	"dec": time.December, "decembre": time.December,
}

var spacesRegex = regexp.MustCompile(`\s+`)

// cleanSpaces replaces non-breaking spaces and collapses whitespace runs.
func cleanSpaces(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(spacesRegex.ReplaceAllString(s, " "))
}

// deaccenter strips combining marks: "lancée" becomes "lancee".
var deaccenter = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func deaccent(s string) string {
	out, _, err := transform.String(deaccenter, s)
	if err != nil {
		return s
	}
	return out
}

var numberRegex = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// ParsePercent extracts a percentage from display text like "0,20% p.a." or
// "+12,5 %". It reports false when no number is present.
func ParsePercent(s string) (Percent, bool) {
	if s == "" {
		return 0, false
	}
	text := cleanSpaces(s)
	text = strings.ReplaceAll(text, "%", "")
	text = strings.ReplaceAll(text, "p.a.", "")
	text = strings.ReplaceAll(text, "+", "")
	m := numberRegex.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return Percent(v), true
}

var aumRegex = regexp.MustCompile(`(\d[\d\s.,]*)\s*([A-Za-z]+)?`)

// ParseAUM extracts an assets-under-management figure, normalized to million
// currency units. "Mrd"/"bn"/"b"/"md" scale by 1000, "k"/"mille" by 1/1000,
// anything else (like "M" or "Mio") is treated as already in millions.
func ParseAUM(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	m := aumRegex.FindStringSubmatch(cleanSpaces(s))
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(m[1], " ", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	number, err := strconv.ParseFloat(strings.TrimRight(raw, "."), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "mrd", "bn", "b", "md":
		return number * 1000, true
	case "k", "mille":
		return number / 1000, true
	default:
		return number, true
	}
}

var frenchDateRegex = regexp.MustCompile(`(?i)(\d{1,2})\s+([A-Za-z\x{00C0}-\x{017F}]+)\.?\s+(\d{4})`)

// ParseFrenchDate extracts the first "D month YYYY" French date found in the
// text. Diacritics are stripped before the month-name lookup, and the month
// may be abbreviated ("12 sept. 2019").
func ParseFrenchDate(s string) (date.Date, bool) {
	if s == "" {
		return date.Date{}, false
	}
	m := frenchDateRegex.FindStringSubmatch(cleanSpaces(s))
	if m == nil {
		return date.Date{}, false
	}
	day, _ := strconv.Atoi(m[1])
	token := deaccent(strings.ToLower(m[2]))
	month, ok := frenchMonths[token]
	if !ok {
		return date.Date{}, false
	}
	year, _ := strconv.Atoi(m[3])
	d := date.New(year, month, day)
	// date.New normalizes out-of-range days, a "31 février" must be rejected.
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return date.Date{}, false
	}
	return d, true
}

var launchRegex = regexp.MustCompile(`(?i)lanc[ée]e?\s+le\s+(\d{1,2}\s+[A-Za-z\x{00C0}-\x{017F}]+\.?\s+\d{4})`)

// ParseLaunchDate extracts a launch date from a French free-text description
// sentence of the form "lancé(e) le 25 septembre 2009".
func ParseLaunchDate(description string) (date.Date, bool) {
	if description == "" {
		return date.Date{}, false
	}
	m := launchRegex.FindStringSubmatch(cleanSpaces(description))
	if m == nil {
		return date.Date{}, false
	}
	return ParseFrenchDate(m[1])
}

var indexRegex = regexp.MustCompile(`(?i)reproduit l['’]index\s+([^.]+)\.`)

// ParseIndexName extracts the tracked index name from the description
// sentence "… reproduit l'index <name>."
func ParseIndexName(description string) string {
	if description == "" {
		return ""
	}
	m := indexRegex.FindStringSubmatch(cleanSpaces(description))
	if m == nil {
		return ""
	}
	return cleanSpaces(m[1])
}
