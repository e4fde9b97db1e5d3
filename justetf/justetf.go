// Package justetf retrieves ETF profile documents from the justETF website.
//
// It is the ingestion front end of the etfsheet tool: it fetches a profile
// page per ISIN, extracts the displayed fund facts and the monthly-return
// heatmap, and persists one JSON document per instrument for the exporter
// to consume. The source format is unstable, so extraction is best effort:
// a missing panel yields empty fields, never an error.
package justetf

import (
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/etfsheet"
)

const profileURL = "https://www.justetf.com/fr/etf-profile.html?isin="

// testIDs maps each profile field to the data-testid attribute of the page
// element that displays it.
var testIDs = map[string]string{
	"name":               "etf-profile-header_etf-name",
	"description":        "etf-quote-section_description-content-inner",
	"investment_focus":   "tl_etf-basics_value_investment-focus",
	"fund_size_row":      "etf-basics_row_fund-size",
	"ter":                "tl_etf-basics_value_ter",
	"replication":        "tl_etf-basics_value_replication",
	"replication_method": "tl_etf-basics_value_replication-method",
	"strategy_risk":      "tl_etf-basics_value_strategy-risk",
	"fund_currency":      "tl_etf-basics_value_fund-currency",
	"volatility_1y":      "tl_etf-basics_value_volatility-one-year",
	"distribution":       "tl_etf-basics_value_distribution-policy",
	"fund_domicile":      "tl_etf-basics_value_fund-domicile",
	"provider":           "tl_etf-basics_value_provider",
	"max_return":         "tl_etf-returns_value_max-return",
	"launch_date":        "tl_etf-basics_value_inception-date",
}

// Client fetches justETF pages through a daily-expiring disk cache, so that
// repeated runs in a day do not hammer the site.
type Client struct {
	http *http.Client
}

// NewClient returns a client backed by the daily disk cache.
func NewClient() *Client { return &Client{http: daily()} }

// FetchProfile downloads and parses the profile page for one ISIN.
func (c *Client) FetchProfile(isin string) (*etfsheet.Profile, error) {
	isin = strings.ToUpper(strings.TrimSpace(isin))
	page, err := wget(c.http, profileURL+isin)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch profile page for %s: %w", isin, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("cannot parse profile page for %s: %w", isin, err)
	}

	p := parseProfile(doc, isin)

	// The heatmap panel is rendered by a chart script, either inline or
	// loaded shortly after page load by a Wicket timer callback.
	p.Grid = heatmapFromScripts(doc)
	if p.Grid == nil {
		if addr := timerAjaxURL(page); addr != "" {
			if body, err := wget(c.http, addr); err == nil {
				p.Grid = parseHeatmap(extractCDATA(body))
			}
		}
	}
	return p, nil
}

// parseProfile extracts the displayed fund facts from the page DOM.
func parseProfile(doc *goquery.Document, isin string) *etfsheet.Profile {
	get := func(key string) string {
		sel := fmt.Sprintf("[data-testid=%q]", testIDs[key])
		return cleanText(doc.Find(sel).First().Text())
	}

	// The fund size cell carries its own label as a prefix.
	fundSize := fundSizePrefix.ReplaceAllString(get("fund_size_row"), "")

	// Replication is displayed as a short label plus a method detail.
	replication := get("replication")
	if method := get("replication_method"); method != "" && replication != "" {
		replication = fmt.Sprintf("%s (%s)", replication, method)
	}

	return &etfsheet.Profile{
		ISIN:        isin,
		Name:        get("name"),
		Description: get("description"),
		Facts: etfsheet.Facts{
			Axis:         get("investment_focus"),
			FundSize:     strings.TrimSpace(fundSize),
			TER:          get("ter"),
			Replication:  replication,
			StrategyRisk: get("strategy_risk"),
			Currency:     get("fund_currency"),
			Volatility1Y: get("volatility_1y"),
			Distribution: get("distribution"),
			Domicile:     get("fund_domicile"),
			Provider:     get("provider"),
		},
		MaxReturnText:  get("max_return"),
		LaunchDateText: get("launch_date"),
	}
}

var fundSizePrefix = regexp.MustCompile(`(?i)^Taille du fonds\s*`)

var spacesRegex = regexp.MustCompile(`\s+`)

// cleanText replaces non-breaking spaces and collapses whitespace runs.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(spacesRegex.ReplaceAllString(s, " "))
}

// heatmapFromScripts scans the inline chart scripts of the page for the
// monthly-return heatmap setup.
func heatmapFromScripts(doc *goquery.Document) *etfsheet.ReturnGrid {
	var grid *etfsheet.ReturnGrid
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		grid = parseHeatmap(sel.Text())
		return grid == nil // stop on first hit
	})
	return grid
}

// timerAjaxURL extracts the Wicket timer callback URL that loads the lazy
// panels (the heatmap among them) shortly after page load.
var timerAjaxRegex = regexp.MustCompile(`Wicket\.Ajax\.ajax\(\{"u":"([^"]*\?\d+-1\.0-&isin=[^"]+&_wicket=1)"\}\)`)

func timerAjaxURL(page string) string {
	m := timerAjaxRegex.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	raw := html.UnescapeString(strings.ReplaceAll(m[1], `\/`, "/"))
	return "https://www.justetf.com" + raw
}
