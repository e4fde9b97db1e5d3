package justetf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/etnz/etfsheet"
)

// errorsFile collects per-ISIN fetch failures in the document directory.
// It is never loaded back as a profile document.
const errorsFile = "errors.json"

// LoadDocuments reads all profile documents (one JSON file per ISIN) from a
// directory, in file name order.
//
// Per-document failures are isolated: a malformed file does not prevent the
// others from loading. The joined error reports every skipped file, along
// with the successfully loaded profiles.
func LoadDocuments(dir string) ([]*etfsheet.Profile, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("cannot scan document directory %q: %w", dir, err)
	}
	sort.Strings(names)

	var profiles []*etfsheet.Profile
	var errs error
	for _, name := range names {
		if strings.EqualFold(filepath.Base(name), errorsFile) {
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot open document %q: %w", name, err))
			continue
		}
		p, err := etfsheet.DecodeProfile(f)
		f.Close()
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot decode document %q: %w", name, err))
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, errs
}

// SaveDocument persists one profile as <ISIN>.json in the directory.
func SaveDocument(dir string, p *etfsheet.Profile) error {
	f, err := os.Create(filepath.Join(dir, p.ISIN+".json"))
	if err != nil {
		return fmt.Errorf("cannot create document for %s: %w", p.ISIN, err)
	}
	defer f.Close()
	return etfsheet.EncodeProfile(f, p)
}

// SaveErrors persists per-ISIN fetch failures as errors.json.
func SaveErrors(dir string, failures map[string]string) error {
	if len(failures) == 0 {
		return nil
	}
	content, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, errorsFile), content, 0644)
}

// LoadISINs reads a JSON list of ISIN strings, the input format of the
// fetch command. Entries are trimmed and upper-cased, empty ones dropped.
func LoadISINs(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ISIN list %q: %w", path, err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	var raw []string
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse ISIN list %q: want a JSON list of strings: %w", path, err)
	}
	var isins []string
	for _, item := range raw {
		if isin := strings.ToUpper(strings.TrimSpace(item)); isin != "" {
			isins = append(isins, isin)
		}
	}
	return isins, nil
}

// LoadTickerMap reads an optional ISIN to ticker mapping, a JSON list of
// objects with "isin" and "tickers" properties (the ticker-discovery output
// format). The first occurrence of an ISIN wins.
func LoadTickerMap(path string) (map[etfsheet.ISIN]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ticker map %q: %w", path, err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	var rows []struct {
		ISIN    string `json:"isin"`
		Tickers string `json:"tickers"`
	}
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("cannot parse ticker map %q: %w", path, err)
	}

	mapping := make(map[etfsheet.ISIN]string, len(rows))
	for _, row := range rows {
		isin, err := etfsheet.NewISIN(row.ISIN)
		if err != nil {
			continue
		}
		ticker := strings.ToUpper(strings.TrimSpace(row.Tickers))
		if ticker == "" {
			continue
		}
		if _, exists := mapping[isin]; !exists {
			mapping[isin] = ticker
		}
	}
	return mapping, nil
}
