package catalog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// The seed workbook layout is fixed: an INVOICE sheet with item names in the
// third column and rates in the fourth (zero-indexed 2 and 3), no header row.
const sheetName = "INVOICE"

const (
	itemCol = 2
	rateCol = 3
)

type ItemRate struct {
	Item string  `json:"item"`
	Rate float64 `json:"rate"`
}

// ParseWorkbook reads (item, rate) pairs from a workbook stream. Rows with a
// blank item or unparseable rate are discarded; duplicate item names collapse
// to the last occurring rate.
func ParseWorkbook(r io.Reader) ([]ItemRate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheetName, err)
	}

	latest := map[string]float64{}
	var order []string
	for _, row := range rows {
		if len(row) <= itemCol {
			continue
		}
		item := strings.TrimSpace(row[itemCol])
		if item == "" {
			continue
		}
		if len(row) <= rateCol {
			continue
		}
		rate, ok := parseRate(row[rateCol])
		if !ok {
			continue
		}
		if _, seen := latest[item]; !seen {
			order = append(order, item)
		}
		latest[item] = rate
	}

	items := make([]ItemRate, 0, len(order))
	for _, item := range order {
		items = append(items, ItemRate{Item: item, Rate: latest[item]})
	}
	return items, nil
}

// parseRate accepts numeric text, tolerating thousands separators.
func parseRate(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SeedFromFile populates an empty catalog from the seed workbook. A missing
// or unreadable file degrades to zero items imported with a warning; seeding
// is never fatal.
func (s *Service) SeedFromFile(path string) int {
	if path == "" {
		return 0
	}
	count, err := s.Count()
	if err != nil || count > 0 {
		return 0
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("seed workbook not readable, skipping item seed")
		return 0
	}
	defer f.Close()

	items, err := ParseWorkbook(f)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("couldn't import items from workbook")
		return 0
	}

	n, err := s.UpsertAll(items)
	if err != nil {
		log.Warn().Err(err).Msg("item seed stopped early")
		return n
	}
	if n > 0 {
		log.Info().Int("items", n).Str("path", path).Msg("loaded items & rates from seed workbook")
	}
	return n
}
