// Package receipt turns recognized receipt text into item/price lists that
// can seed an exact-split expense. Extraction is best-effort and lossy: bad
// input degrades to an empty item list, never an engine failure.
package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

// Item is one recognized receipt line.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Parsed is the result of extracting a receipt's structure from raw text.
type Parsed struct {
	Items []Item  `json:"items"`
	Tax   float64 `json:"tax"`
	Total float64 `json:"total"`
}

var (
	itemPattern  = regexp.MustCompile(`^(.*?)\s+\$?([\d]+\.[\d]{2})\s*$`)
	taxPattern   = regexp.MustCompile(`(?i)tax:?\s*\$?([\d]+\.?[\d]*)`)
	totalPattern = regexp.MustCompile(`(?i)total:?\s*\$?([\d]+\.?[\d]*)`)
)

// Parse extracts items, tax, and total from raw receipt text, one candidate
// per line. Lines that match nothing are skipped; there is no strict
// grammar and no failure mode beyond an empty result.
func Parse(text string) Parsed {
	parsed := Parsed{Items: []Item{}}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := taxPattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				parsed.Tax = v
			}
			continue
		}
		if m := totalPattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				parsed.Total = v
			}
			continue
		}
		if m := itemPattern.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			price, err := strconv.ParseFloat(m[2], 64)
			if err != nil || name == "" || price < 0 {
				continue
			}
			parsed.Items = append(parsed.Items, Item{Name: name, Price: price})
		}
	}

	return parsed
}

// ValidItems filters an item list down to entries acceptable as split
// inputs: non-empty names and non-negative prices. Formatter output is
// untrusted and must pass through here before reaching an expense.
func ValidItems(items []Item) []Item {
	valid := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Price < 0 {
			continue
		}
		valid = append(valid, it)
	}
	return valid
}
