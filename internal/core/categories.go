package core

import "strings"

// DefaultCategories is the fixed seed set; its order is the display order
// for selection widgets.
var DefaultCategories = []string{
	"Salary",
	"Groceries",
	"Bills",
	"Eating Out",
	"Transport",
	"Shopping",
	"Entertainment",
	"Health",
	"Other",
}

const (
	// DefaultCategory is assigned when a transaction carries no category.
	DefaultCategory = "Other"

	// CategoryAll is the filter sentinel meaning "no category filter".
	CategoryAll = "All"
)

// NormalizeCategory trims the label and falls back to DefaultCategory when
// nothing is left.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory
	}
	return s
}

// KnownCategories returns the defaults followed by every distinct observed
// category not already present, in first-seen order. The result is
// deterministic for a given transaction sequence.
func KnownCategories(txs []Transaction) []string {
	out := append([]string(nil), DefaultCategories...)
	seen := make(map[string]struct{}, len(out))
	for _, c := range out {
		seen[c] = struct{}{}
	}
	for _, t := range txs {
		c := NormalizeCategory(t.Category)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
