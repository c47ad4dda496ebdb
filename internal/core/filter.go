package core

import "strings"

// Criteria narrows a transaction set. All fields are optional and
// conjunctive: a transaction must satisfy every supplied criterion.
// Zero values mean "no filter".
type Criteria struct {
	From     Date     // inclusive lower bound
	To       Date     // inclusive upper bound
	Category string   // exact match; empty or CategoryAll disables it
	Month    MonthKey // calendar month match
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.From.IsZero() && c.To.IsZero() && c.Month.IsZero() &&
		(strings.TrimSpace(c.Category) == "" || c.Category == CategoryAll)
}

// Matches reports whether t satisfies every supplied criterion.
func (c Criteria) Matches(t Transaction) bool {
	if !c.From.IsZero() && t.Date.Before(c.From.Time) {
		return false
	}
	if !c.To.IsZero() && t.Date.After(c.To.Time) {
		return false
	}
	if cat := strings.TrimSpace(c.Category); cat != "" && cat != CategoryAll && t.Category != cat {
		return false
	}
	if !c.Month.IsZero() && t.Date.MonthKey() != c.Month {
		return false
	}
	return true
}

// Filter returns the subset of txs matching c, preserving input order.
// It never mutates its input. Empty criteria returns every transaction;
// a From after To yields an empty result, not an error.
func Filter(txs []Transaction, c Criteria) []Transaction {
	if c.IsZero() {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
