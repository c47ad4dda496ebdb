package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is a single dated ledger entry. The amount sign encodes
// direction: positive is income, negative is expense. ID is assigned once
// at creation and never changes or gets reused.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Category    string          `json:"category"`
	Note        string          `json:"note,omitempty"`
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Field: "description", Reason: ErrEmptyDescription}
	}
	if t.Amount.IsZero() {
		return &ValidationError{Field: "amount", Reason: ErrZeroAmount}
	}
	if err := t.Date.Validate(); err != nil {
		return &ValidationError{Field: "date", Reason: err}
	}
	return nil
}

// IsIncome reports whether the amount is strictly positive.
func (t Transaction) IsIncome() bool { return t.Amount.Sign() > 0 }

// IsExpense reports whether the amount is strictly negative.
func (t Transaction) IsExpense() bool { return t.Amount.Sign() < 0 }

// ParseAmount parses a signed decimal amount. It accepts both dot and comma
// decimal separators and rejects zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: ErrInvalidAmount}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: ErrInvalidAmount}
	}
	if d.IsZero() {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: ErrZeroAmount}
	}
	return d, nil
}

// DisplayOrder returns a copy sorted for display: date descending, ties
// broken by id descending (most recent first). Input order is untouched.
func DisplayOrder(txs []Transaction) []Transaction {
	out := append([]Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
