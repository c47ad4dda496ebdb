package core

import "github.com/shopspring/decimal"

// Totals holds the three headline figures for a transaction subset.
// Expense is reported as a non-negative magnitude. Each figure is summed
// independently rather than derived from the others.
type Totals struct {
	Balance decimal.Decimal `json:"balance"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Summarize computes Totals over txs. Empty input yields all zeros.
func Summarize(txs []Transaction) Totals {
	balance, income, expense := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range txs {
		balance = balance.Add(t.Amount)
	}
	for _, t := range txs {
		if t.IsIncome() {
			income = income.Add(t.Amount)
		}
	}
	for _, t := range txs {
		if t.IsExpense() {
			expense = expense.Sub(t.Amount)
		}
	}
	return Totals{Balance: balance, Income: income, Expense: expense}
}

// Sign selects which transaction direction a breakdown covers.
type Sign int

const (
	IncomeSign  Sign = 1
	ExpenseSign Sign = -1
)

func (s Sign) matches(t Transaction) bool {
	if s == IncomeSign {
		return t.IsIncome()
	}
	return t.IsExpense()
}

// CategoryAmount is one bucket of a category breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryBreakdown is an ordered set of category buckets. A nil or empty
// breakdown is the explicit "no data" signal for presentation.
type CategoryBreakdown []CategoryAmount

// Empty reports whether the breakdown carries no buckets.
func (b CategoryBreakdown) Empty() bool { return len(b) == 0 }

// ByCategory sums magnitudes per category over the transactions matching
// sign. Bucket order is category first-seen order within the filtered
// subset. Categories without matching transactions get no bucket.
func ByCategory(txs []Transaction, sign Sign) CategoryBreakdown {
	var out CategoryBreakdown
	index := make(map[string]int)
	for _, t := range txs {
		if !sign.matches(t) {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Category: t.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount.Abs())
	}
	return out
}

// MonthBucket holds the income and expense magnitudes for one calendar month.
type MonthBucket struct {
	Month   MonthKey        `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ByMonth buckets txs into the monthsBack consecutive calendar months ending
// at the month containing anchor, oldest first. Every bucket is pre-seeded
// with zeros so months without activity still appear. Transactions outside
// the window are ignored. monthsBack below 1 yields nil.
func ByMonth(txs []Transaction, monthsBack int, anchor Date) []MonthBucket {
	if monthsBack < 1 {
		return nil
	}
	first := NewDate(anchor.Year(), int(anchor.Month())-(monthsBack-1), 1)
	buckets := make([]MonthBucket, monthsBack)
	index := make(map[MonthKey]int, monthsBack)
	key := first.MonthKey()
	for i := range buckets {
		buckets[i] = MonthBucket{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
		index[key] = i
		key = key.Next()
	}
	for _, t := range txs {
		i, ok := index[t.Date.MonthKey()]
		if !ok {
			continue
		}
		if t.IsIncome() {
			buckets[i].Income = buckets[i].Income.Add(t.Amount)
		} else {
			buckets[i].Expense = buckets[i].Expense.Sub(t.Amount)
		}
	}
	return buckets
}
