package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// transactionRequest is the JSON body for add and update. Amount accepts
// either a JSON number or a numeric string.
type transactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        core.Date       `json:"date"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
}

func (tr transactionRequest) input() ledger.Input {
	return ledger.Input{
		Description: tr.Description,
		Amount:      tr.Amount,
		Date:        tr.Date,
		Category:    tr.Category,
		Note:        tr.Note,
	}
}

func decodeTransactionRequest(r *http.Request) (transactionRequest, error) {
	var tr transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&tr); err != nil {
		return transactionRequest{}, fmt.Errorf("invalid request body: %w", err)
	}
	return tr, nil
}

// parseCriteria builds filter criteria from query parameters: from and to
// as YYYY-MM-DD, month as YYYY-MM, category as an exact name ("All"
// disables it).
func parseCriteria(query url.Values) (core.Criteria, error) {
	var c core.Criteria

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid from date %q", v)
		}
		c.From = d
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid to date %q", v)
		}
		c.To = d
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		m, err := core.ParseMonthKey(v)
		if err != nil {
			return core.Criteria{}, fmt.Errorf("invalid month %q", v)
		}
		c.Month = m
	}
	c.Category = strings.TrimSpace(query.Get("category"))

	return c, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid transaction id %q", raw)
	}
	return id, nil
}
