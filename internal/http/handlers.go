package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
)

type listResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Count        int                `json:"count"`
	Totals       core.Totals        `json:"totals"`
}

type transactionResponse struct {
	Transaction core.Transaction `json:"transaction"`
	Persisted   bool             `json:"persisted"`
	Warning     string           `json:"warning,omitempty"`
}

type removeResponse struct {
	Removed   bool   `json:"removed"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

type importResponse struct {
	Imported  int    `json:"imported"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type categoryBreakdownResponse struct {
	Sign    string                 `json:"sign"`
	Buckets core.CategoryBreakdown `json:"buckets"`
	Empty   bool                   `json:"empty"`
}

type monthBreakdownResponse struct {
	Months []core.MonthBucket `json:"months"`
}

// handleListTransactions returns the filtered ledger in display order
// (date descending, newest id first on ties) with totals over the same
// subset.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := core.Filter(s.store.List(), criteria)
	writeJSON(ctx, w, http.StatusOK, listResponse{
		Transactions: core.DisplayOrder(filtered),
		Count:        len(filtered),
		Totals:       core.Summarize(filtered),
	})
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeTransactionRequest(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.store.Add(ctx, req.input())
	if err != nil && !core.IsPersistence(err) {
		writeDomainError(ctx, w, err)
		return
	}

	persisted, warning := persistedStatus(err)
	writeJSON(ctx, w, http.StatusCreated, transactionResponse{
		Transaction: tx,
		Persisted:   persisted,
		Warning:     warning,
	})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := decodeTransactionRequest(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.store.Update(ctx, id, req.input())
	if err != nil && !core.IsPersistence(err) {
		writeDomainError(ctx, w, err)
		return
	}

	persisted, warning := persistedStatus(err)
	writeJSON(ctx, w, http.StatusOK, transactionResponse{
		Transaction: tx,
		Persisted:   persisted,
		Warning:     warning,
	})
}

// handleRemoveTransaction deletes by id. Removing an unknown id is a
// no-op reported as removed false, not an error.
func (s *Server) handleRemoveTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := s.store.Remove(ctx, id)
	if err != nil && !core.IsPersistence(err) {
		writeDomainError(ctx, w, err)
		return
	}

	persisted, warning := persistedStatus(err)
	writeJSON(ctx, w, http.StatusOK, removeResponse{
		Removed:   removed,
		Persisted: persisted,
		Warning:   warning,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, categoriesResponse{
		Categories: s.store.Categories(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := core.Filter(s.store.List(), criteria)
	writeJSON(ctx, w, http.StatusOK, core.Summarize(filtered))
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	sign := core.ExpenseSign
	signName := strings.TrimSpace(query.Get("sign"))
	switch signName {
	case "", "expense":
		signName = "expense"
	case "income":
		sign = core.IncomeSign
	default:
		writeError(ctx, w, http.StatusBadRequest, "invalid sign: must be income or expense")
		return
	}

	criteria, err := parseCriteria(query)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	buckets := core.ByCategory(core.Filter(s.store.List(), criteria), sign)
	if buckets == nil {
		buckets = core.CategoryBreakdown{}
	}
	writeJSON(ctx, w, http.StatusOK, categoryBreakdownResponse{
		Sign:    signName,
		Buckets: buckets,
		Empty:   buckets.Empty(),
	})
}

// handleMonthBreakdown returns zero-seeded month buckets, oldest first,
// for the window ending at the anchor month (today by default).
func (s *Server) handleMonthBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	months := s.chartMonths
	if v := strings.TrimSpace(query.Get("months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 120 {
			writeError(ctx, w, http.StatusBadRequest, "invalid months: must be between 1 and 120")
			return
		}
		months = n
	}

	now := time.Now().UTC()
	anchor := core.NewDate(now.Year(), int(now.Month()), now.Day())
	if v := strings.TrimSpace(query.Get("anchor")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			writeError(ctx, w, http.StatusBadRequest, "invalid anchor date")
			return
		}
		anchor = d
	}

	writeJSON(ctx, w, http.StatusOK, monthBreakdownResponse{
		Months: core.ByMonth(s.store.List(), months, anchor),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	if err := export.WriteCSV(w, s.store.List()); err != nil {
		// Headers are already sent; log the truncated download.
		slog.ErrorContext(ctx, "CSV export failed mid-stream", "error", err)
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.json"`)
	if err := export.WriteJSON(w, s.store.List()); err != nil {
		slog.ErrorContext(ctx, "JSON export failed mid-stream", "error", err)
	}
}

// handleImport replaces the whole ledger with the posted JSON snapshot.
// The import is all-or-nothing: one invalid record rejects the batch.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txs, err := export.ReadJSON(r.Body)
	if err != nil {
		if core.IsValidation(err) {
			writeError(ctx, w, http.StatusUnprocessableEntity, err.Error())
		} else {
			writeError(ctx, w, http.StatusBadRequest, err.Error())
		}
		return
	}

	err = s.store.Replace(ctx, txs)
	if err != nil && !core.IsPersistence(err) {
		writeDomainError(ctx, w, err)
		return
	}

	persisted, warning := persistedStatus(err)
	writeJSON(ctx, w, http.StatusOK, importResponse{
		Imported:  len(txs),
		Persisted: persisted,
		Warning:   warning,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
