// Package export implements ledger interchange: CSV and JSON snapshots
// that round-trip every transaction field, ids included.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fintrack/internal/core"
)

var csvHeader = []string{"id", "description", "amount", "date", "category", "note"}

// WriteCSV writes txs as CSV with a header row. Amounts are decimal text,
// dates YYYY-MM-DD.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Description,
			t.Amount.String(),
			t.Date.String(),
			t.Category,
			t.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a snapshot previously produced by WriteCSV.
func ReadCSV(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	txs := make([]core.Transaction, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("csv row %d: expected %d fields, got %d", i+2, len(csvHeader), len(row))
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad id %q", i+2, row[0])
		}
		amount, err := core.ParseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		date, err := core.ParseDate(row[3])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		txs = append(txs, core.Transaction{
			ID:          id,
			Description: row[1],
			Amount:      amount,
			Date:        date,
			Category:    row[4],
			Note:        row[5],
		})
	}
	return txs, nil
}
