package export

import (
	"encoding/json"
	"fmt"
	"io"

	"fintrack/internal/core"
)

// WriteJSON writes txs as an indented JSON array.
func WriteJSON(w io.Writer, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txs); err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return nil
}

// ReadJSON parses a JSON ledger snapshot and validates every record,
// rejecting the whole import on the first invalid or duplicated entry.
func ReadJSON(r io.Reader) ([]core.Transaction, error) {
	var txs []core.Transaction
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}

	seen := make(map[int64]struct{}, len(txs))
	for i, t := range txs {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (id %d): %w", i, t.ID, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("record %d: %w", i, &core.ValidationError{Field: "id", Reason: core.ErrDuplicateID})
		}
		seen[t.ID] = struct{}{}
	}
	return txs, nil
}
