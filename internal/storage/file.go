package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
)

// FileRepository keeps the ledger as a JSON snapshot on disk, the durable
// key-value slot for setups without a database. Writes go through a temp
// file and rename so a crash never leaves a half-written snapshot.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	return &FileRepository{path: path}, nil
}

// Load implements ledger.Repository. A missing or malformed file degrades
// to an empty ledger.
func (r *FileRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var txs []core.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		slog.WarnContext(ctx, "Ledger file malformed, starting empty", "path", r.path, "error", err)
		return nil, nil
	}
	return txs, nil
}

// Save implements ledger.Repository.
func (r *FileRepository) Save(_ context.Context, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}
