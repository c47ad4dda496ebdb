// Package backend selects and constructs the persistence adapter the
// ledger store writes through to.
package backend

import (
	"fmt"
	"log/slog"

	"fintrack/internal/config"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Type identifies a persistence backend.
type Type string

const (
	SQLite Type = "sqlite"
	File   Type = "file"
	Memory Type = "memory"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, File, Memory:
		return true
	}
	return false
}

// Result carries the constructed repository and an optional cleanup.
type Result struct {
	Repo    ledger.Repository
	Cleanup func() error
}

// New constructs the repository selected by cfg.DataBackend.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = log.ForComponent(log.ComponentBackend)
	}

	t := Type(cfg.DataBackend)
	switch t {
	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", log.FieldBackend, string(t), "db_path", cfg.SQLiteDBPath)
		return &Result{Repo: repo, Cleanup: repo.Close}, nil

	case File:
		repo, err := storage.NewFileRepository(cfg.LedgerFilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file backend", log.FieldBackend, string(t), "path", cfg.LedgerFilePath)
		return &Result{Repo: repo}, nil

	case Memory:
		logger.Info("Initialized memory backend", log.FieldBackend, string(t))
		return &Result{Repo: storage.NewMemoryRepository()}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
