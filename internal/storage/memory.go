package storage

import (
	"context"
	"sync"

	"fintrack/internal/core"
)

// MemoryRepository keeps the snapshot in process memory. It backs the
// default development backend and the test suites. SaveErr, when set,
// makes every Save fail so write-through error paths can be exercised.
type MemoryRepository struct {
	mu      sync.Mutex
	items   []core.Transaction
	SaveErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(context.Context) ([]core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Transaction(nil), r.items...), nil
}

func (r *MemoryRepository) Save(_ context.Context, txs []core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.items = append(r.items[:0:0], txs...)
	return nil
}
