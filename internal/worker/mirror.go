// Package worker mirrors the persisted ledger into an external export
// target. It listens to the change feed, coalesces bursts of events, and
// pushes the full snapshot on the next sync tick.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

// Exporter pushes a complete ledger snapshot to the mirror target.
type Exporter interface {
	Export(ctx context.Context, txs []core.Transaction) error
}

// MirrorWorker re-exports the ledger whenever the change feed reports a
// mutation. Events carry no payload, so every sync reads the snapshot
// from the repository and replaces the mirror wholesale. Losing an event
// is therefore harmless as long as a later one arrives; the periodic
// interval sync covers the rest.
type MirrorWorker struct {
	repo     ledger.Repository
	exporter Exporter
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	dirty    bool
	lastSync time.Time
	synced   int64
}

// NewMirrorWorker creates a worker syncing repo into exporter. debounce
// bounds how often bursts of events trigger an export.
func NewMirrorWorker(repo ledger.Repository, exporter Exporter, debounce time.Duration) *MirrorWorker {
	if debounce <= 0 {
		debounce = 5 * time.Second
	}
	return &MirrorWorker{
		repo:     repo,
		exporter: exporter,
		debounce: debounce,
		logger:   log.ForComponent(log.ComponentWorker),
	}
}

// HandleLedgerEvent marks the mirror stale. The export itself happens on
// the next debounce tick so a burst of mutations costs one sync.
func (w *MirrorWorker) HandleLedgerEvent(event *amqp.LedgerEvent) error {
	w.logger.Info("Ledger change received", log.FieldOperation, event.Op, log.FieldTransactionID, event.ID)
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
	return nil
}

// Run performs a startup sync, then exports whenever events have marked
// the mirror stale, checking every debounce interval until ctx is done.
func (w *MirrorWorker) Run(ctx context.Context) error {
	if err := w.SyncNow(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Startup sync failed", log.FieldError, err)
	}

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.mu.Lock()
			stale := w.dirty
			w.mu.Unlock()
			if !stale {
				continue
			}
			if err := w.SyncNow(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Mirror sync failed, will retry", log.FieldError, err)
			}
		}
	}
}

// SyncNow reads the current snapshot and exports it. The dirty flag is
// cleared before reading so a mutation racing the export re-marks it and
// gets picked up by the following tick.
func (w *MirrorWorker) SyncNow(ctx context.Context) error {
	w.mu.Lock()
	w.dirty = false
	w.mu.Unlock()

	txs, err := w.repo.Load(ctx)
	if err != nil {
		w.markDirty()
		return fmt.Errorf("load snapshot: %w", err)
	}

	if err := w.exporter.Export(ctx, txs); err != nil {
		w.markDirty()
		return fmt.Errorf("export snapshot: %w", err)
	}

	w.mu.Lock()
	w.lastSync = time.Now()
	w.synced++
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Mirror synced", "transactions", len(txs))
	return nil
}

// Stats reports the completed sync count and the last sync time.
func (w *MirrorWorker) Stats() (int64, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.synced, w.lastSync
}

func (w *MirrorWorker) markDirty() {
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
}
