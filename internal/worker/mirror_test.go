package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type stubExporter struct {
	mu      sync.Mutex
	exports [][]core.Transaction
	err     error
}

func (e *stubExporter) Export(_ context.Context, txs []core.Transaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.exports = append(e.exports, append([]core.Transaction(nil), txs...))
	return nil
}

func (e *stubExporter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.exports)
}

func seedRepo(t *testing.T) *storage.MemoryRepository {
	t.Helper()
	repo := storage.NewMemoryRepository()
	err := repo.Save(context.Background(), []core.Transaction{
		{ID: 1, Description: "Salary", Amount: decimal.NewFromInt(1000), Date: core.NewDate(2025, 1, 15), Category: "Salary"},
		{ID: 2, Description: "Weekly shop", Amount: decimal.RequireFromString("-50.25"), Date: core.NewDate(2025, 1, 16), Category: "Groceries"},
	})
	if err != nil {
		t.Fatalf("seed repo: %v", err)
	}
	return repo
}

func TestSyncNowExportsSnapshot(t *testing.T) {
	repo := seedRepo(t)
	exp := &stubExporter{}
	w := NewMirrorWorker(repo, exp, time.Second)

	if err := w.SyncNow(context.Background()); err != nil {
		t.Fatalf("SyncNow: %v", err)
	}

	if exp.count() != 1 {
		t.Fatalf("exports = %d, want 1", exp.count())
	}
	if got := len(exp.exports[0]); got != 2 {
		t.Errorf("exported transactions = %d, want 2", got)
	}

	synced, last := w.Stats()
	if synced != 1 || last.IsZero() {
		t.Errorf("stats = (%d, %v), want one completed sync", synced, last)
	}
}

func TestSyncNowFailureLeavesMirrorStale(t *testing.T) {
	repo := seedRepo(t)
	exp := &stubExporter{err: errors.New("quota exceeded")}
	w := NewMirrorWorker(repo, exp, time.Second)

	if err := w.SyncNow(context.Background()); err == nil {
		t.Fatal("expected export error")
	}
	if !w.dirty {
		t.Error("failed sync should leave the worker dirty for retry")
	}
}

func TestRunSyncsAfterEvent(t *testing.T) {
	repo := seedRepo(t)
	exp := &stubExporter{}
	w := NewMirrorWorker(repo, exp, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Wait for the startup sync before publishing the event.
	deadline := time.After(time.Second)
	for exp.count() < 1 {
		select {
		case <-deadline:
			t.Fatal("startup sync never happened")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := w.HandleLedgerEvent(amqp.NewLedgerEvent("added", 3)); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	deadline = time.After(time.Second)
	for exp.count() < 2 {
		select {
		case <-deadline:
			t.Fatal("event did not trigger a sync")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestQuietWorkerDoesNotResync(t *testing.T) {
	repo := seedRepo(t)
	exp := &stubExporter{}
	w := NewMirrorWorker(repo, exp, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	if exp.count() != 1 {
		t.Errorf("exports = %d, want only the startup sync", exp.count())
	}
}
