package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func sampleSnapshot() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Description: "salary", Amount: decimal.NewFromInt(1000), Date: core.NewDate(2024, 1, 5), Category: "Salary"},
		{ID: 2, Description: "weekly shop", Amount: decimal.RequireFromString("-50.25"), Date: core.NewDate(2024, 1, 10), Category: "Groceries", Note: "card"},
	}
}

func assertSnapshotEqual(t *testing.T, got, want []core.Transaction) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Description != w.Description || g.Category != w.Category || g.Note != w.Note {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, g, w)
		}
		if !g.Amount.Equal(w.Amount) {
			t.Fatalf("record %d amount: %s vs %s", i, g.Amount, w.Amount)
		}
		if !g.Date.Equal(w.Date.Time) {
			t.Fatalf("record %d date: %s vs %s", i, g.Date, w.Date)
		}
	}
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	// empty database yields an empty ledger
	if got, err := repo.Load(ctx); err != nil || len(got) != 0 {
		t.Fatalf("fresh load: got %d records, err %v", len(got), err)
	}

	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSnapshotEqual(t, got, want)

	// snapshot replacement drops removed records
	if err := repo.Save(ctx, want[:1]); err != nil {
		t.Fatalf("save shrunk: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	assertSnapshotEqual(t, got, want[:1])
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// reopening re-runs migrations against an up-to-date schema and
	// must leave the stored snapshot intact
	reopened, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	assertSnapshotEqual(t, got, want)
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if got, err := repo.Load(ctx); err != nil || len(got) != 0 {
		t.Fatalf("missing file must load empty: got %d records, err %v", len(got), err)
	}

	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSnapshotEqual(t, got, want)
}

func TestFileRepositoryMalformedDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("malformed file must not fail: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %d records", len(got))
	}
}
