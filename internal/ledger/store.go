// Package ledger implements the transaction store: the authoritative
// in-memory record collection with validation, monotonic id assignment,
// and write-through persistence via an injected Repository.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Input carries the mutable fields of a transaction for add and update.
type Input struct {
	Description string
	Amount      decimal.Decimal
	Date        core.Date
	Category    string
	Note        string
}

// Store owns the ordered transaction collection. All mutations validate
// first, apply atomically, then write the full snapshot through the
// repository. A failed write-through leaves the in-memory state applied
// and is reported as a core.PersistenceError alongside the result.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	events EventPublisher // optional
	logger *slog.Logger
	items  []core.Transaction
	nextID int64
}

// NewStore creates a store over repo. events may be nil.
func NewStore(repo Repository, events EventPublisher) *Store {
	return &Store{repo: repo, events: events, logger: log.ForComponent(log.ComponentLedger)}
}

// Load replaces the in-memory state with the repository contents. Records
// that fail validation or reuse an id are skipped with a warning so a
// corrupted slot degrades instead of crashing.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored ledger unreadable, starting empty", log.FieldError, err)
		items = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	s.nextID = 0
	seen := make(map[int64]struct{}, len(items))
	for _, t := range items {
		if _, dup := seen[t.ID]; dup {
			s.logger.WarnContext(ctx, "Skipping duplicate transaction id", log.FieldTransactionID, t.ID)
			continue
		}
		if err := t.Validate(); err != nil {
			s.logger.WarnContext(ctx, "Skipping invalid stored transaction", log.FieldTransactionID, t.ID, log.FieldError, err)
			continue
		}
		seen[t.ID] = struct{}{}
		s.items = append(s.items, t)
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}

	s.logger.InfoContext(ctx, "Ledger loaded", "transactions", len(s.items))
	return nil
}

// Add validates in, assigns a fresh id, appends the record, and persists.
// On validation failure the store is unchanged. On persistence failure the
// record is still returned along with the PersistenceError.
func (s *Store) Add(ctx context.Context, in Input) (core.Transaction, error) {
	tx := s.fromInput(in)

	s.mu.Lock()
	if err := tx.Validate(); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}
	s.nextID++
	tx.ID = s.nextID
	s.items = append(s.items, tx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTransactionID, tx.ID,
		log.FieldAmount, tx.Amount.String(),
		log.FieldCategory, tx.Category)
	return tx, s.writeThrough(ctx, OpAdd, tx.ID, snapshot)
}

// Update replaces every mutable field of the identified record. The id is
// immutable. Validation runs against the candidate before anything becomes
// visible, so readers never observe a partial update.
func (s *Store) Update(ctx context.Context, id int64, in Input) (core.Transaction, error) {
	tx := s.fromInput(in)
	tx.ID = id

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return core.Transaction{}, &core.NotFoundError{ID: id}
	}
	if err := tx.Validate(); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}
	s.items[i] = tx
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction updated", log.FieldTransactionID, id)
	return tx, s.writeThrough(ctx, OpUpdate, id, snapshot)
}

// Remove deletes the identified record. Removing an absent id is an
// idempotent no-op reporting false.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction removed", log.FieldTransactionID, id)
	return true, s.writeThrough(ctx, OpRemove, id, snapshot)
}

// Replace swaps the entire ledger for txs, used by interchange import.
// Every record must already carry a distinct valid id; ids are preserved
// so an export/import cycle is lossless.
func (s *Store) Replace(ctx context.Context, txs []core.Transaction) error {
	seen := make(map[int64]struct{}, len(txs))
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return &core.ValidationError{Field: "id", Reason: core.ErrDuplicateID}
		}
		seen[t.ID] = struct{}{}
	}

	s.mu.Lock()
	s.items = append(s.items[:0], txs...)
	s.nextID = 0
	for _, t := range txs {
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Ledger replaced", "transactions", len(txs))
	return s.writeThrough(ctx, OpReplace, 0, snapshot)
}

// List returns a copy of the ledger in insertion order. Callers needing
// display order sort via core.DisplayOrder.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Categories returns the known category set: defaults first, then observed
// categories in first-seen order. Recomputed on every call.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.KnownCategories(s.items)
}

func (s *Store) fromInput(in Input) core.Transaction {
	return core.Transaction{
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Date:        in.Date,
		Category:    core.NormalizeCategory(in.Category),
		Note:        strings.TrimSpace(in.Note),
	}
}

func (s *Store) indexLocked(id int64) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []core.Transaction {
	return append([]core.Transaction(nil), s.items...)
}

// writeThrough persists the snapshot and publishes the change-feed event.
// The mutation is already applied; only the persistence outcome is
// reported back.
func (s *Store) writeThrough(ctx context.Context, op string, id int64, snapshot []core.Transaction) error {
	s.publish(ctx, op, id)

	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "Write-through failed, in-memory state stays authoritative",
			log.FieldOperation, op, log.FieldTransactionID, id, log.FieldError, err)
		return &core.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) publish(ctx context.Context, op string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, op, id); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event",
			log.FieldOperation, op, log.FieldTransactionID, id, log.FieldError, err)
	}
}
