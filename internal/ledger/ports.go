package ledger

import (
	"context"

	"fintrack/internal/core"
)

// Ports for outbound adapters.
type (
	// Repository is the durable slot the store writes through to after
	// every mutation. Load must degrade to an empty ledger when the
	// stored state is missing or malformed, never fail the startup.
	Repository interface {
		Load(ctx context.Context) ([]core.Transaction, error)
		Save(ctx context.Context, txs []core.Transaction) error
	}

	// EventPublisher receives a best-effort change-feed notification after
	// each applied mutation. Publish failures never unwind the mutation.
	EventPublisher interface {
		PublishLedgerEvent(ctx context.Context, op string, id int64) error
	}
)

// Change-feed operation names.
const (
	OpAdd     = "added"
	OpUpdate  = "updated"
	OpRemove  = "removed"
	OpReplace = "replaced"
)
