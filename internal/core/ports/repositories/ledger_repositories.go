package repositories

import (
	"context"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// LedgerReader defines read operations over the ledger collections.
type LedgerReader interface {
	// ListEntries returns a snapshot of all entries of the given kind,
	// including inactive ones; filtering is the caller's concern.
	ListEntries(ctx context.Context, kind domain.LedgerKind) ([]domain.LedgerEntry, error)

	// Categories returns the category taxonomy.
	Categories(ctx context.Context) (domain.CategorySet, error)
}

// LedgerWriter defines write operations over the ledger collections. Every
// write persists the full collection before returning.
type LedgerWriter interface {
	// AppendEntry appends a new entry to the collection of its kind.
	AppendEntry(ctx context.Context, kind domain.LedgerKind, entry domain.LedgerEntry) error

	// ReplaceEntries overwrites the collection of the given kind.
	ReplaceEntries(ctx context.Context, kind domain.LedgerKind, entries []domain.LedgerEntry) error

	// EnsureDefaultCategories seeds the default taxonomy when none exists.
	// Idempotent once any category is present.
	EnsureDefaultCategories(ctx context.Context) error
}

// LedgerRepositoryFacade combines ledger read and write operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
