package jsonstore

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
)

// LedgerStore owns the payable and receivable collections and the category
// taxonomy, each backed by its own JSON document.
type LedgerStore struct {
	payablesPath    string
	receivablesPath string
	categoriesPath  string

	payables    []domain.LedgerEntry
	receivables []domain.LedgerEntry
	categories  domain.CategorySet

	logger zerolog.Logger
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerStore)(nil)

// NewLedgerStore loads the three ledger documents. Missing or corrupt
// documents start as empty collections.
func NewLedgerStore(payablesPath, receivablesPath, categoriesPath string, logger zerolog.Logger) *LedgerStore {
	return &LedgerStore{
		payablesPath:    payablesPath,
		receivablesPath: receivablesPath,
		categoriesPath:  categoriesPath,
		payables:        loadDocument[[]domain.LedgerEntry](payablesPath, logger),
		receivables:     loadDocument[[]domain.LedgerEntry](receivablesPath, logger),
		categories:      loadDocument[domain.CategorySet](categoriesPath, logger),
		logger:          logger,
	}
}

func (s *LedgerStore) collection(kind domain.LedgerKind) *[]domain.LedgerEntry {
	if kind == domain.KindPayable {
		return &s.payables
	}
	return &s.receivables
}

func (s *LedgerStore) persist(kind domain.LedgerKind) error {
	if kind == domain.KindPayable {
		return writeDocument(s.payablesPath, s.payables)
	}
	return writeDocument(s.receivablesPath, s.receivables)
}

// ListEntries returns a snapshot of the collection of the given kind.
func (s *LedgerStore) ListEntries(_ context.Context, kind domain.LedgerKind) ([]domain.LedgerEntry, error) {
	return slices.Clone(*s.collection(kind)), nil
}

// AppendEntry appends entry to its collection and persists it.
func (s *LedgerStore) AppendEntry(_ context.Context, kind domain.LedgerKind, entry domain.LedgerEntry) error {
	col := s.collection(kind)
	*col = append(*col, entry)
	return s.persist(kind)
}

// ReplaceEntries overwrites the collection of the given kind and persists it.
func (s *LedgerStore) ReplaceEntries(_ context.Context, kind domain.LedgerKind, entries []domain.LedgerEntry) error {
	*s.collection(kind) = slices.Clone(entries)
	return s.persist(kind)
}

// Categories returns the category taxonomy.
func (s *LedgerStore) Categories(_ context.Context) (domain.CategorySet, error) {
	return s.categories, nil
}

// EnsureDefaultCategories seeds the default taxonomy when none exists yet.
func (s *LedgerStore) EnsureDefaultCategories(_ context.Context) error {
	if !s.categories.Empty() {
		return nil
	}
	s.categories = domain.DefaultCategories()
	s.logger.Info().Str("path", s.categoriesPath).Msg("seeding default categories")
	return writeDocument(s.categoriesPath, s.categories)
}
