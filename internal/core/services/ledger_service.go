package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

// LedgerService provides registration, listing, search, settlement and
// soft-deletion over the payable and receivable collections.
type LedgerService struct {
	repo     portsrepo.LedgerRepositoryFacade
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// LedgerOption customizes a LedgerService.
type LedgerOption func(*LedgerService)

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) { s.now = now }
}

// NewLedgerService creates a LedgerService and seeds the default category
// taxonomy when none exists yet.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, logger zerolog.Logger, opts ...LedgerOption) (*LedgerService, error) {
	s := &LedgerService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := repo.EnsureDefaultCategories(context.Background()); err != nil {
		return nil, fmt.Errorf("seed default categories: %w", err)
	}
	return s, nil
}

// RegisterPayable validates and appends a new payable, assigning the next
// sequential CP id.
func (s *LedgerService) RegisterPayable(ctx context.Context, req dto.RegisterPayableRequest) (*domain.LedgerEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return s.register(ctx, domain.KindPayable, req.Description, req.Category, req.Amount, req.DueDate, req.Supplier, req.Notes, req.Actor)
}

// RegisterReceivable validates and appends a new receivable, assigning the
// next sequential CR id. The payer name is required.
func (s *LedgerService) RegisterReceivable(ctx context.Context, req dto.RegisterReceivableRequest) (*domain.LedgerEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return s.register(ctx, domain.KindReceivable, req.Description, req.Category, req.Amount, req.DueDate, req.Payer, req.Notes, req.Actor)
}

func (s *LedgerService) register(ctx context.Context, kind domain.LedgerKind, description, category string, amount decimal.Decimal, dueDate, counterparty, notes, actor string) (*domain.LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if !domain.ValidDate(dueDate) {
		return nil, fmt.Errorf("%w: due date %q is not a valid %s date", apperrors.ErrValidation, dueDate, domain.DateLayout)
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if _, ok := categories.ForKind(kind)[category]; !ok {
		return nil, fmt.Errorf("%w: unknown %s category %q", apperrors.ErrValidation, kind, category)
	}

	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s entries: %w", kind, err)
	}

	now := s.now()
	entry := domain.LedgerEntry{
		ID:           nextEntryID(entries, kind.IDPrefix()),
		Description:  description,
		Category:     category,
		Amount:       amount,
		DueDate:      dueDate,
		Status:       domain.StatusPending,
		DueStatus:    domain.ResolveDueStatus(dueDate, now),
		Counterparty: counterparty,
		Notes:        notes,
		Active:       true,
		AuditFields:  domain.NewAuditFields(now, actor),
	}
	if err := s.repo.AppendEntry(ctx, kind, entry); err != nil {
		return nil, fmt.Errorf("save %s entry: %w", kind, err)
	}

	s.logger.Info().
		Str("id", entry.ID).
		Str("kind", string(kind)).
		Str("category", category).
		Str("amount", amount.String()).
		Str("due_date", dueDate).
		Msg("ledger entry registered")
	return &entry, nil
}

// nextEntryID returns the next sequential id for the kind prefix. Ids
// strictly increase and are never reused, including past soft-deleted entries.
func nextEntryID(entries []domain.LedgerEntry, prefix string) string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return nextCode(prefix, ids)
}

// ListPayables returns active payables matching the filter, sorted by due
// date ascending. Listing is read-only; see RefreshDueStatuses.
func (s *LedgerService) ListPayables(ctx context.Context, filter dto.EntryFilter) ([]domain.LedgerEntry, error) {
	return s.list(ctx, domain.KindPayable, filter)
}

// ListReceivables is the receivable counterpart of ListPayables.
func (s *LedgerService) ListReceivables(ctx context.Context, filter dto.EntryFilter) ([]domain.LedgerEntry, error) {
	return s.list(ctx, domain.KindReceivable, filter)
}

func (s *LedgerService) list(ctx context.Context, kind domain.LedgerKind, filter dto.EntryFilter) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s entries: %w", kind, err)
	}
	filtered := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Active {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].DueDate < filtered[j].DueDate })
	return filtered, nil
}

// RefreshDueStatuses recomputes the due-status of every active unsettled
// entry against ref and persists both collections. Callers run this before
// reporting; listing itself never writes.
func (s *LedgerService) RefreshDueStatuses(ctx context.Context, ref time.Time) error {
	for _, kind := range []domain.LedgerKind{domain.KindPayable, domain.KindReceivable} {
		entries, err := s.repo.ListEntries(ctx, kind)
		if err != nil {
			return fmt.Errorf("load %s entries: %w", kind, err)
		}
		changed := false
		for i := range entries {
			e := &entries[i]
			if !e.Active || e.Settled() {
				continue
			}
			if next := domain.ResolveDueStatus(e.DueDate, ref); next != e.DueStatus {
				e.DueStatus = next
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := s.repo.ReplaceEntries(ctx, kind, entries); err != nil {
			return fmt.Errorf("persist refreshed %s entries: %w", kind, err)
		}
	}
	return nil
}

// Search returns active entries of the given kind whose id, description or
// counterparty contains term, case-insensitively.
func (s *LedgerService) Search(ctx context.Context, kind domain.LedgerKind, term string) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s entries: %w", kind, err)
	}
	needle := strings.ToLower(term)
	matches := make([]domain.LedgerEntry, 0)
	for _, e := range entries {
		if !e.Active {
			continue
		}
		if strings.Contains(strings.ToLower(e.ID), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strings.Contains(strings.ToLower(e.Counterparty), needle) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// RecordPayment settles a payable. An empty settlement date defaults to today.
func (s *LedgerService) RecordPayment(ctx context.Context, req dto.SettleRequest) (*domain.LedgerEntry, error) {
	return s.settle(ctx, domain.KindPayable, req)
}

// RecordReceipt settles a receivable. An empty settlement date defaults to today.
func (s *LedgerService) RecordReceipt(ctx context.Context, req dto.SettleRequest) (*domain.LedgerEntry, error) {
	return s.settle(ctx, domain.KindReceivable, req)
}

func (s *LedgerService) settle(ctx context.Context, kind domain.LedgerKind, req dto.SettleRequest) (*domain.LedgerEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	settledOn := req.SettlementDate
	if settledOn == "" {
		settledOn = s.now().Format(domain.DateLayout)
	}
	if !domain.ValidDate(settledOn) {
		return nil, fmt.Errorf("%w: settlement date %q is not a valid %s date", apperrors.ErrValidation, settledOn, domain.DateLayout)
	}

	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s entries: %w", kind, err)
	}
	idx := indexOfActive(entries, req.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s entry %s", apperrors.ErrNotFound, kind, req.ID)
	}
	entry := &entries[idx]
	if entry.Settled() {
		return nil, fmt.Errorf("%w: entry %s is already %s", apperrors.ErrConflict, entry.ID, entry.Status)
	}

	entry.Status = kind.SettledStatus()
	entry.DueStatus = domain.DueStatus(entry.Status)
	entry.SettledOn = &settledOn
	entry.SettledBy = req.Actor
	entry.Touch(s.now(), req.Actor)

	if err := s.repo.ReplaceEntries(ctx, kind, entries); err != nil {
		return nil, fmt.Errorf("persist settled %s entry: %w", kind, err)
	}

	s.logger.Info().
		Str("id", entry.ID).
		Str("kind", string(kind)).
		Str("settled_on", settledOn).
		Str("actor", req.Actor).
		Msg("ledger entry settled")
	settled := *entry
	return &settled, nil
}

// Deactivate soft-deletes an entry. The entry stays in the persisted file for
// audit but disappears from listings, searches and aggregates. Deactivating an
// unknown or already-inactive entry fails.
func (s *LedgerService) Deactivate(ctx context.Context, kind domain.LedgerKind, id, actor string) error {
	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return fmt.Errorf("load %s entries: %w", kind, err)
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if !entries[i].Active {
			return fmt.Errorf("%w: entry %s is already inactive", apperrors.ErrConflict, id)
		}
		entries[i].Active = false
		entries[i].Touch(s.now(), actor)
		if err := s.repo.ReplaceEntries(ctx, kind, entries); err != nil {
			return fmt.Errorf("persist deactivated %s entry: %w", kind, err)
		}
		s.logger.Info().Str("id", id).Str("kind", string(kind)).Str("actor", actor).Msg("ledger entry deactivated")
		return nil
	}
	return fmt.Errorf("%w: %s entry %s", apperrors.ErrNotFound, kind, id)
}

func indexOfActive(entries []domain.LedgerEntry, id string) int {
	for i := range entries {
		if entries[i].ID == id && entries[i].Active {
			return i
		}
	}
	return -1
}
