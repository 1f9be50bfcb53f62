package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
)

// ReportingService aggregates ledger entries by due date into period
// summaries and urgency-bucketed alerts. It never writes.
type ReportingService struct {
	repo   portsrepo.LedgerReader
	logger zerolog.Logger
}

func NewReportingService(repo portsrepo.LedgerReader, logger zerolog.Logger) *ReportingService {
	return &ReportingService{repo: repo, logger: logger}
}

// Summarize builds a period summary over active entries whose due date falls
// within [start, end]. Either bound may be empty to leave the range open on
// that side; overdue classification is resolved against ref.
func (s *ReportingService) Summarize(ctx context.Context, start, end string, ref time.Time) (*domain.PeriodSummary, error) {
	if start != "" && !domain.ValidDate(start) {
		return nil, fmt.Errorf("%w: start date %q is not a valid %s date", apperrors.ErrValidation, start, domain.DateLayout)
	}
	if end != "" && !domain.ValidDate(end) {
		return nil, fmt.Errorf("%w: end date %q is not a valid %s date", apperrors.ErrValidation, end, domain.DateLayout)
	}
	if start != "" && end != "" && start > end {
		return nil, fmt.Errorf("%w: period start %s is after end %s", apperrors.ErrConflict, start, end)
	}

	summary := &domain.PeriodSummary{
		Start:                start,
		End:                  end,
		GeneratedAt:          ref.Format(domain.TimestampLayout),
		PayableByCategory:    make(map[string]domain.CategoryTotals),
		ReceivableByCategory: make(map[string]domain.CategoryTotals),
		OverduePayables:      []domain.LedgerEntry{},
		OverdueReceivables:   []domain.LedgerEntry{},
	}

	payables, err := s.inPeriod(ctx, domain.KindPayable, start, end)
	if err != nil {
		return nil, err
	}
	receivables, err := s.inPeriod(ctx, domain.KindReceivable, start, end)
	if err != nil {
		return nil, err
	}

	for _, e := range payables {
		summary.TotalPayable = summary.TotalPayable.Add(e.Amount)
		summary.PayableCounts.Total++
		accumulate(summary.PayableByCategory, e)
		if e.Settled() {
			summary.PaidTotal = summary.PaidTotal.Add(e.Amount)
			summary.PayableCounts.Settled++
			continue
		}
		summary.PendingPayable = summary.PendingPayable.Add(e.Amount)
		summary.PayableCounts.Pending++
		if domain.ResolveDueStatus(e.DueDate, ref) == domain.DueOverdue {
			summary.OverduePayable = summary.OverduePayable.Add(e.Amount)
			summary.PayableCounts.Overdue++
			summary.OverduePayables = append(summary.OverduePayables, e)
		}
	}
	for _, e := range receivables {
		summary.TotalReceivable = summary.TotalReceivable.Add(e.Amount)
		summary.ReceivableCounts.Total++
		accumulate(summary.ReceivableByCategory, e)
		if e.Settled() {
			summary.ReceivedTotal = summary.ReceivedTotal.Add(e.Amount)
			summary.ReceivableCounts.Settled++
			continue
		}
		summary.PendingReceivable = summary.PendingReceivable.Add(e.Amount)
		summary.ReceivableCounts.Pending++
		if domain.ResolveDueStatus(e.DueDate, ref) == domain.DueOverdue {
			summary.OverdueReceivable = summary.OverdueReceivable.Add(e.Amount)
			summary.ReceivableCounts.Overdue++
			summary.OverdueReceivables = append(summary.OverdueReceivables, e)
		}
	}

	summary.NetBalance = summary.ReceivedTotal.Sub(summary.PaidTotal)
	summary.ProjectedBalance = summary.TotalReceivable.Sub(summary.TotalPayable)

	s.logger.Debug().
		Str("start", start).
		Str("end", end).
		Int("payables", summary.PayableCounts.Total).
		Int("receivables", summary.ReceivableCounts.Total).
		Msg("period summary generated")
	return summary, nil
}

// DueAlerts buckets every unsettled active entry by urgency against ref.
// Entries with unparseable due dates are skipped.
func (s *ReportingService) DueAlerts(ctx context.Context, ref time.Time) (*domain.DueAlerts, error) {
	alerts := &domain.DueAlerts{
		DueToday:   []domain.DueAlert{},
		DueIn7Days: []domain.DueAlert{},
		Overdue:    []domain.DueAlert{},
	}
	for _, kind := range []domain.LedgerKind{domain.KindPayable, domain.KindReceivable} {
		entries, err := s.repo.ListEntries(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s entries: %w", kind, err)
		}
		for _, e := range entries {
			if !e.Active || e.Settled() {
				continue
			}
			alert := domain.DueAlert{Kind: kind, Entry: e}
			switch domain.ResolveDueStatus(e.DueDate, ref) {
			case domain.DueToday:
				alerts.DueToday = append(alerts.DueToday, alert)
			case domain.DueSoon:
				alerts.DueIn7Days = append(alerts.DueIn7Days, alert)
			case domain.DueOverdue:
				alerts.Overdue = append(alerts.Overdue, alert)
			}
		}
	}
	return alerts, nil
}

// inPeriod returns active entries of kind whose due date string falls within
// the bounds. Due dates are compared lexically, which matches chronological
// order for the fixed date layout.
func (s *ReportingService) inPeriod(ctx context.Context, kind domain.LedgerKind, start, end string) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s entries: %w", kind, err)
	}
	selected := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Active {
			continue
		}
		if start != "" && e.DueDate < start {
			continue
		}
		if end != "" && e.DueDate > end {
			continue
		}
		selected = append(selected, e)
	}
	return selected, nil
}

func accumulate(byCategory map[string]domain.CategoryTotals, e domain.LedgerEntry) {
	totals := byCategory[e.Category]
	totals.Total = totals.Total.Add(e.Amount)
	if e.Settled() {
		totals.Settled = totals.Settled.Add(e.Amount)
	} else {
		totals.Pending = totals.Pending.Add(e.Amount)
	}
	byCategory[e.Category] = totals
}
