package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
)

// CashFlowService reconstructs realized cash movement from settlement dates.
// Unsettled entries never appear in a statement regardless of due date.
type CashFlowService struct {
	repo   portsrepo.LedgerReader
	logger zerolog.Logger
}

func NewCashFlowService(repo portsrepo.LedgerReader, logger zerolog.Logger) *CashFlowService {
	return &CashFlowService{repo: repo, logger: logger}
}

// Daily returns the statement for a single settlement day.
func (s *CashFlowService) Daily(ctx context.Context, date string) (*domain.CashFlowStatement, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q is not a valid %s date", apperrors.ErrValidation, date, domain.DateLayout)
	}
	period := domain.CashFlowPeriod{
		Kind:  domain.PeriodDay,
		Date:  date,
		Start: date,
		End:   date,
	}
	return s.build(ctx, period, false)
}

// Monthly returns the statement for a calendar month, including per-category
// breakdowns and the day-by-day series.
func (s *CashFlowService) Monthly(ctx context.Context, year, month int) (*domain.CashFlowStatement, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", apperrors.ErrValidation, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	period := domain.CashFlowPeriod{
		Kind:      domain.PeriodMonth,
		Year:      year,
		Month:     month,
		MonthName: first.Month().String(),
		Start:     first.Format(domain.DateLayout),
		End:       last.Format(domain.DateLayout),
	}
	return s.build(ctx, period, true)
}

// Range returns the statement for an arbitrary inclusive settlement window.
func (s *CashFlowService) Range(ctx context.Context, start, end string) (*domain.CashFlowStatement, error) {
	if !domain.ValidDate(start) {
		return nil, fmt.Errorf("%w: start date %q is not a valid %s date", apperrors.ErrValidation, start, domain.DateLayout)
	}
	if !domain.ValidDate(end) {
		return nil, fmt.Errorf("%w: end date %q is not a valid %s date", apperrors.ErrValidation, end, domain.DateLayout)
	}
	if start > end {
		return nil, fmt.Errorf("%w: range start %s is after end %s", apperrors.ErrConflict, start, end)
	}
	period := domain.CashFlowPeriod{
		Kind:  domain.PeriodRange,
		Start: start,
		End:   end,
	}
	return s.build(ctx, period, false)
}

func (s *CashFlowService) build(ctx context.Context, period domain.CashFlowPeriod, withBreakdown bool) (*domain.CashFlowStatement, error) {
	outflows, err := s.settledSide(ctx, domain.KindPayable, period)
	if err != nil {
		return nil, err
	}
	inflows, err := s.settledSide(ctx, domain.KindReceivable, period)
	if err != nil {
		return nil, err
	}

	statement := &domain.CashFlowStatement{
		Period:   period,
		Inflows:  inflows,
		Outflows: outflows,
		Balance:  inflows.Total.Sub(outflows.Total),
	}
	if withBreakdown {
		statement.InflowsByCategory = byCategory(inflows.Transactions)
		statement.OutflowsByCategory = byCategory(outflows.Transactions)
		statement.DailySeries = dailySeries(inflows.Transactions, outflows.Transactions)
	}

	s.logger.Debug().
		Str("kind", string(period.Kind)).
		Str("start", period.Start).
		Str("end", period.End).
		Str("balance", statement.Balance.String()).
		Msg("cash flow statement built")
	return statement, nil
}

// settledSide selects the active settled entries of kind whose settlement
// date falls within the period, sorted by settlement date then id.
func (s *CashFlowService) settledSide(ctx context.Context, kind domain.LedgerKind, period domain.CashFlowPeriod) (domain.CashFlowSide, error) {
	entries, err := s.repo.ListEntries(ctx, kind)
	if err != nil {
		return domain.CashFlowSide{}, fmt.Errorf("load %s entries: %w", kind, err)
	}
	side := domain.CashFlowSide{Transactions: []domain.LedgerEntry{}}
	for _, e := range entries {
		if !e.Active || !e.Settled() || e.SettledOn == nil {
			continue
		}
		if *e.SettledOn < period.Start || *e.SettledOn > period.End {
			continue
		}
		side.Transactions = append(side.Transactions, e)
		side.Total = side.Total.Add(e.Amount)
		side.Count++
	}
	sort.SliceStable(side.Transactions, func(i, j int) bool {
		a, b := side.Transactions[i], side.Transactions[j]
		if *a.SettledOn != *b.SettledOn {
			return *a.SettledOn < *b.SettledOn
		}
		return a.ID < b.ID
	})
	return side, nil
}

func byCategory(entries []domain.LedgerEntry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// dailySeries folds both sides into per-day points, sorted by date. Only days
// with at least one settlement appear.
func dailySeries(inflows, outflows []domain.LedgerEntry) []domain.DailyCashPoint {
	points := make(map[string]*domain.DailyCashPoint)
	day := func(date string) *domain.DailyCashPoint {
		p, ok := points[date]
		if !ok {
			p = &domain.DailyCashPoint{Date: date}
			points[date] = p
		}
		return p
	}
	for _, e := range inflows {
		p := day(*e.SettledOn)
		p.Inflow = p.Inflow.Add(e.Amount)
	}
	for _, e := range outflows {
		p := day(*e.SettledOn)
		p.Outflow = p.Outflow.Add(e.Amount)
	}
	series := make([]domain.DailyCashPoint, 0, len(points))
	for _, p := range points {
		p.Balance = p.Inflow.Sub(p.Outflow)
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
