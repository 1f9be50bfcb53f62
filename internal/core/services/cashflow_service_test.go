package services_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/core/services"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

// settledPayable registers a payable and immediately records its payment.
func settledPayable(t *testing.T, svc *services.LedgerService, amount, dueDate, paidOn string) {
	t.Helper()
	ctx := context.Background()
	entry, err := svc.RegisterPayable(ctx, payableReq("Expense", amount, dueDate))
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, dto.SettleRequest{ID: entry.ID, SettlementDate: paidOn, Actor: "maria"})
	require.NoError(t, err)
}

func settledReceivable(t *testing.T, svc *services.LedgerService, amount, dueDate, receivedOn string) {
	t.Helper()
	ctx := context.Background()
	entry, err := svc.RegisterReceivable(ctx, dto.RegisterReceivableRequest{
		Payer:       "Cliente Silva",
		Description: "Income",
		Category:    "sale",
		Amount:      decimal.RequireFromString(amount),
		DueDate:     dueDate,
		Actor:       "maria",
	})
	require.NoError(t, err)
	_, err = svc.RecordReceipt(ctx, dto.SettleRequest{ID: entry.ID, SettlementDate: receivedOn, Actor: "maria"})
	require.NoError(t, err)
}

func TestDailyCashFlowKeysBySettlementDate(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	// Due in early March, paid on the 10th. Cash flow must follow the payment
	// date, not the due date.
	settledPayable(t, ledger, "1500.00", "2024-03-05", "2024-03-10")
	settledReceivable(t, ledger, "2000.00", "2024-03-08", "2024-03-10")

	// Pending entries and other days stay out.
	_, err := ledger.RegisterPayable(ctx, payableReq("Pending", "999.00", "2024-03-10"))
	require.NoError(t, err)
	settledPayable(t, ledger, "50.00", "2024-03-05", "2024-03-11")

	statement, err := cashflow.Daily(ctx, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodDay, statement.Period.Kind)
	assert.Equal(t, 1, statement.Outflows.Count)
	assert.True(t, statement.Outflows.Total.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, 1, statement.Inflows.Count)
	assert.True(t, statement.Inflows.Total.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, statement.Balance.Equal(decimal.RequireFromString("500.00")))
	assert.Nil(t, statement.DailySeries)
}

func TestCashFlowTotalsAreExact(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	// 0.10 + 0.20 must come out as exactly 0.30.
	settledPayable(t, ledger, "0.10", "2024-03-01", "2024-03-10")
	settledPayable(t, ledger, "0.20", "2024-03-01", "2024-03-10")

	statement, err := cashflow.Daily(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "0.3", statement.Outflows.Total.String())
	assert.True(t, statement.Outflows.Total.Equal(decimal.RequireFromString("0.30")))
}

func TestMonthlyCashFlowCoversWholeMonth(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	// 2024 is a leap year; Feb 29 must be inside the month window.
	settledPayable(t, ledger, "100.00", "2024-02-01", "2024-02-01")
	settledPayable(t, ledger, "200.00", "2024-02-15", "2024-02-29")
	settledReceivable(t, ledger, "500.00", "2024-02-10", "2024-02-15")
	settledPayable(t, ledger, "999.00", "2024-03-01", "2024-03-01")

	statement, err := cashflow.Monthly(ctx, 2024, 2)
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodMonth, statement.Period.Kind)
	assert.Equal(t, "2024-02-01", statement.Period.Start)
	assert.Equal(t, "2024-02-29", statement.Period.End)
	assert.Equal(t, "February", statement.Period.MonthName)
	assert.Equal(t, 2, statement.Outflows.Count)
	assert.True(t, statement.Balance.Equal(decimal.RequireFromString("200.00")))

	// Monthly statements carry the category breakdown and the day series.
	require.Contains(t, statement.OutflowsByCategory, "rent")
	assert.True(t, statement.OutflowsByCategory["rent"].Equal(decimal.RequireFromString("300.00")))
	require.Contains(t, statement.InflowsByCategory, "sale")

	require.Len(t, statement.DailySeries, 3)
	assert.Equal(t, "2024-02-01", statement.DailySeries[0].Date)
	assert.True(t, statement.DailySeries[0].Balance.Equal(decimal.RequireFromString("-100.00")))
	assert.Equal(t, "2024-02-15", statement.DailySeries[1].Date)
	assert.True(t, statement.DailySeries[1].Balance.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, "2024-02-29", statement.DailySeries[2].Date)
}

func TestMonthlyCashFlowRejectsBadMonth(t *testing.T) {
	_, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	_, err := cashflow.Monthly(context.Background(), 2024, 13)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = cashflow.Monthly(context.Background(), 2024, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRangeCashFlowBoundsAreInclusive(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	settledPayable(t, ledger, "10.00", "2024-03-01", "2024-03-01")
	settledPayable(t, ledger, "20.00", "2024-03-01", "2024-03-15")
	settledPayable(t, ledger, "40.00", "2024-03-01", "2024-03-16")

	statement, err := cashflow.Range(ctx, "2024-03-01", "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2, statement.Outflows.Count)
	assert.True(t, statement.Outflows.Total.Equal(decimal.RequireFromString("30.00")))
}

func TestRangeCashFlowRejectsInvertedBounds(t *testing.T) {
	_, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	_, err := cashflow.Range(context.Background(), "2024-03-15", "2024-03-01")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = cashflow.Range(context.Background(), "bad", "2024-03-01")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCashFlowIgnoresDeactivatedEntries(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedgerFixture(t)
	cashflow := services.NewCashFlowService(store, zerolog.Nop())

	settledPayable(t, ledger, "100.00", "2024-03-01", "2024-03-10")

	entries, err := store.ListEntries(ctx, domain.KindPayable)
	require.NoError(t, err)
	entries[0].Active = false
	require.NoError(t, store.ReplaceEntries(ctx, domain.KindPayable, entries))

	statement, err := cashflow.Daily(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, statement.Outflows.Count)
	assert.True(t, statement.Balance.IsZero())
}
