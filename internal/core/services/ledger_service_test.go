package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

func payableReq(description, amount, dueDate string) dto.RegisterPayableRequest {
	return dto.RegisterPayableRequest{
		Description: description,
		Category:    "rent",
		Amount:      decimal.RequireFromString(amount),
		DueDate:     dueDate,
		Supplier:    "ACME Imoveis",
		Actor:       "maria",
	}
}

func TestRegisterPayableAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	first, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, "CP001", first.ID)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, domain.DueOverdue, first.DueStatus)
	assert.True(t, first.Active)
	assert.Equal(t, "maria", first.CreatedBy)

	second, err := svc.RegisterPayable(ctx, payableReq("Water bill", "89.90", "2024-04-01"))
	require.NoError(t, err)
	assert.Equal(t, "CP002", second.ID)

	receivable, err := svc.RegisterReceivable(ctx, dto.RegisterReceivableRequest{
		Payer:       "Cliente Silva",
		Description: "Consulting",
		Category:    "service",
		Amount:      decimal.RequireFromString("800.00"),
		DueDate:     "2024-04-10",
		Actor:       "maria",
	})
	require.NoError(t, err)
	assert.Equal(t, "CR001", receivable.ID)
}

func TestRegisterPayableIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	first, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, domain.KindPayable, first.ID, "maria"))

	next, err := svc.RegisterPayable(ctx, payableReq("Water bill", "89.90", "2024-04-01"))
	require.NoError(t, err)
	assert.Equal(t, "CP002", next.ID)
}

func TestRegisterPayableRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	testCases := []struct {
		name string
		req  dto.RegisterPayableRequest
	}{
		{name: "zero amount", req: payableReq("Rent", "0", "2024-03-05")},
		{name: "negative amount", req: payableReq("Rent", "-10.00", "2024-03-05")},
		{name: "bad due date", req: payableReq("Rent", "100.00", "05/03/2024")},
		{name: "impossible due date", req: payableReq("Rent", "100.00", "2024-02-31")},
		{
			name: "unknown category",
			req: dto.RegisterPayableRequest{
				Description: "Rent", Category: "nope",
				Amount: decimal.RequireFromString("100.00"), DueDate: "2024-03-05", Actor: "maria",
			},
		},
		{
			name: "missing description",
			req: dto.RegisterPayableRequest{
				Category: "rent", Amount: decimal.RequireFromString("100.00"),
				DueDate: "2024-03-05", Actor: "maria",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterPayable(ctx, tc.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	entries, err := svc.ListPayables(ctx, dto.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListPayablesFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	_, err := svc.RegisterPayable(ctx, payableReq("Later", "10.00", "2024-05-01"))
	require.NoError(t, err)
	_, err = svc.RegisterPayable(ctx, payableReq("Sooner", "20.00", "2024-03-01"))
	require.NoError(t, err)
	water := payableReq("Water", "30.00", "2024-04-01")
	water.Category = "water"
	_, err = svc.RegisterPayable(ctx, water)
	require.NoError(t, err)

	entries, err := svc.ListPayables(ctx, dto.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Sooner", entries[0].Description)
	assert.Equal(t, "Water", entries[1].Description)
	assert.Equal(t, "Later", entries[2].Description)

	rent := "rent"
	byCategory, err := svc.ListPayables(ctx, dto.EntryFilter{Category: &rent})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	_, err = svc.RecordPayment(ctx, dto.SettleRequest{ID: entries[0].ID, Actor: "maria"})
	require.NoError(t, err)
	pending := domain.StatusPending
	stillPending, err := svc.ListPayables(ctx, dto.EntryFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, stillPending, 2)
}

func TestRecordPaymentSettlesEntry(t *testing.T) {
	ctx := context.Background()
	svc, store := newLedgerFixture(t)

	entry, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)

	settled, err := svc.RecordPayment(ctx, dto.SettleRequest{
		ID:             entry.ID,
		SettlementDate: "2024-03-10",
		Actor:          "maria",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, settled.Status)
	assert.Equal(t, domain.DuePaid, settled.DueStatus)
	require.NotNil(t, settled.SettledOn)
	assert.Equal(t, "2024-03-10", *settled.SettledOn)
	assert.Equal(t, "maria", settled.SettledBy)

	// A second settlement must fail without touching the record.
	_, err = svc.RecordPayment(ctx, dto.SettleRequest{ID: entry.ID, Actor: "maria"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	persisted, err := store.ListEntries(ctx, domain.KindPayable)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, persisted[0].Status)
}

func TestRecordPaymentDefaultsToToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	entry, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)

	settled, err := svc.RecordPayment(ctx, dto.SettleRequest{ID: entry.ID, Actor: "maria"})
	require.NoError(t, err)
	require.NotNil(t, settled.SettledOn)
	assert.Equal(t, fixedNow.Format(domain.DateLayout), *settled.SettledOn)
}

func TestRecordPaymentErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	entry, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, dto.SettleRequest{ID: "CP999", Actor: "maria"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.RecordPayment(ctx, dto.SettleRequest{ID: entry.ID, SettlementDate: "bad", Actor: "maria"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSearchMatchesIDDescriptionAndCounterparty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerFixture(t)

	_, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)
	_, err = svc.RegisterPayable(ctx, payableReq("Water bill", "89.90", "2024-04-01"))
	require.NoError(t, err)

	byDescription, err := svc.Search(ctx, domain.KindPayable, "RENT")
	require.NoError(t, err)
	assert.Len(t, byDescription, 1)

	byID, err := svc.Search(ctx, domain.KindPayable, "cp002")
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	byCounterparty, err := svc.Search(ctx, domain.KindPayable, "acme")
	require.NoError(t, err)
	assert.Len(t, byCounterparty, 2)

	none, err := svc.Search(ctx, domain.KindPayable, "nothing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeactivateHidesButRetainsEntry(t *testing.T) {
	ctx := context.Background()
	svc, store := newLedgerFixture(t)

	entry, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-05"))
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, domain.KindPayable, entry.ID, "admin"))

	listed, err := svc.ListPayables(ctx, dto.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	found, err := svc.Search(ctx, domain.KindPayable, "rent")
	require.NoError(t, err)
	assert.Empty(t, found)

	// The record stays in the collection for audit.
	raw, err := store.ListEntries(ctx, domain.KindPayable)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.False(t, raw[0].Active)
	assert.Equal(t, "admin", raw[0].LastUpdatedBy)

	err = svc.Deactivate(ctx, domain.KindPayable, entry.ID, "admin")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = svc.Deactivate(ctx, domain.KindPayable, "CP999", "admin")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRefreshDueStatuses(t *testing.T) {
	ctx := context.Background()
	svc, store := newLedgerFixture(t)

	entry, err := svc.RegisterPayable(ctx, payableReq("Office rent", "1500.00", "2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, domain.DueSoon, entry.DueStatus)

	settledEntry, err := svc.RegisterPayable(ctx, payableReq("Water bill", "89.90", "2024-03-15"))
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, dto.SettleRequest{ID: settledEntry.ID, Actor: "maria"})
	require.NoError(t, err)

	// A month later the pending entry is overdue; the settled one keeps its
	// terminal status.
	later := time.Date(2024, 4, 20, 9, 0, 0, 0, time.Local)
	require.NoError(t, svc.RefreshDueStatuses(ctx, later))

	entries, err := store.ListEntries(ctx, domain.KindPayable)
	require.NoError(t, err)
	assert.Equal(t, domain.DueOverdue, entries[0].DueStatus)
	assert.Equal(t, domain.DuePaid, entries[1].DueStatus)
}
