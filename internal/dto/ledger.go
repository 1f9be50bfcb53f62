package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// RegisterPayableRequest defines the data needed to register a payable.
// Amount positivity and due date format are checked by the service since
// neither is expressible as a struct tag on a decimal.
type RegisterPayableRequest struct {
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate" validate:"required"`
	Supplier    string          `json:"supplier"` // optional
	Notes       string          `json:"notes"`
	Actor       string          `json:"actor" validate:"required"`
}

// RegisterReceivableRequest defines the data needed to register a receivable.
// Unlike payables, the counterparty (payer) is required.
type RegisterReceivableRequest struct {
	Payer       string          `json:"payer" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate" validate:"required"`
	Notes       string          `json:"notes"`
	Actor       string          `json:"actor" validate:"required"`
}

// EntryFilter holds optional exact-match listing filters. Nil means no filter.
type EntryFilter struct {
	Status   *domain.SettlementStatus
	Category *string
}

// SettleRequest records a payment or receipt against an entry.
// An empty SettlementDate defaults to today.
type SettleRequest struct {
	ID             string `json:"id" validate:"required"`
	SettlementDate string `json:"settlementDate"`
	Actor          string `json:"actor" validate:"required"`
}
