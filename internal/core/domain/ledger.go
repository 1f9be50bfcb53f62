package domain

import "github.com/shopspring/decimal"

// LedgerKind distinguishes the two ledger collections.
type LedgerKind string

const (
	KindPayable    LedgerKind = "payable"
	KindReceivable LedgerKind = "receivable"
)

// IDPrefix returns the sequential-id prefix for the kind (CP001, CR001, ...).
func (k LedgerKind) IDPrefix() string {
	if k == KindPayable {
		return "CP"
	}
	return "CR"
}

// SettledStatus returns the terminal settlement status for the kind.
func (k LedgerKind) SettledStatus() SettlementStatus {
	if k == KindPayable {
		return StatusPaid
	}
	return StatusReceived
}

// SettlementStatus is the lifecycle status of a ledger entry.
type SettlementStatus string

const (
	StatusPending  SettlementStatus = "pending"
	StatusPaid     SettlementStatus = "paid"
	StatusReceived SettlementStatus = "received"
)

// LedgerEntry is a payable or receivable record tracked from registration
// through settlement. Payables and receivables are persisted in separate
// collections; the Counterparty holds the supplier name for payables (may be
// empty) and the payer name for receivables (required).
type LedgerEntry struct {
	ID           string           `json:"id"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Amount       decimal.Decimal  `json:"amount"`
	DueDate      string           `json:"dueDate"`
	Status       SettlementStatus `json:"status"`
	DueStatus    DueStatus        `json:"dueStatus"`
	Counterparty string           `json:"counterparty"`
	Notes        string           `json:"notes"`
	SettledOn    *string          `json:"settledOn"` // nil until settled
	SettledBy    string           `json:"settledBy,omitempty"`
	Active       bool             `json:"active"`
	AuditFields
}

// Settled reports whether the entry has been paid or received.
func (e *LedgerEntry) Settled() bool {
	return e.Status == StatusPaid || e.Status == StatusReceived
}
