package domain

import "github.com/shopspring/decimal"

// CategoryTotals is a per-category subtotal within a period summary.
type CategoryTotals struct {
	Total   decimal.Decimal `json:"total"`
	Settled decimal.Decimal `json:"settled"`
	Pending decimal.Decimal `json:"pending"`
}

// EntryCounts carries record counts for one ledger kind within a summary.
type EntryCounts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Settled int `json:"settled"`
	Overdue int `json:"overdue"`
}

// PeriodSummary is the due-date-scoped obligation report: totals, settled and
// pending amounts, overdue sets and per-category subtotals over the active
// entries whose due date falls within the (optionally open-ended) bounds.
type PeriodSummary struct {
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	GeneratedAt string `json:"generatedAt"`

	TotalPayable    decimal.Decimal `json:"totalPayable"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`

	PaidTotal     decimal.Decimal `json:"paidTotal"`
	ReceivedTotal decimal.Decimal `json:"receivedTotal"`

	PendingPayable    decimal.Decimal `json:"pendingPayable"`
	PendingReceivable decimal.Decimal `json:"pendingReceivable"`

	OverduePayable    decimal.Decimal `json:"overduePayable"`
	OverdueReceivable decimal.Decimal `json:"overdueReceivable"`

	// NetBalance is received minus paid; ProjectedBalance is total receivable
	// minus total payable.
	NetBalance       decimal.Decimal `json:"netBalance"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`

	PayableCounts    EntryCounts `json:"payableCounts"`
	ReceivableCounts EntryCounts `json:"receivableCounts"`

	PayableByCategory    map[string]CategoryTotals `json:"payableByCategory"`
	ReceivableByCategory map[string]CategoryTotals `json:"receivableByCategory"`

	OverduePayables    []LedgerEntry `json:"overduePayables"`
	OverdueReceivables []LedgerEntry `json:"overdueReceivables"`
}

// DueAlert pairs an unsettled entry with its ledger kind.
type DueAlert struct {
	Kind  LedgerKind  `json:"kind"`
	Entry LedgerEntry `json:"entry"`
}

// DueAlerts buckets unsettled active entries by urgency.
type DueAlerts struct {
	DueToday   []DueAlert `json:"dueToday"`
	DueIn7Days []DueAlert `json:"dueIn7Days"`
	Overdue    []DueAlert `json:"overdue"`
}
