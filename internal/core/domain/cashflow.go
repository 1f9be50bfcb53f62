package domain

import "github.com/shopspring/decimal"

// CashFlowPeriodKind identifies which reconstruction produced a statement.
type CashFlowPeriodKind string

const (
	PeriodDay   CashFlowPeriodKind = "day"
	PeriodMonth CashFlowPeriodKind = "month"
	PeriodRange CashFlowPeriodKind = "range"
)

// CashFlowPeriod describes the settlement-date window of a statement.
// Date is set for daily statements; Year/Month/MonthName for monthly ones;
// Start and End are always populated.
type CashFlowPeriod struct {
	Kind      CashFlowPeriodKind `json:"kind"`
	Date      string             `json:"date,omitempty"`
	Year      int                `json:"year,omitempty"`
	Month     int                `json:"month,omitempty"`
	MonthName string             `json:"monthName,omitempty"`
	Start     string             `json:"start"`
	End       string             `json:"end"`
}

// CashFlowSide is one direction of realized movement: the settled entries
// whose settlement date falls inside the period, with their exact total.
type CashFlowSide struct {
	Transactions []LedgerEntry   `json:"transactions"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// DailyCashPoint is one day of a monthly statement's chart series.
type DailyCashPoint struct {
	Date    string          `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

// CashFlowStatement is realized cash movement keyed by settlement date (not
// due date): inflows are received receivables, outflows are paid payables.
// ByCategory maps and the day series are populated for monthly statements only.
type CashFlowStatement struct {
	Period   CashFlowPeriod `json:"period"`
	Inflows  CashFlowSide   `json:"inflows"`
	Outflows CashFlowSide   `json:"outflows"`
	// Balance is inflow total minus outflow total.
	Balance decimal.Decimal `json:"balance"`

	InflowsByCategory  map[string]decimal.Decimal `json:"inflowsByCategory,omitempty"`
	OutflowsByCategory map[string]decimal.Decimal `json:"outflowsByCategory,omitempty"`
	DailySeries        []DailyCashPoint           `json:"dailySeries,omitempty"`
}
