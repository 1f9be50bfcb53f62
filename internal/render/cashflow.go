package render

import (
	"fmt"
	"strings"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

const tableWidth = 80

// CashFlow renders a statement as a fixed-width text table: a header naming
// the period, a summary block with a signed balance marker, and itemized
// inflow/outflow tables with truncated columns.
func CashFlow(st *domain.CashFlowStatement) string {
	var b strings.Builder
	rule := strings.Repeat("=", tableWidth)

	b.WriteString(rule + "\n")
	b.WriteString("CASH FLOW - " + periodLabel(st.Period) + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "   Inflows:  %d transactions - %s\n", st.Inflows.Count, FormatBRL(st.Inflows.Total))
	fmt.Fprintf(&b, "   Outflows: %d transactions - %s\n", st.Outflows.Count, FormatBRL(st.Outflows.Total))
	if st.Balance.IsNegative() {
		fmt.Fprintf(&b, "   Balance: %s (-)\n", FormatBRL(st.Balance))
	} else {
		fmt.Fprintf(&b, "   Balance: +%s (+)\n", FormatBRL(st.Balance))
	}

	writeSide(&b, "INFLOWS (Received Income)", "Payer", st.Inflows)
	writeSide(&b, "OUTFLOWS (Paid Expenses)", "Supplier", st.Outflows)

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

func periodLabel(p domain.CashFlowPeriod) string {
	switch p.Kind {
	case domain.PeriodDay:
		return p.Date
	case domain.PeriodMonth:
		return fmt.Sprintf("%s/%d", p.MonthName, p.Year)
	default:
		return fmt.Sprintf("%s to %s", p.Start, p.End)
	}
}

func writeSide(b *strings.Builder, title, counterpartyHeader string, side domain.CashFlowSide) {
	b.WriteString("\n")
	if len(side.Transactions) == 0 {
		b.WriteString(title + ": no transactions found\n")
		return
	}

	dash := strings.Repeat("-", tableWidth)
	b.WriteString(title + ":\n")
	b.WriteString(dash + "\n")
	fmt.Fprintf(b, "%-8s %-20s %-25s %-12s %s\n", "ID", counterpartyHeader, "Description", "Amount", "Date")
	b.WriteString(dash + "\n")
	for _, e := range side.Transactions {
		settledOn := "N/A"
		if e.SettledOn != nil {
			settledOn = *e.SettledOn
		}
		fmt.Fprintf(b, "%-8s %-20s %-25s %-12s %s\n",
			e.ID,
			Truncate(e.Counterparty, 18),
			Truncate(e.Description, 23),
			FormatBRL(e.Amount),
			settledOn,
		)
	}
}

// Truncate cuts s to at most max bytes for fixed-width table columns.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
