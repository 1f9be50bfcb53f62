package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// Summary renders a period summary as a fixed-width text report.
func Summary(s *domain.PeriodSummary) string {
	var b strings.Builder
	rule := strings.Repeat("=", tableWidth)

	b.WriteString(rule + "\n")
	b.WriteString("FINANCIAL SUMMARY - " + rangeLabel(s.Start, s.End) + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("PAYABLES:\n")
	fmt.Fprintf(&b, "   Total:   %s (%d entries)\n", FormatBRL(s.TotalPayable), s.PayableCounts.Total)
	fmt.Fprintf(&b, "   Paid:    %s (%d)\n", FormatBRL(s.PaidTotal), s.PayableCounts.Settled)
	fmt.Fprintf(&b, "   Pending: %s (%d)\n", FormatBRL(s.PendingPayable), s.PayableCounts.Pending)
	fmt.Fprintf(&b, "   Overdue: %s (%d)\n\n", FormatBRL(s.OverduePayable), s.PayableCounts.Overdue)

	b.WriteString("RECEIVABLES:\n")
	fmt.Fprintf(&b, "   Total:    %s (%d entries)\n", FormatBRL(s.TotalReceivable), s.ReceivableCounts.Total)
	fmt.Fprintf(&b, "   Received: %s (%d)\n", FormatBRL(s.ReceivedTotal), s.ReceivableCounts.Settled)
	fmt.Fprintf(&b, "   Pending:  %s (%d)\n", FormatBRL(s.PendingReceivable), s.ReceivableCounts.Pending)
	fmt.Fprintf(&b, "   Overdue:  %s (%d)\n\n", FormatBRL(s.OverdueReceivable), s.ReceivableCounts.Overdue)

	fmt.Fprintf(&b, "Net balance (received - paid):        %s\n", FormatBRL(s.NetBalance))
	fmt.Fprintf(&b, "Projected balance (receivable - payable): %s\n", FormatBRL(s.ProjectedBalance))

	writeCategoryBlock(&b, "PAYABLES BY CATEGORY", s.PayableByCategory)
	writeCategoryBlock(&b, "RECEIVABLES BY CATEGORY", s.ReceivableByCategory)

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// Alerts renders the urgency buckets, most urgent first.
func Alerts(a *domain.DueAlerts) string {
	var b strings.Builder
	writeAlertBlock(&b, "OVERDUE", a.Overdue)
	writeAlertBlock(&b, "DUE TODAY", a.DueToday)
	writeAlertBlock(&b, "DUE IN THE NEXT 7 DAYS", a.DueIn7Days)
	if b.Len() == 0 {
		return "No pending entries need attention.\n"
	}
	return b.String()
}

func rangeLabel(start, end string) string {
	switch {
	case start == "" && end == "":
		return "all entries"
	case start == "":
		return "up to " + end
	case end == "":
		return "from " + start
	default:
		return start + " to " + end
	}
}

func writeCategoryBlock(b *strings.Builder, title string, byCategory map[string]domain.CategoryTotals) {
	if len(byCategory) == 0 {
		return
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	dash := strings.Repeat("-", tableWidth)
	b.WriteString("\n" + title + ":\n")
	b.WriteString(dash + "\n")
	fmt.Fprintf(b, "%-20s %18s %18s %18s\n", "Category", "Total", "Settled", "Pending")
	b.WriteString(dash + "\n")
	for _, c := range categories {
		t := byCategory[c]
		fmt.Fprintf(b, "%-20s %18s %18s %18s\n",
			Truncate(c, 20), FormatBRL(t.Total), FormatBRL(t.Settled), FormatBRL(t.Pending))
	}
}

func writeAlertBlock(b *strings.Builder, title string, alerts []domain.DueAlert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", title, len(alerts))
	for _, a := range alerts {
		e := a.Entry
		fmt.Fprintf(b, "   [%s] %-8s %-25s %12s due %s\n",
			a.Kind, e.ID, Truncate(e.Description, 25), FormatBRL(e.Amount), e.DueDate)
	}
	b.WriteString("\n")
}
