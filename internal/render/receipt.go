package render

import (
	"fmt"
	"strings"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// Receipt renders a sales order as a plain-text receipt: order header,
// customer block and an itemized line table with the total.
func Receipt(order *domain.Order, customer *domain.Customer) string {
	var b strings.Builder
	rule := strings.Repeat("=", tableWidth)
	dash := strings.Repeat("-", tableWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center("SALES RECEIPT") + "\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Order:   %s\n", order.Code)
	fmt.Fprintf(&b, "Date:    %s\n", order.CreatedAt)
	fmt.Fprintf(&b, "Status:  %s\n\n", strings.ToUpper(string(order.Status)))

	b.WriteString("CUSTOMER\n")
	b.WriteString(dash + "\n")
	fmt.Fprintf(&b, "Name:    %s\n", customer.Name)
	fmt.Fprintf(&b, "Email:   %s\n", customer.Email)
	fmt.Fprintf(&b, "Phone:   %s\n", customer.Phone)
	if customer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", customer.Address)
	}
	b.WriteString("\n")

	b.WriteString("ITEMS\n")
	b.WriteString(dash + "\n")
	fmt.Fprintf(&b, "%-30s %8s %14s %14s\n", "Product", "Qty", "Unit Price", "Subtotal")
	b.WriteString(dash + "\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "%-30s %8d %14s %14s\n",
			Truncate(line.ProductName, 30),
			line.Quantity,
			FormatBRL(line.UnitPrice),
			FormatBRL(line.LineTotal),
		)
	}
	b.WriteString(dash + "\n")
	fmt.Fprintf(&b, "%54s %14s\n", "TOTAL:", FormatBRL(order.Total))

	if order.Notes != "" {
		b.WriteString("\nNotes: " + order.Notes + "\n")
	}
	b.WriteString("\n" + rule + "\n")
	return b.String()
}

func center(s string) string {
	if len(s) >= tableWidth {
		return s
	}
	pad := (tableWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
