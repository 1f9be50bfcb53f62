package domain

import "github.com/shopspring/decimal"

// OrderStatus is the lifecycle status of a sales order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Customer is a sales customer record.
type Customer struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
	AuditFields
}

// OrderLine is one product line within an order. UnitPrice is captured at
// order time so later price changes do not rewrite history.
type OrderLine struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Order is a sales order. Stock is decremented when the order is created and
// restored if a non-delivered order is cancelled.
type Order struct {
	Code         string          `json:"code"`
	CustomerCode string          `json:"customerCode"`
	CustomerName string          `json:"customerName"`
	Lines        []OrderLine     `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	AuditFields
}

// SalesReport summarizes orders whose creation date falls in a period.
type SalesReport struct {
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	GeneratedAt string `json:"generatedAt"`

	OrderCount int             `json:"orderCount"`
	TotalSales decimal.Decimal `json:"totalSales"`

	CountByStatus   map[OrderStatus]int        `json:"countByStatus"`
	SalesByCustomer map[string]decimal.Decimal `json:"salesByCustomer"`

	// UnitsByProduct counts units sold per product name.
	UnitsByProduct map[string]int `json:"unitsByProduct"`
}
