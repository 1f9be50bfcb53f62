package domain

import "github.com/shopspring/decimal"

// Product is an inventory item. Quantity is only mutated through stock
// movements so the movement log stays consistent with the counter.
type Product struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	MinimumStock int             `json:"minimumStock"`
	Active       bool            `json:"active"`
	AuditFields
}

// LowStock reports whether the product is at or below its minimum.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinimumStock
}

// MovementDirection is the direction of a stock movement.
type MovementDirection string

const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// StockMovement is one in/out adjustment of a product's quantity.
type StockMovement struct {
	MovementID  string            `json:"movementID"`
	ProductCode string            `json:"productCode"`
	ProductName string            `json:"productName"`
	Direction   MovementDirection `json:"direction"`
	Quantity    int               `json:"quantity"`
	StockBefore int               `json:"stockBefore"`
	StockAfter  int               `json:"stockAfter"`
	Note        string            `json:"note,omitempty"`
	Actor       string            `json:"actor"`
	RecordedAt  string            `json:"recordedAt"`
}

// StockReport summarizes the current inventory position.
type StockReport struct {
	ProductCount int             `json:"productCount"`
	TotalUnits   int             `json:"totalUnits"`
	TotalValue   decimal.Decimal `json:"totalValue"` // sum of price x quantity
	LowStock     []Product       `json:"lowStock"`
	GeneratedAt  string          `json:"generatedAt"`
}
