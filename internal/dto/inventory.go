package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// RegisterProductRequest defines the data needed to register a product.
type RegisterProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock int             `json:"minimumStock" validate:"min=0"`
	Actor        string          `json:"actor" validate:"required"`
}

// StockMovementRequest defines the data needed to record a stock movement.
type StockMovementRequest struct {
	ProductCode string                   `json:"productCode" validate:"required"`
	Direction   domain.MovementDirection `json:"direction" validate:"required,oneof=in out"`
	Quantity    int                      `json:"quantity" validate:"required,gt=0"`
	Note        string                   `json:"note"`
	Actor       string                   `json:"actor" validate:"required"`
}
