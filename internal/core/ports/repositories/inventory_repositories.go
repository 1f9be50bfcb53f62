package repositories

import (
	"context"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// InventoryRepository defines persistence operations for products and the
// stock movement log.
type InventoryRepository interface {
	// ListProducts returns a snapshot of all products, including inactive ones.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ReplaceProducts overwrites and persists the product collection.
	ReplaceProducts(ctx context.Context, products []domain.Product) error

	// ListMovements returns the movement log, oldest first.
	ListMovements(ctx context.Context) ([]domain.StockMovement, error)

	// AppendMovement appends a movement to the log and persists it.
	AppendMovement(ctx context.Context, movement domain.StockMovement) error
}
