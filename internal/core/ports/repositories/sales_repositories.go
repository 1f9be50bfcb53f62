package repositories

import (
	"context"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// SalesRepository defines persistence operations for customers and orders.
type SalesRepository interface {
	// ListCustomers returns a snapshot of all customers.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// ReplaceCustomers overwrites and persists the customer collection.
	ReplaceCustomers(ctx context.Context, customers []domain.Customer) error

	// ListOrders returns a snapshot of all orders.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// ReplaceOrders overwrites and persists the order collection.
	ReplaceOrders(ctx context.Context, orders []domain.Order) error
}
