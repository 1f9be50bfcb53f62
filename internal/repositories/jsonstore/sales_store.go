package jsonstore

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
)

// SalesStore persists customers and orders, each in its own JSON document.
type SalesStore struct {
	customersPath string
	ordersPath    string

	customers []domain.Customer
	orders    []domain.Order

	logger zerolog.Logger
}

var _ portsrepo.SalesRepository = (*SalesStore)(nil)

// NewSalesStore loads the two sales documents.
func NewSalesStore(customersPath, ordersPath string, logger zerolog.Logger) *SalesStore {
	return &SalesStore{
		customersPath: customersPath,
		ordersPath:    ordersPath,
		customers:     loadDocument[[]domain.Customer](customersPath, logger),
		orders:        loadDocument[[]domain.Order](ordersPath, logger),
		logger:        logger,
	}
}

// ListCustomers returns a snapshot of the customer collection.
func (s *SalesStore) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	return slices.Clone(s.customers), nil
}

// ReplaceCustomers overwrites and persists the customer collection.
func (s *SalesStore) ReplaceCustomers(_ context.Context, customers []domain.Customer) error {
	s.customers = slices.Clone(customers)
	return writeDocument(s.customersPath, s.customers)
}

// ListOrders returns a snapshot of the order collection.
func (s *SalesStore) ListOrders(_ context.Context) ([]domain.Order, error) {
	return slices.Clone(s.orders), nil
}

// ReplaceOrders overwrites and persists the order collection.
func (s *SalesStore) ReplaceOrders(_ context.Context, orders []domain.Order) error {
	s.orders = slices.Clone(orders)
	return writeDocument(s.ordersPath, s.orders)
}
