package jsonstore

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
)

// InventoryStore persists products and the stock movement log, each in its
// own JSON document.
type InventoryStore struct {
	productsPath  string
	movementsPath string

	products  []domain.Product
	movements []domain.StockMovement

	logger zerolog.Logger
}

var _ portsrepo.InventoryRepository = (*InventoryStore)(nil)

// NewInventoryStore loads the two inventory documents.
func NewInventoryStore(productsPath, movementsPath string, logger zerolog.Logger) *InventoryStore {
	return &InventoryStore{
		productsPath:  productsPath,
		movementsPath: movementsPath,
		products:      loadDocument[[]domain.Product](productsPath, logger),
		movements:     loadDocument[[]domain.StockMovement](movementsPath, logger),
		logger:        logger,
	}
}

// ListProducts returns a snapshot of the product collection.
func (s *InventoryStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	return slices.Clone(s.products), nil
}

// ReplaceProducts overwrites and persists the product collection.
func (s *InventoryStore) ReplaceProducts(_ context.Context, products []domain.Product) error {
	s.products = slices.Clone(products)
	return writeDocument(s.productsPath, s.products)
}

// ListMovements returns the movement log, oldest first.
func (s *InventoryStore) ListMovements(_ context.Context) ([]domain.StockMovement, error) {
	return slices.Clone(s.movements), nil
}

// AppendMovement appends movement to the log and persists it.
func (s *InventoryStore) AppendMovement(_ context.Context, movement domain.StockMovement) error {
	s.movements = append(s.movements, movement)
	return writeDocument(s.movementsPath, s.movements)
}
