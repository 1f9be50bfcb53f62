package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

const productCodePrefix = "PROD"

// InventoryService manages products and the stock movement log. Quantities
// only change through RecordMovement (or AdjustQuantity, which delegates to
// it), so the log always explains the counters.
type InventoryService struct {
	repo     portsrepo.InventoryRepository
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// InventoryOption customizes an InventoryService.
type InventoryOption func(*InventoryService)

// WithInventoryClock overrides the wall clock, used by tests.
func WithInventoryClock(now func() time.Time) InventoryOption {
	return func(s *InventoryService) { s.now = now }
}

func NewInventoryService(repo portsrepo.InventoryRepository, logger zerolog.Logger, opts ...InventoryOption) *InventoryService {
	s := &InventoryService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterProduct creates a product with the next sequential PROD code and
// zero initial stock. Product names are unique, case-insensitively.
func (s *InventoryService) RegisterProduct(ctx context.Context, req dto.RegisterProductRequest) (*domain.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative, got %s", apperrors.ErrValidation, req.Price)
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, req.Name) {
			return nil, fmt.Errorf("%w: product name %q is taken by %s", apperrors.ErrDuplicate, req.Name, p.Code)
		}
	}

	product := domain.Product{
		Code:         nextProductCode(products),
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		MinimumStock: req.MinimumStock,
		Active:       true,
		AuditFields:  domain.NewAuditFields(s.now(), req.Actor),
	}
	products = append(products, product)
	if err := s.repo.ReplaceProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("save product %s: %w", product.Code, err)
	}

	s.logger.Info().
		Str("code", product.Code).
		Str("name", product.Name).
		Str("actor", req.Actor).
		Msg("product registered")
	return &product, nil
}

func nextProductCode(products []domain.Product) string {
	codes := make([]string, len(products))
	for i, p := range products {
		codes[i] = p.Code
	}
	return nextCode(productCodePrefix, codes)
}

// RecordMovement applies a stock movement to a product and appends it to the
// log. An outward movement larger than the current stock fails.
func (s *InventoryService) RecordMovement(ctx context.Context, req dto.StockMovementRequest) (*domain.StockMovement, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	idx := -1
	for i := range products {
		if products[i].Code == req.ProductCode && products[i].Active {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, req.ProductCode)
	}
	product := &products[idx]

	before := product.Quantity
	switch req.Direction {
	case domain.MovementIn:
		product.Quantity += req.Quantity
	case domain.MovementOut:
		if req.Quantity > product.Quantity {
			return nil, fmt.Errorf("%w: product %s has %d units, cannot remove %d",
				apperrors.ErrConflict, product.Code, product.Quantity, req.Quantity)
		}
		product.Quantity -= req.Quantity
	}
	product.Touch(s.now(), req.Actor)

	movement := domain.StockMovement{
		MovementID:  uuid.NewString(),
		ProductCode: product.Code,
		ProductName: product.Name,
		Direction:   req.Direction,
		Quantity:    req.Quantity,
		StockBefore: before,
		StockAfter:  product.Quantity,
		Note:        req.Note,
		Actor:       req.Actor,
		RecordedAt:  s.now().Format(domain.TimestampLayout),
	}

	if err := s.repo.ReplaceProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("save product %s: %w", product.Code, err)
	}
	if err := s.repo.AppendMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("append movement for %s: %w", product.Code, err)
	}

	s.logger.Info().
		Str("code", product.Code).
		Str("direction", string(req.Direction)).
		Int("quantity", req.Quantity).
		Int("stock_after", product.Quantity).
		Msg("stock movement recorded")
	return &movement, nil
}

// LookupProduct returns an active product by code.
func (s *InventoryService) LookupProduct(ctx context.Context, code string) (*domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for i := range products {
		if products[i].Code == code && products[i].Active {
			p := products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, code)
}

// AdjustQuantity applies a signed stock delta as a logged movement. It is the
// surface other services use, keeping one write path for quantities.
func (s *InventoryService) AdjustQuantity(ctx context.Context, code string, delta int, note, actor string) error {
	if delta == 0 {
		return nil
	}
	req := dto.StockMovementRequest{
		ProductCode: code,
		Direction:   domain.MovementIn,
		Quantity:    delta,
		Note:        note,
		Actor:       actor,
	}
	if delta < 0 {
		req.Direction = domain.MovementOut
		req.Quantity = -delta
	}
	_, err := s.RecordMovement(ctx, req)
	return err
}

// ListProducts returns active products sorted by code.
func (s *InventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	active := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// SearchProducts returns active products whose code, name or category
// contains term, case-insensitively.
func (s *InventoryService) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	matches := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Code), needle) ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// LowStock returns active products at or below their minimum stock.
func (s *InventoryService) LowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// StockReport summarizes the active inventory position.
func (s *InventoryService) StockReport(ctx context.Context) (*domain.StockReport, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	report := &domain.StockReport{
		LowStock:    []domain.Product{},
		GeneratedAt: s.now().Format(domain.TimestampLayout),
	}
	for _, p := range products {
		report.ProductCount++
		report.TotalUnits += p.Quantity
		report.TotalValue = report.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.LowStock() {
			report.LowStock = append(report.LowStock, p)
		}
	}
	return report, nil
}

// RecentMovements returns the newest limit movements, newest first. A
// non-positive limit returns the whole log.
func (s *InventoryService) RecentMovements(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	movements, err := s.repo.ListMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movements: %w", err)
	}
	// Log is stored oldest first.
	for i, j := 0, len(movements)-1; i < j; i, j = i+1, j-1 {
		movements[i], movements[j] = movements[j], movements[i]
	}
	if limit > 0 && len(movements) > limit {
		movements = movements[:limit]
	}
	return movements, nil
}

// DeactivateProduct soft-deletes a product. Its movement history stays in the
// log. Deactivating an unknown or already-inactive product fails.
func (s *InventoryService) DeactivateProduct(ctx context.Context, code, actor string) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	for i := range products {
		if products[i].Code != code {
			continue
		}
		if !products[i].Active {
			return fmt.Errorf("%w: product %s is already inactive", apperrors.ErrConflict, code)
		}
		products[i].Active = false
		products[i].Touch(s.now(), actor)
		if err := s.repo.ReplaceProducts(ctx, products); err != nil {
			return fmt.Errorf("save product %s: %w", code, err)
		}
		s.logger.Info().Str("code", code).Str("actor", actor).Msg("product deactivated")
		return nil
	}
	return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, code)
}
