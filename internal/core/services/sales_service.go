package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

const (
	customerCodePrefix = "CLI"
	orderCodePrefix    = "PED"
)

// InventoryCollaborator is the slice of the inventory service that sales
// needs: price/stock lookups and logged quantity adjustments.
type InventoryCollaborator interface {
	LookupProduct(ctx context.Context, code string) (*domain.Product, error)
	AdjustQuantity(ctx context.Context, code string, delta int, note, actor string) error
}

// SalesService manages customers and sales orders. Orders decrement stock on
// creation through the inventory collaborator and restore it when a
// non-delivered order is cancelled.
type SalesService struct {
	repo      portsrepo.SalesRepository
	inventory InventoryCollaborator
	validate  *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// SalesOption customizes a SalesService.
type SalesOption func(*SalesService)

// WithSalesClock overrides the wall clock, used by tests.
func WithSalesClock(now func() time.Time) SalesOption {
	return func(s *SalesService) { s.now = now }
}

func NewSalesService(repo portsrepo.SalesRepository, inventory InventoryCollaborator, logger zerolog.Logger, opts ...SalesOption) *SalesService {
	s := &SalesService{
		repo:      repo,
		inventory: inventory,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterCustomer creates a customer with the next sequential CLI code.
// Email addresses are unique, case-insensitively.
func (s *SalesService) RegisterCustomer(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	for _, c := range customers {
		if strings.EqualFold(c.Email, req.Email) {
			return nil, fmt.Errorf("%w: email %s belongs to customer %s", apperrors.ErrDuplicate, req.Email, c.Code)
		}
	}

	customer := domain.Customer{
		Code:        nextCode(customerCodePrefix, customerCodes(customers)),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Active:      true,
		AuditFields: domain.NewAuditFields(s.now(), req.Actor),
	}
	customers = append(customers, customer)
	if err := s.repo.ReplaceCustomers(ctx, customers); err != nil {
		return nil, fmt.Errorf("save customer %s: %w", customer.Code, err)
	}

	s.logger.Info().
		Str("code", customer.Code).
		Str("name", customer.Name).
		Str("actor", req.Actor).
		Msg("customer registered")
	return &customer, nil
}

// CreateOrder prices the requested lines from the product records, verifies
// stock for all of them, then decrements stock and persists the order. Stock
// is checked against the summed quantity per product, so an order listing the
// same product on several lines cannot overdraw it; any lookup or stock
// failure leaves the inventory untouched.
func (s *SalesService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	var customer *domain.Customer
	for i := range customers {
		if customers[i].Code == req.CustomerCode && customers[i].Active {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerCode)
	}

	// Validate every line before touching stock. The same product may appear
	// on several lines, so stock is checked against the summed quantity.
	products := make(map[string]*domain.Product, len(req.Lines))
	requested := make(map[string]int, len(req.Lines))
	codes := make([]string, 0, len(req.Lines))
	for _, lr := range req.Lines {
		if _, ok := products[lr.ProductCode]; !ok {
			product, err := s.inventory.LookupProduct(ctx, lr.ProductCode)
			if err != nil {
				return nil, fmt.Errorf("order line %s: %w", lr.ProductCode, err)
			}
			products[lr.ProductCode] = product
			codes = append(codes, lr.ProductCode)
		}
		requested[lr.ProductCode] += lr.Quantity
	}
	for _, code := range codes {
		if requested[code] > products[code].Quantity {
			return nil, fmt.Errorf("%w: product %s has %d units, order wants %d",
				apperrors.ErrConflict, code, products[code].Quantity, requested[code])
		}
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	total := decimal.Zero
	for _, lr := range req.Lines {
		product := products[lr.ProductCode]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(lr.Quantity)))
		lines = append(lines, domain.OrderLine{
			ProductCode: product.Code,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    lr.Quantity,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	order := domain.Order{
		Code:         nextCode(orderCodePrefix, orderCodes(orders)),
		CustomerCode: customer.Code,
		CustomerName: customer.Name,
		Lines:        lines,
		Total:        total,
		Status:       domain.OrderPending,
		Notes:        req.Notes,
		AuditFields:  domain.NewAuditFields(s.now(), req.Actor),
	}

	for _, code := range codes {
		note := fmt.Sprintf("order %s", order.Code)
		if err := s.inventory.AdjustQuantity(ctx, code, -requested[code], note, req.Actor); err != nil {
			return nil, fmt.Errorf("reserve stock for %s: %w", code, err)
		}
	}

	orders = append(orders, order)
	if err := s.repo.ReplaceOrders(ctx, orders); err != nil {
		return nil, fmt.Errorf("save order %s: %w", order.Code, err)
	}

	s.logger.Info().
		Str("code", order.Code).
		Str("customer", customer.Code).
		Str("total", total.String()).
		Int("lines", len(lines)).
		Msg("order created")
	return &order, nil
}

// UpdateOrderStatus moves an order to a new lifecycle status. Delivered and
// cancelled are terminal. Cancelling a pending or confirmed order restores the
// reserved stock.
func (s *SalesService) UpdateOrderStatus(ctx context.Context, code string, status domain.OrderStatus, actor string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	idx := -1
	for i := range orders {
		if orders[i].Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, code)
	}
	order := &orders[idx]

	if order.Status == domain.OrderDelivered || order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is already %s", apperrors.ErrConflict, code, order.Status)
	}
	if order.Status == status {
		return nil, fmt.Errorf("%w: order %s is already %s", apperrors.ErrConflict, code, status)
	}

	if status == domain.OrderCancelled {
		for _, line := range order.Lines {
			note := fmt.Sprintf("order %s cancelled", order.Code)
			if err := s.inventory.AdjustQuantity(ctx, line.ProductCode, line.Quantity, note, actor); err != nil {
				return nil, fmt.Errorf("restore stock for %s: %w", line.ProductCode, err)
			}
		}
	}

	order.Status = status
	order.Touch(s.now(), actor)
	if err := s.repo.ReplaceOrders(ctx, orders); err != nil {
		return nil, fmt.Errorf("save order %s: %w", code, err)
	}

	s.logger.Info().
		Str("code", code).
		Str("status", string(status)).
		Str("actor", actor).
		Msg("order status updated")
	updated := *order
	return &updated, nil
}

// ListCustomers returns active customers sorted as stored.
func (s *SalesService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	active := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

// SearchCustomers returns active customers whose code, name or email contains
// term, case-insensitively.
func (s *SalesService) SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	matches := make([]domain.Customer, 0)
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Code), needle) ||
			strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// ListOrders returns all orders, optionally filtered by status.
func (s *SalesService) ListOrders(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if status == nil {
		return orders, nil
	}
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == *status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// SearchOrders returns orders whose code or customer name contains term,
// case-insensitively.
func (s *SalesService) SearchOrders(ctx context.Context, term string) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	needle := strings.ToLower(term)
	matches := make([]domain.Order, 0)
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Code), needle) ||
			strings.Contains(strings.ToLower(o.CustomerName), needle) {
			matches = append(matches, o)
		}
	}
	return matches, nil
}

// SalesReport summarizes orders created within [start, end]. Either bound may
// be empty to leave the range open on that side. Cancelled orders count in
// CountByStatus but not in totals.
func (s *SalesService) SalesReport(ctx context.Context, start, end string) (*domain.SalesReport, error) {
	if start != "" && !domain.ValidDate(start) {
		return nil, fmt.Errorf("%w: start date %q is not a valid %s date", apperrors.ErrValidation, start, domain.DateLayout)
	}
	if end != "" && !domain.ValidDate(end) {
		return nil, fmt.Errorf("%w: end date %q is not a valid %s date", apperrors.ErrValidation, end, domain.DateLayout)
	}
	if start != "" && end != "" && start > end {
		return nil, fmt.Errorf("%w: period start %s is after end %s", apperrors.ErrConflict, start, end)
	}

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	report := &domain.SalesReport{
		Start:           start,
		End:             end,
		GeneratedAt:     s.now().Format(domain.TimestampLayout),
		CountByStatus:   make(map[domain.OrderStatus]int),
		SalesByCustomer: make(map[string]decimal.Decimal),
		UnitsByProduct:  make(map[string]int),
	}
	for _, o := range orders {
		createdOn := o.CreatedAt
		if len(createdOn) >= len(domain.DateLayout) {
			createdOn = createdOn[:len(domain.DateLayout)]
		}
		if start != "" && createdOn < start {
			continue
		}
		if end != "" && createdOn > end {
			continue
		}

		report.CountByStatus[o.Status]++
		if o.Status == domain.OrderCancelled {
			continue
		}
		report.OrderCount++
		report.TotalSales = report.TotalSales.Add(o.Total)
		report.SalesByCustomer[o.CustomerName] = report.SalesByCustomer[o.CustomerName].Add(o.Total)
		for _, line := range o.Lines {
			report.UnitsByProduct[line.ProductName] += line.Quantity
		}
	}
	return report, nil
}

func customerCodes(customers []domain.Customer) []string {
	codes := make([]string, len(customers))
	for i, c := range customers {
		codes[i] = c.Code
	}
	return codes
}

func orderCodes(orders []domain.Order) []string {
	codes := make([]string, len(orders))
	for i, o := range orders {
		codes[i] = o.Code
	}
	return codes
}

// nextCode returns prefix plus the next zero-padded sequence number given the
// codes already in use.
func nextCode(prefix string, existing []string) string {
	highest := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}
