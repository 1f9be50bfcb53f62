package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/core/services"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

func customerReq(name, email string) dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		Name:  name,
		Email: email,
		Phone: "11 99999-0000",
		Actor: "maria",
	}
}

// seedSale registers a customer and a stocked product, returning the codes.
func seedSale(t *testing.T, sales *services.SalesService, inventory *services.InventoryService) (customerCode, productCode string) {
	t.Helper()
	ctx := context.Background()

	customer, err := sales.RegisterCustomer(ctx, customerReq("Cliente Silva", "silva@example.com"))
	require.NoError(t, err)

	product, err := inventory.RegisterProduct(ctx, productReq("Coffee", "25.00"))
	require.NoError(t, err)
	stockIn(t, inventory, product.Code, 10)

	return customer.Code, product.Code
}

func TestRegisterCustomerAssignsSequentialCodes(t *testing.T) {
	ctx := context.Background()
	sales, _ := newSalesFixture(t)

	first, err := sales.RegisterCustomer(ctx, customerReq("Cliente Silva", "silva@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "CLI001", first.Code)

	second, err := sales.RegisterCustomer(ctx, customerReq("Cliente Souza", "souza@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "CLI002", second.Code)

	_, err = sales.RegisterCustomer(ctx, customerReq("Another", "SILVA@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	bad := customerReq("No Email", "not-an-email")
	_, err = sales.RegisterCustomer(ctx, bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateOrderPricesLinesAndReservesStock(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	order, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 4}},
		Actor:        "maria",
	})
	require.NoError(t, err)

	assert.Equal(t, "PED001", order.Code)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, "Cliente Silva", order.CustomerName)
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Lines[0].UnitPrice.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, order.Lines[0].LineTotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("100.00")))

	product, err := inventory.LookupProduct(ctx, productCode)
	require.NoError(t, err)
	assert.Equal(t, 6, product.Quantity)
}

func TestCreateOrderInsufficientStockLeavesInventoryUntouched(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	_, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 11}},
		Actor:        "maria",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	product, err := inventory.LookupProduct(ctx, productCode)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Quantity)

	orders, err := sales.ListOrders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderSumsRepeatedProductLinesAgainstStock(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	// Each line fits the 10 in stock on its own, the pair does not.
	_, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines: []dto.OrderLineRequest{
			{ProductCode: productCode, Quantity: 6},
			{ProductCode: productCode, Quantity: 6},
		},
		Actor: "maria",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	product, err := inventory.LookupProduct(ctx, productCode)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Quantity)

	orders, err := sales.ListOrders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)

	order, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines: []dto.OrderLineRequest{
			{ProductCode: productCode, Quantity: 6},
			{ProductCode: productCode, Quantity: 4},
		},
		Actor: "maria",
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("250.00")))

	product, err = inventory.LookupProduct(ctx, productCode)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
}

func TestCreateOrderUnknownReferences(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, _ := seedSale(t, sales, inventory)

	_, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: "CLI999",
		Lines:        []dto.OrderLineRequest{{ProductCode: "PROD001", Quantity: 1}},
		Actor:        "maria",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: "PROD999", Quantity: 1}},
		Actor:        "maria",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	order, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 4}},
		Actor:        "maria",
	})
	require.NoError(t, err)

	confirmed, err := sales.UpdateOrderStatus(ctx, order.Code, domain.OrderConfirmed, "maria")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, confirmed.Status)

	_, err = sales.UpdateOrderStatus(ctx, order.Code, domain.OrderConfirmed, "maria")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	delivered, err := sales.UpdateOrderStatus(ctx, order.Code, domain.OrderDelivered, "maria")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, delivered.Status)

	// Delivered is terminal.
	_, err = sales.UpdateOrderStatus(ctx, order.Code, domain.OrderCancelled, "maria")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = sales.UpdateOrderStatus(ctx, "PED999", domain.OrderConfirmed, "maria")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = sales.UpdateOrderStatus(ctx, order.Code, domain.OrderStatus("shipped"), "maria")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCancellingOrderRestoresStock(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	order, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 4}},
		Actor:        "maria",
	})
	require.NoError(t, err)

	product, err := inventory.LookupProduct(ctx, productCode)
	require.NoError(t, err)
	require.Equal(t, 6, product.Quantity)

	_, err = sales.UpdateOrderStatus(ctx, order.Code, domain.OrderCancelled, "maria")
	require.NoError(t, err)

	restored, err := inventory.LookupProduct(ctx, productCode)
	require.NoError(t, err)
	assert.Equal(t, 10, restored.Quantity)

	// The restore shows up in the movement log.
	movements, err := inventory.RecentMovements(ctx, 1)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementIn, movements[0].Direction)
	assert.Contains(t, movements[0].Note, order.Code)
}

func TestSalesReport(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	order, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 2}},
		Actor:        "maria",
	})
	require.NoError(t, err)

	cancelled, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 1}},
		Actor:        "maria",
	})
	require.NoError(t, err)
	_, err = sales.UpdateOrderStatus(ctx, cancelled.Code, domain.OrderCancelled, "maria")
	require.NoError(t, err)

	report, err := sales.SalesReport(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	// Cancelled orders are counted by status but excluded from totals.
	assert.Equal(t, 1, report.OrderCount)
	assert.True(t, report.TotalSales.Equal(order.Total))
	assert.Equal(t, 1, report.CountByStatus[domain.OrderPending])
	assert.Equal(t, 1, report.CountByStatus[domain.OrderCancelled])
	assert.True(t, report.SalesByCustomer["Cliente Silva"].Equal(order.Total))
	assert.Equal(t, 2, report.UnitsByProduct["Coffee"])

	outside, err := sales.SalesReport(ctx, "2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.Zero(t, outside.OrderCount)

	_, err = sales.SalesReport(ctx, "2024-12-31", "2024-01-01")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSearchCustomersAndOrders(t *testing.T) {
	ctx := context.Background()
	sales, inventory := newSalesFixture(t)
	customerCode, productCode := seedSale(t, sales, inventory)

	_, err := sales.CreateOrder(ctx, dto.CreateOrderRequest{
		CustomerCode: customerCode,
		Lines:        []dto.OrderLineRequest{{ProductCode: productCode, Quantity: 1}},
		Actor:        "maria",
	})
	require.NoError(t, err)

	customers, err := sales.SearchCustomers(ctx, "silva")
	require.NoError(t, err)
	assert.Len(t, customers, 1)

	orders, err := sales.SearchOrders(ctx, "ped001")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	byCustomer, err := sales.SearchOrders(ctx, "SILVA")
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)
}
