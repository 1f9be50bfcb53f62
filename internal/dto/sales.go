package dto

// RegisterCustomerRequest defines the data needed to register a customer.
type RegisterCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Actor   string `json:"actor" validate:"required"`
}

// OrderLineRequest is one requested product line of a new order. The unit
// price is taken from the product record, not from the caller.
type OrderLineRequest struct {
	ProductCode string `json:"productCode" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest defines the data needed to create a sales order.
type CreateOrderRequest struct {
	CustomerCode string             `json:"customerCode" validate:"required"`
	Lines        []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes        string             `json:"notes"`
	Actor        string             `json:"actor" validate:"required"`
}
