package http

import "time"

// AddCartItemRequest is the body of POST /api/v1/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// SetCartItemQuantityRequest is the body of PUT /api/v1/cart/items/:productId.
// Quantity zero removes the entry.
type SetCartItemQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CheckoutRequest is the body of POST /api/v1/cart/checkout.
// OrderID is optional: clients that supply one can retry the request safely,
// clients that omit it get a server-generated identity.
type CheckoutRequest struct {
	OrderID       string                  `json:"orderId" validate:"omitempty,uuid"`
	Customer      CheckoutCustomerRequest `json:"customerInfo" validate:"required"`
	Delivery      CheckoutDeliveryRequest `json:"delivery" validate:"required"`
	PaymentMethod string                  `json:"paymentMethod" validate:"required,oneof=cash card"`
}

// CheckoutCustomerRequest carries the contact fields of the checkout form.
type CheckoutCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CheckoutDeliveryRequest carries the requested delivery window.
type CheckoutDeliveryRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// ChangeOrderStatusRequest is the body of PUT /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeOrderStatusResponse carries the post-transition order state back to
// the admin tooling that triggered it.
type ChangeOrderStatusResponse struct {
	OrderID         string    `json:"orderId"`
	OrderNumber     string    `json:"orderNumber"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
}

// CheckoutResponse acknowledges a placed order.
type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
