package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Order is an immutable snapshot of a cart at purchase time. OrderItems is a
// deep copy; later cart or catalog changes never alter a placed order.
type Order struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	OrderItems      []LineItem `json:"order_items"`
	ShippingAddress Address    `json:"shipping_address"`
	TotalPrice      float64    `json:"total_price"`
	IsPaid          bool       `json:"is_paid"`
	PaidAt          time.Time  `json:"paid_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PlaceOrderRequest struct {
	UserID          uuid.UUID  `json:"user_id" validate:"required"`
	OrderItems      []LineItem `json:"order_items" validate:"required,min=1,dive"`
	ShippingAddress Address    `json:"shipping_address" validate:"required"`
	// Accepted for compatibility with older clients but never trusted; the
	// total is always recomputed server-side.
	TotalPrice *float64 `json:"total_price,omitempty"`
}

type OrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}
