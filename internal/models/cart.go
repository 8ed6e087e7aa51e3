package models

import (
	"github.com/google/uuid"
)

// LineItem is one product reference inside a cart or an order snapshot.
// A cart never holds two line items with the same ProductID; they are
// collapsed into one with the quantities summed.
type LineItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Price     float64   `json:"price" validate:"gte=0"`
	Image     string    `json:"image,omitempty"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type ReplaceCartRequest struct {
	CartItems []LineItem `json:"cart_items" validate:"dive"`
}

// MergeCartRequest carries the guest cart being folded into the user's cart
// at login. GuestItems may be sent inline; GuestID points at a server-held
// guest cart that is drained and destroyed once the merge is persisted.
type MergeCartRequest struct {
	GuestItems []LineItem `json:"guest_items" validate:"omitempty,dive"`
	GuestID    string     `json:"guest_id,omitempty"`
}
