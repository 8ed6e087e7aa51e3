package cache

import (
	"context"

	"github.com/example/storefront/internal/models"
)

// GuestCartStore holds the cart a browser accumulates before login. Entries
// are ephemeral: created on first write, refreshed on every touch, and
// destroyed once ownership transfers to a user cart at merge time.
type GuestCartStore interface {
	Get(ctx context.Context, guestID string) ([]models.LineItem, error)
	Put(ctx context.Context, guestID string, items []models.LineItem) error
	Delete(ctx context.Context, guestID string) error
}
