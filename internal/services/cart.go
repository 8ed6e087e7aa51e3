package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/cache"
	"github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/metrics"
	"github.com/example/storefront/internal/models"
	repository "github.com/example/storefront/internal/repositories"
	"github.com/google/uuid"
)

// CartService owns the authoritative per-user cart. Every mutation for a
// given user runs under that user's lock, so concurrent merges and replaces
// cannot drop each other's writes; different users proceed in parallel.
type CartService struct {
	repo       repository.CartRepository
	guestCarts cache.GuestCartStore
	locks      *userLocks
}

func NewCartService(repo repository.CartRepository, guestCarts cache.GuestCartStore) *CartService {
	return &CartService{
		repo:       repo,
		guestCarts: guestCarts,
		locks:      newUserLocks(),
	}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.LineItem, error) {

	items, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	return items, nil
}

// ReplaceCart overwrites the stored cart wholesale; the client always sends
// the full intended cart state. Duplicate product lines are collapsed first.
func (s *CartService) ReplaceCart(ctx context.Context, userID uuid.UUID, items []models.LineItem) error {

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	if err := s.repo.ReplaceCart(ctx, userID, NormalizeLineItems(items)); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("User not found").WithError(err)
		}

		return errors.DatabaseError("Failed to save cart").WithError(err)
	}

	return nil
}

// MergeIn combines the guest cart into the user's stored cart and persists
// the result. When guestID names a server-held guest cart, its items are
// drained too and the guest copy is destroyed after the merge is durable.
func (s *CartService) MergeIn(ctx context.Context, userID uuid.UUID, guestItems []models.LineItem, guestID string) ([]models.LineItem, error) {

	logger := middleware.LoggerFromContext(ctx)

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	if guestID != "" {

		stored, err := s.guestCarts.Get(ctx, guestID)
		if err != nil {
			return nil, errors.InternalError("Failed to load guest cart").WithError(err)
		}

		guestItems = append(guestItems, stored...)

	}

	current, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	merged := MergeLineItems(current, NormalizeLineItems(guestItems))

	if err := s.repo.ReplaceCart(ctx, userID, merged); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to save merged cart").WithError(err)
	}

	// The merged cart is durable; a failed cleanup only leaves a stale guest
	// copy behind until its TTL fires.
	if guestID != "" {
		if err := s.guestCarts.Delete(ctx, guestID); err != nil {
			logger.Warn("Failed to delete guest cart after merge",
				slog.String("guestId", guestID), slog.String("error", err.Error()))
		}
	}

	metrics.CartMerged()

	return merged, nil
}

// ClearCart empties (never deletes) the user's cart. Used after an order is
// durably placed.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	if err := s.repo.ReplaceCart(ctx, userID, []models.LineItem{}); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("User not found").WithError(err)
		}

		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
