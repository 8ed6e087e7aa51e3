package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/metrics"
	"github.com/example/storefront/internal/models"
	repository "github.com/example/storefront/internal/repositories"
	"github.com/google/uuid"
)

type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	carts     *CartService
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, carts *CartService) *OrderService {
	return &OrderService{orderRepo: orderRepo, userRepo: userRepo, carts: carts}
}

// PlaceOrder converts the submitted items into an immutable order snapshot
// and empties the user's cart. Payment is simulated: every order is marked
// paid at placement time.
func (s *OrderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	if _, err := s.userRepo.GetUserByID(ctx, req.UserID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to look up user").WithError(err)
	}

	items := NormalizeLineItems(req.OrderItems)

	if len(items) == 0 {
		return nil, errors.BadRequestError("Cannot place an order with no items")
	}

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, errors.ValidationError("Order item quantity must be at least 1")
		}

		if item.Price < 0 {
			return nil, errors.ValidationError("Order item price must not be negative")
		}
	}

	// The total is always recomputed here; a client-supplied figure is never
	// trusted and only logged when it disagrees.
	total := orderTotal(items)

	if req.TotalPrice != nil && *req.TotalPrice != total {
		logger.Warn("Client-supplied total diverges from computed total",
			slog.Float64("client_total", *req.TotalPrice),
			slog.Float64("computed_total", total),
			slog.String("userId", req.UserID.String()))
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		TotalPrice:      total,
		IsPaid:          true,
		PaidAt:          time.Now(),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to place order").WithError(err)
	}

	// Best effort: the order is durable, so it stands even when the clear
	// fails; the user ends up with stale cart items, not a lost order.
	if err := s.carts.ClearCart(ctx, req.UserID); err != nil {
		logger.Warn("Order placed but cart clear failed",
			slog.String("orderId", order.ID.String()),
			slog.String("userId", req.UserID.String()),
			slog.String("error", err.Error()))
	}

	metrics.OrderPlaced()

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load order").WithError(err)
	}

	return order, nil
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {

	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func orderTotal(items []models.LineItem) float64 {

	var total float64

	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}
