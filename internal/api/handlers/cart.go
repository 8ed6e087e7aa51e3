package handlers

import (
	"log/slog"
	"net/http"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/models"
	service "github.com/example/storefront/internal/services"
	"github.com/example/storefront/internal/utils"
	"github.com/example/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := uuid.Parse(r.PathValue("userId"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid user ID"))
			return
		}

		items, err := h.cartService.GetCart(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)

	}
}

func (h *CartHandler) ReplaceCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := uuid.Parse(r.PathValue("userId"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid user ID"))
			return
		}

		var req models.ReplaceCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.cartService.ReplaceCart(r.Context(), userID, req.CartItems); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"message": "Cart saved successfully"})

	}
}

func (h *CartHandler) MergeCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, err := uuid.Parse(r.PathValue("userId"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid user ID"))
			return
		}

		var req models.MergeCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		merged, err := h.cartService.MergeIn(r.Context(), userID, req.GuestItems, req.GuestID)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Guest cart merged",
			slog.String("userId", userID.String()),
			slog.Int("items", len(merged)))
		response.Success(w, http.StatusOK, merged)

	}
}
