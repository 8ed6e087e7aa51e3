package handlers

import (
	"net/http"

	"github.com/example/storefront/internal/cache"
	"github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/models"
	service "github.com/example/storefront/internal/services"
	"github.com/example/storefront/internal/utils"
	"github.com/example/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// GuestCartHandler serves the pre-login cart. Guest carts live in the cache
// only and are destroyed when they merge into a user cart.
type GuestCartHandler struct {
	store     cache.GuestCartStore
	validator *validator.Validate
}

func NewGuestCartHandler(store cache.GuestCartStore) *GuestCartHandler {
	return &GuestCartHandler{store: store, validator: validator.New()}
}

func (h *GuestCartHandler) GetGuestCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		guestID := r.PathValue("guestId")
		if guestID == "" {
			response.Error(w, errors.BadRequestError("Guest ID is required"))
			return
		}

		items, err := h.store.Get(r.Context(), guestID)
		if err != nil {
			response.Error(w, errors.InternalError("Failed to load guest cart").WithError(err))
			return
		}

		response.Success(w, http.StatusOK, items)

	}
}

func (h *GuestCartHandler) PutGuestCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		guestID := r.PathValue("guestId")
		if guestID == "" {
			response.Error(w, errors.BadRequestError("Guest ID is required"))
			return
		}

		var req models.ReplaceCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.store.Put(r.Context(), guestID, service.NormalizeLineItems(req.CartItems)); err != nil {
			response.Error(w, errors.InternalError("Failed to save guest cart").WithError(err))
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"message": "Guest cart saved successfully"})

	}
}
