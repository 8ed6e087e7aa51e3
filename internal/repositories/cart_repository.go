package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/storefront/internal/models"
	"github.com/example/storefront/internal/utils"
	"github.com/google/uuid"
)

// CartRepository reads and writes the cart embedded in the owning user row.
// A missing user surfaces as sql.ErrNoRows; the service layer maps that to
// its NotFound error.
type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.LineItem, error)
	ReplaceCart(ctx context.Context, userID uuid.UUID, items []models.LineItem) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID) ([]models.LineItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT cart
		FROM users
		WHERE id = $1
	`

	var cartJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cartJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	items := []models.LineItem{}
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
		}
	}

	return items, nil
}

func (r *cartRepository) ReplaceCart(ctx context.Context, userID uuid.UUID, items []models.LineItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if items == nil {
		items = []models.LineItem{}
	}

	cartJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE users
		SET cart = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, cartJSON, userID)
	if err != nil {
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
