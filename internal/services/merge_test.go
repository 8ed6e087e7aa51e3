package service_test

import (
	"testing"

	"github.com/example/storefront/internal/models"
	service "github.com/example/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func lineItem(id uuid.UUID, name string, price float64, qty int) models.LineItem {
	return models.LineItem{ProductID: id, Name: name, Price: price, Quantity: qty}
}

func TestMergeLineItems(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	productC := uuid.New()

	t.Run("Empty Guest Cart Returns Server Cart Unchanged", func(t *testing.T) {
		server := []models.LineItem{
			lineItem(productA, "Keyboard", 49.99, 2),
			lineItem(productB, "Mouse", 19.99, 1),
		}

		merged := service.MergeLineItems(server, nil)

		assert.Equal(t, server, merged)
	})

	t.Run("Empty Server Cart Adopts Guest Cart", func(t *testing.T) {
		guest := []models.LineItem{
			lineItem(productA, "Keyboard", 49.99, 3),
		}

		merged := service.MergeLineItems(nil, guest)

		assert.Equal(t, guest, merged)
	})

	t.Run("Matching Items Sum Quantities", func(t *testing.T) {
		server := []models.LineItem{lineItem(productA, "Keyboard", 49.99, 2)}
		guest := []models.LineItem{
			lineItem(productA, "Keyboard", 49.99, 3),
			lineItem(productB, "Mouse", 19.99, 1),
		}

		merged := service.MergeLineItems(server, guest)

		assert.Len(t, merged, 2)
		assert.Equal(t, productA, merged[0].ProductID)
		assert.Equal(t, 5, merged[0].Quantity)
		assert.Equal(t, productB, merged[1].ProductID)
		assert.Equal(t, 1, merged[1].Quantity)
	})

	t.Run("Disjoint Items Keep Server-First Order", func(t *testing.T) {
		server := []models.LineItem{lineItem(productA, "Keyboard", 49.99, 1)}
		guest := []models.LineItem{lineItem(productB, "Mouse", 19.99, 1)}

		merged := service.MergeLineItems(server, guest)

		assert.Len(t, merged, 2)
		assert.Equal(t, productA, merged[0].ProductID)
		assert.Equal(t, productB, merged[1].ProductID)
	})

	t.Run("Guest-Only Items Keep Guest Order", func(t *testing.T) {
		server := []models.LineItem{lineItem(productA, "Keyboard", 49.99, 1)}
		guest := []models.LineItem{
			lineItem(productC, "Monitor", 149.99, 1),
			lineItem(productB, "Mouse", 19.99, 2),
		}

		merged := service.MergeLineItems(server, guest)

		assert.Equal(t, []uuid.UUID{productA, productC, productB},
			[]uuid.UUID{merged[0].ProductID, merged[1].ProductID, merged[2].ProductID})
	})

	t.Run("Inputs Are Never Mutated", func(t *testing.T) {
		server := []models.LineItem{lineItem(productA, "Keyboard", 49.99, 2)}
		guest := []models.LineItem{lineItem(productA, "Keyboard", 49.99, 3)}

		_ = service.MergeLineItems(server, guest)

		assert.Equal(t, 2, server[0].Quantity)
		assert.Equal(t, 3, guest[0].Quantity)
	})

	t.Run("Merge Is Idempotent On Empty Guest Cart", func(t *testing.T) {
		server := []models.LineItem{
			lineItem(productA, "Keyboard", 49.99, 2),
			lineItem(productC, "Monitor", 149.99, 1),
		}

		once := service.MergeLineItems(server, []models.LineItem{})
		twice := service.MergeLineItems(once, []models.LineItem{})

		assert.Equal(t, server, once)
		assert.Equal(t, once, twice)
	})
}

func TestNormalizeLineItems(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	t.Run("Collapses Duplicate Products", func(t *testing.T) {
		items := []models.LineItem{
			lineItem(productA, "Keyboard", 49.99, 1),
			lineItem(productB, "Mouse", 19.99, 2),
			lineItem(productA, "Keyboard", 49.99, 4),
		}

		normalized := service.NormalizeLineItems(items)

		assert.Len(t, normalized, 2)
		assert.Equal(t, productA, normalized[0].ProductID)
		assert.Equal(t, 5, normalized[0].Quantity)
		assert.Equal(t, productB, normalized[1].ProductID)
		assert.Equal(t, 2, normalized[1].Quantity)
	})

	t.Run("Nil Input Yields Empty Slice", func(t *testing.T) {
		normalized := service.NormalizeLineItems(nil)

		assert.NotNil(t, normalized)
		assert.Empty(t, normalized)
	})
}
