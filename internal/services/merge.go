package service

import (
	"github.com/example/storefront/internal/models"
)

// MergeLineItems folds a guest cart into a server cart. Guest items matching
// a server item by ProductID add their quantity to it in place; the rest are
// appended in their original order, so the result keeps server items first.
// Inputs are never mutated; the returned slice is freshly allocated.
func MergeLineItems(serverItems, guestItems []models.LineItem) []models.LineItem {

	merged := make([]models.LineItem, len(serverItems))
	copy(merged, serverItems)

	for _, guestItem := range guestItems {

		found := false

		for i := range merged {
			if merged[i].ProductID == guestItem.ProductID {
				merged[i].Quantity += guestItem.Quantity
				found = true

				break
			}
		}

		if !found {
			merged = append(merged, guestItem)
		}

	}

	return merged
}

// NormalizeLineItems collapses duplicate ProductIDs by summing quantities,
// keeping first-seen order. Client-supplied carts pass through this so a
// stored cart never holds two line items for the same product.
func NormalizeLineItems(items []models.LineItem) []models.LineItem {
	return MergeLineItems(nil, items)
}
