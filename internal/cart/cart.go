// Package cart implements the line-item aggregation rules for the cashier
// terminal. All operations are pure: they take the current cart plus arguments
// and return a fresh cart, so the caller can replace its state atomically.
package cart

import (
	"fmt"

	"github.com/sajifood/saji-cashier-station/internal/models"
)

// noTopping is the sentinel used in line keys when a variant is sold plain.
const noTopping = "none"

// LineKey builds the identity key for a (variant, topping) combination.
func LineKey(variantID, toppingID string) string {
	if toppingID == "" {
		toppingID = noTopping
	}
	return variantID + "-" + toppingID
}

// Add merges a selection into the cart. If a line with the same
// (variant, topping) key already exists its quantity grows by one; otherwise a
// new line is appended with quantity 1, a denormalized display name and a unit
// price of variant price plus topping price.
func Add(c models.Cart, variant models.ProductVariant, topping *models.Topping) models.Cart {
	toppingID := ""
	price := variant.Price
	name := fmt.Sprintf("%s (%s)", variant.ProductName, variant.Name)
	if topping != nil {
		toppingID = topping.ID
		price += topping.Price
		name += " + " + topping.Name
	}
	key := LineKey(variant.ID, toppingID)

	next := make(models.Cart, len(c), len(c)+1)
	copy(next, c)
	for i, line := range next {
		if line.Key == key {
			line.Quantity++
			next[i] = line
			return next
		}
	}

	return append(next, models.CartLine{
		Key:       key,
		VariantID: variant.ID,
		ToppingID: toppingID,
		Name:      name,
		Price:     price,
		Quantity:  1,
	})
}

// AdjustQuantity applies a quantity delta to the line with the given key.
// A resulting quantity of zero or less drops the line entirely; a quantity is
// never retained at or below zero. Unknown keys leave the cart unchanged.
func AdjustQuantity(c models.Cart, key string, delta int) models.Cart {
	next := make(models.Cart, 0, len(c))
	for _, line := range c {
		if line.Key == key {
			line.Quantity += delta
			if line.Quantity <= 0 {
				continue
			}
		}
		next = append(next, line)
	}
	return next
}

// Remove drops the line with the given key unconditionally.
func Remove(c models.Cart, key string) models.Cart {
	next := make(models.Cart, 0, len(c))
	for _, line := range c {
		if line.Key == key {
			continue
		}
		next = append(next, line)
	}
	return next
}

// Find returns the line with the given key, if present.
func Find(c models.Cart, key string) (models.CartLine, bool) {
	for _, line := range c {
		if line.Key == key {
			return line, true
		}
	}
	return models.CartLine{}, false
}

// Total sums unit price times quantity over all lines. The commerce backend
// recomputes the same figure from the submitted items; a mismatch between the
// two is a reportable inconsistency, never silently reconciled.
func Total(c models.Cart) int64 {
	var total int64
	for _, line := range c {
		total += line.Subtotal()
	}
	return total
}
