package pricing

import "storefront-service/internal/models"

// Cart holds the customer's line items. It is an in-memory value; the cart
// service persists it per session. Concurrent edits are last-write-wins.
type Cart struct {
	Items []models.CartLineItem `json:"items"`
}

// Add inserts a line item, merging quantities into an existing line when the
// full customization payload is identical. Notes are clamped to the bounded
// length and quantity floors at 1.
func (c *Cart) Add(item models.CartLineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if len(item.Notes) > models.MaxNotesLen {
		item.Notes = item.Notes[:models.MaxNotesLen]
	}
	item.Key = item.MergeKey()

	for i := range c.Items {
		if c.Items[i].Key == item.Key {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of the line identified by key. A quantity
// below 1 removes the line. Returns false when no such line exists.
func (c *Cart) UpdateQuantity(key string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			if quantity < 1 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// Remove deletes the line identified by key.
func (c *Cart) Remove(key string) bool {
	return c.UpdateQuantity(key, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal is the sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// TotalItems is the total unit count across all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Lines converts the cart into the immutable snapshot stored on an order.
func (c *Cart) Lines() models.OrderLines {
	lines := make(models.OrderLines, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, models.OrderLine{
			ProductID:          it.ProductID,
			Name:               it.Name,
			UnitPrice:          it.UnitPrice,
			Quantity:           it.Quantity,
			SelectedOptions:    it.SelectedOptions,
			RemovedIngredients: it.RemovedIngredients,
			Notes:              it.Notes,
		})
	}
	return lines
}
