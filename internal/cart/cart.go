// Package cart implements the client-local shopping cart: an ordered set of
// product lines aggregated before a payment is submitted. It is single-writer
// state, one cart per session, and is never persisted server-side; the
// submission contract consumes its total and product ids.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"digimart/internal/model"
)

// Line is one product entry with a quantity.
type Line struct {
	Product  model.Product
	Quantity int
}

// Subtotal returns quantity times the product's discounted price.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds lines keyed by product id, preserving insertion order.
type Cart struct {
	lines map[uuid.UUID]*Line
	order []uuid.UUID
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[uuid.UUID]*Line)}
}

// Add puts the product in the cart with quantity 1, or bumps the quantity if
// it is already present. The product is snapshotted: later catalog edits do
// not change lines already in the cart.
func (c *Cart) Add(product model.Product) {
	if line, ok := c.lines[product.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[product.ID] = &Line{Product: product, Quantity: 1}
	c.order = append(c.order, product.ID)
}

// SetQuantity sets the quantity for a product already in the cart. A target
// of zero or less removes the line entirely.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	line.Quantity = quantity
}

// Remove drops the product's line from the cart.
func (c *Cart) Remove(productID uuid.UUID) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}
	return lines
}

// ProductIDs returns the product ids in insertion order, as submitted with a
// payment.
func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.order))
	copy(ids, c.order)
	return ids
}

// Total sums the discounted subtotals of all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		total = total.Add(c.lines[id].Subtotal())
	}
	return total
}

// Count returns the number of distinct product lines.
func (c *Cart) Count() int {
	return len(c.order)
}
