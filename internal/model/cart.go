package model

import "github.com/google/uuid"

// CartLine is a pending (product, quantity) selection. It references the
// product by id only; prices are read live when quoting the total.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the uncommitted selection of one checkout session. It lives in
// process memory only and is discarded on commit or explicit reset.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Line returns a pointer to the line for the given product, or nil.
func (c *Cart) Line(productID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine drops the whole line for the product (no decrement semantics).
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
