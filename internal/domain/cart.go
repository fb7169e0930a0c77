package domain

import "time"

// Cart represents a shopper's cart for one browsing session. It is the unit
// of persistence: the whole cart is serialized to JSON and stored under a
// fixed per-session key.
type Cart struct {
	SessionID       string     `json:"session_id"`
	Items           []LineItem `json:"items"`
	DiscountApplied bool       `json:"discount_applied"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LineItem is one distinct product+size entry in the cart. UnitPrice is a
// snapshot of the catalog price at add time, in cents, and is never updated
// afterwards.
type LineItem struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	ImageURL  string `json:"image_url,omitempty"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Subtotal returns the sum of unit price times quantity over all line items,
// in cents.
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}

// TotalItemCount returns the sum of quantities across all line items,
// used for the cart badge.
func (c *Cart) TotalItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the line item matching the given
// product ID and size, or -1 if no such item exists.
func (c *Cart) FindItemIndex(productID, size string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			return i
		}
	}
	return -1
}

// AddItem merges the given line item into the cart. An item with the same
// (product ID, size) key increments the existing quantity instead of
// appending a duplicate entry; the existing unit price snapshot is kept.
// A non-positive quantity is treated as 1.
func (c *Cart) AddItem(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	if i := c.FindItemIndex(item.ProductID, item.Size); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		c.touch()
		return
	}

	c.Items = append(c.Items, item)
	c.touch()
}

// RemoveItem deletes the line item at the given position. Returns false,
// leaving the cart unchanged, when the index is out of range.
func (c *Cart) RemoveItem(index int) bool {
	if index < 0 || index >= len(c.Items) {
		return false
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	c.touch()
	return true
}

// ChangeQuantity adds delta (which may be negative) to the quantity of the
// line item at the given position, clamping the result to a minimum of 1.
// A decrement never removes the item; removal is a separate operation.
// Returns false, leaving the cart unchanged, when the index is out of range.
func (c *Cart) ChangeQuantity(index, delta int) bool {
	if index < 0 || index >= len(c.Items) {
		return false
	}
	qty := c.Items[index].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	c.Items[index].Quantity = qty
	c.touch()
	return true
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
