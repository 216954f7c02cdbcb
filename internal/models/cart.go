package models

import "time"

// CartItem is one product line within a cart. The same struct is the wire
// shape of the cart_data payload posted at checkout.
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// CartTotals is derived from the current cart state, never stored.
type CartTotals struct {
	ItemCount int     `json:"item_count"`
	AmountDue float64 `json:"amount_due"`
}

// CartSnapshot is the persisted form of a cart. UpdatedAt lets the
// background purge job tell abandoned snapshots from live ones.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Cart holds an ordered collection of line items. At most one item exists
// per product id; duplicate adds merge into the existing entry. Insertion
// order is preserved for display. Cart is a plain state object: all I/O
// (snapshot persistence, rendering) lives in the owning service.
type Cart struct {
	items []CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// NewCartFromItems builds a cart from a persisted snapshot. Entries that
// could never have been produced by cart operations (non-positive id or
// quantity) are dropped rather than surfaced as errors, so a stale or
// hand-edited snapshot cannot poison the cart.
func NewCartFromItems(items []CartItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		if item.ID <= 0 || item.Quantity <= 0 {
			continue
		}
		c.items = append(c.items, item)
	}
	return c
}

// Add merges a unit of the product into the cart: an existing entry gains
// quantity 1, otherwise a new entry with quantity 1 is appended.
func (c *Cart) Add(id int64, name string, price float64, image string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{ID: id, Name: name, Price: price, Image: image, Quantity: 1})
}

// Increase adds one unit to the entry with the given id. Unknown ids are
// ignored.
func (c *Cart) Increase(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrease removes one unit from the entry with the given id, deleting the
// entry entirely when its quantity drops to zero. The cart never holds a
// zero-quantity entry.
func (c *Cart) Decrease(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Quantity <= 1 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			} else {
				c.items[i].Quantity--
			}
			return
		}
	}
}

// Remove deletes the entry with the given id regardless of quantity.
func (c *Cart) Remove(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Totals derives item count and amount due from current state. Recomputed
// on every call; there is no incremental bookkeeping to drift.
func (c *Cart) Totals() CartTotals {
	t := CartTotals{}
	for _, item := range c.items {
		t.ItemCount += item.Quantity
		t.AmountDue += item.Price * float64(item.Quantity)
	}
	return t
}

// Items returns a copy of the line items in insertion order. Mutating the
// returned slice does not affect the cart.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len reports the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}
