package domain

import "time"

type CartItem struct {
	ProductID string
	Quantity  int
}

type Cart struct {
	// InternalID is the storage-assigned identifier, empty until the cart
	// has been persisted. ID is the external lookup key.
	InternalID string
	ID         string
	Items      []CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SetItem overwrites the quantity of an existing line item, or appends a new
// one. Items keep their first-added position, at most one per product.
func (c *Cart) SetItem(productID string, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
}

// RemoveItem drops the line item for productID if present.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}
