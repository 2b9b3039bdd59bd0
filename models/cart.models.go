package models

// CartItem is one line in a cart. UnitPrice is snapshotted from the menu
// when the item is added and never resynced with later menu changes.
type CartItem struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menuItemId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
}

// Cart represents a user's shopping cart, keyed by phone number.
// TotalPrice is maintained incrementally and must always equal the sum of
// Quantity*UnitPrice over Items.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// NewCart returns an empty cart with a zero total.
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}, TotalPrice: 0}
}
