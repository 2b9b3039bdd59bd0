package models

// MenuItem is a purchasable item. Descriptions are unique across the menu.
type MenuItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
