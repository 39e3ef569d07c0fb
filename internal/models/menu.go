package models

// ProductVariant is a sellable menu entry: one purchasable configuration of a
// product (e.g. a size), flattened with the owning product's display data so the
// terminal can render it as a single tile.
type ProductVariant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	ProductName string `json:"productName"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Topping is an optional add-on offered with any variant
type Topping struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Menu is the active catalog the terminal renders. It is fetched on menu load
// and treated as immutable for the rest of the session.
type Menu struct {
	Variants []ProductVariant `json:"variants"`
	Toppings []Topping        `json:"toppings"`
}
