package models

// CartLine is one distinct (variant, topping) combination in the cart with an
// aggregated quantity. Price is the unit price (variant plus topping) captured
// when the line was created; Name is the denormalized display name.
type CartLine struct {
	Key       string `json:"key"`
	VariantID string `json:"variantId"`
	ToppingID string `json:"toppingId,omitempty"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns the line total (unit price times quantity).
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is the terminal's in-memory set of lines. Aggregation rules live in
// the cart package; a Cart value is replaced atomically, never mutated in place.
type Cart []CartLine
