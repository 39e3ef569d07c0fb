package commerce

// Wire types for the commerce backend REST surface. Field names follow the
// backend DTOs, not the station's internal models.

// StatusSchema is the status half of the backend's response envelope.
type StatusSchema struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProductVariantResponse is one purchasable configuration inside a product.
type ProductVariantResponse struct {
	VariantID   string `json:"variantId"`
	VariantName string `json:"variantName"`
	Price       int64  `json:"price"`
}

// ProductResponse is one product with its variants. Inactive products may be
// included; the caller filters by the active flag before display.
type ProductResponse struct {
	ProductID   string                   `json:"productId"`
	Name        string                   `json:"name"`
	Description *string                  `json:"description"`
	ImageURL    *string                  `json:"imageUrl"`
	Active      bool                     `json:"active"`
	Variants    []ProductVariantResponse `json:"variants"`
}

// ToppingResponse is one topping. Same active-flag contract as products.
type ToppingResponse struct {
	ToppingID string  `json:"toppingId"`
	Name      string  `json:"name"`
	Price     int64   `json:"price"`
	ImageURL  *string `json:"imageUrl"`
	Active    bool    `json:"active"`
}

// OrderItemRequest is one submitted cart line. ToppingID is null for a plain
// variant.
type OrderItemRequest struct {
	VariantID string  `json:"variantId"`
	ToppingID *string `json:"toppingId"`
	Quantity  int     `json:"quantity"`
}

// CreateOrderRequest is the order submission body. There is no idempotency
// key: a resubmission after a timeout may create a duplicate order on the
// backend. Fixing that belongs to the backend contract.
type CreateOrderRequest struct {
	CustomerEmail string             `json:"customerEmail"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderResponse is the backend's order projection. TotalAmount is computed
// server-side and is authoritative.
type OrderResponse struct {
	OrderID       string `json:"orderId"`
	TotalAmount   int64  `json:"totalAmount"`
	PaymentStatus string `json:"paymentStatus"`
}

// createOrderEnvelope is the {status_schema, output_schema} wrapper the order
// endpoint responds with.
type createOrderEnvelope struct {
	StatusSchema StatusSchema  `json:"status_schema"`
	OutputSchema OrderResponse `json:"output_schema"`
}

// LoginRequest is the credential exchange body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
