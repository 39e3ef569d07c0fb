package models

// Payment status values as reported by the commerce backend.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
)

// Order is the station's read-only projection of a backend order. The backend
// owns the order; the station holds this only for the duration of the payment
// flow. TotalAmount is the server-computed figure and is authoritative.
type Order struct {
	ID            string `json:"orderId"`
	TotalAmount   int64  `json:"totalAmount"`
	PaymentStatus string `json:"paymentStatus"`
}
