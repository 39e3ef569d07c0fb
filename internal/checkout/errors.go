package checkout

import "errors"

var (
	// ErrEmptyCart rejects starting checkout with nothing to sell.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrEmptyEmail rejects order submission without a customer email.
	// Non-empty is the only validation performed; anything further is a known gap.
	ErrEmptyEmail = errors.New("customer email is empty")
	// ErrInvalidTransition is returned when an operation does not apply to the
	// current state.
	ErrInvalidTransition = errors.New("operation not valid in current checkout state")
	// ErrBusy rejects a second operation while a backend call is in flight.
	ErrBusy = errors.New("checkout operation already in progress")
	// ErrCheckoutLocked rejects cart edits once an order has been submitted.
	ErrCheckoutLocked = errors.New("cart is locked during payment")
	// ErrLineNotFound is returned for cart operations on an unknown line key.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrNoOrder is returned when a payment action has no order to act on.
	ErrNoOrder = errors.New("no order awaiting payment")
)

// OrderCreationError wraps a failed order submission. The orchestrator has
// already fallen back to email entry with the cart preserved when the caller
// sees this.
type OrderCreationError struct {
	Err error
}

func (e *OrderCreationError) Error() string {
	return "order creation failed: " + e.Err.Error()
}

func (e *OrderCreationError) Unwrap() error { return e.Err }

// PaymentConfirmationError wraps a failed payment confirmation. The order and
// payment view survive so the cashier can retry.
type PaymentConfirmationError struct {
	OrderID string
	Err     error
}

func (e *PaymentConfirmationError) Error() string {
	return "payment confirmation failed for order " + e.OrderID + ": " + e.Err.Error()
}

func (e *PaymentConfirmationError) Unwrap() error { return e.Err }
