// Package checkout drives the order-creation and payment-confirmation
// handshake for one cashier terminal: collect the customer email, submit the
// order, present the payment artifact, confirm receipt, reset the cart.
package checkout

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sajifood/saji-cashier-station/internal/cart"
	"github.com/sajifood/saji-cashier-station/internal/commerce"
	"github.com/sajifood/saji-cashier-station/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// State of the checkout flow.
type State string

const (
	StateIdle                  State = "IDLE"
	StateEmailEntry            State = "EMAIL_ENTRY"
	StateAwaitingOrderCreation State = "AWAITING_ORDER_CREATION"
	StatePaymentPending        State = "PAYMENT_PENDING"
	StateAwaitingConfirmation  State = "AWAITING_CONFIRMATION"
)

// String representation (for logging)
func (s State) String() string {
	return string(s)
}

// Backend is the slice of the commerce client the orchestrator needs.
type Backend interface {
	CreateOrder(ctx context.Context, req commerce.CreateOrderRequest) (*commerce.OrderResponse, error)
	ConfirmPayment(ctx context.Context, orderID string) error
}

// Snapshot is a read-only projection of the terminal state for rendering.
type Snapshot struct {
	State         State         `json:"state"`
	Cart          models.Cart   `json:"cart"`
	Total         int64         `json:"total"`
	Email         string        `json:"customerEmail,omitempty"`
	Order         *models.Order `json:"order,omitempty"`
	TotalMismatch bool          `json:"totalMismatch,omitempty"`
}

// Orchestrator owns the terminal's cart and checkout state. Cart mutations are
// sequential cashier actions; the mutex only protects against the HTTP layer
// delivering two of them at once. One backend call is in flight at a time,
// guarded by a processing flag the way the UI disables its pay button.
type Orchestrator struct {
	mu         sync.Mutex
	backend    Backend
	state      State
	cart       models.Cart
	email      string
	order      *models.Order
	mismatch   bool
	processing bool
}

func NewOrchestrator(backend Backend) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		state:   StateIdle,
	}
}

// Snapshot returns the current terminal state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	var order *models.Order
	if o.order != nil {
		copied := *o.order
		order = &copied
	}
	return Snapshot{
		State:         o.state,
		Cart:          o.cart,
		Total:         cart.Total(o.cart),
		Email:         o.email,
		Order:         order,
		TotalMismatch: o.mismatch,
	}
}

// AddItem merges a selection into the cart. Edits are rejected once an order
// has been submitted; the payment view works against a fixed item set.
func (o *Orchestrator) AddItem(variant models.ProductVariant, topping *models.Topping) (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle && o.state != StateEmailEntry {
		return o.snapshotLocked(), ErrCheckoutLocked
	}
	o.cart = cart.Add(o.cart, variant, topping)
	return o.snapshotLocked(), nil
}

// AdjustItem applies a quantity delta to a line; the line disappears at zero.
func (o *Orchestrator) AdjustItem(key string, delta int) (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle && o.state != StateEmailEntry {
		return o.snapshotLocked(), ErrCheckoutLocked
	}
	if _, ok := cart.Find(o.cart, key); !ok {
		return o.snapshotLocked(), ErrLineNotFound
	}
	o.cart = cart.AdjustQuantity(o.cart, key, delta)
	return o.snapshotLocked(), nil
}

// RemoveItem drops a line unconditionally.
func (o *Orchestrator) RemoveItem(key string) (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle && o.state != StateEmailEntry {
		return o.snapshotLocked(), ErrCheckoutLocked
	}
	if _, ok := cart.Find(o.cart, key); !ok {
		return o.snapshotLocked(), ErrLineNotFound
	}
	o.cart = cart.Remove(o.cart, key)
	return o.snapshotLocked(), nil
}

// Begin moves Idle -> EmailEntry. The entry point requires a non-empty cart.
func (o *Orchestrator) Begin() (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return o.snapshotLocked(), ErrInvalidTransition
	}
	if len(o.cart) == 0 {
		return o.snapshotLocked(), ErrEmptyCart
	}
	o.state = StateEmailEntry
	return o.snapshotLocked(), nil
}

// Abort moves EmailEntry back to Idle, keeping the cart and email. There is no
// abort from the payment states: the station waits indefinitely for the
// operator to confirm.
func (o *Orchestrator) Abort() (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateEmailEntry {
		return o.snapshotLocked(), ErrInvalidTransition
	}
	o.state = StateIdle
	return o.snapshotLocked(), nil
}

// SubmitOrder moves EmailEntry -> AwaitingOrderCreation -> PaymentPending.
// On failure the machine falls back to EmailEntry with the cart and email
// intact, so the cashier can retry. On success the backend's order id and
// total are captured; a total that disagrees with the local cart sum is
// flagged, never silently adopted as correct.
func (o *Orchestrator) SubmitOrder(ctx context.Context, email string) (Snapshot, error) {
	o.mu.Lock()
	if o.processing {
		o.mu.Unlock()
		return o.Snapshot(), ErrBusy
	}
	if o.state != StateEmailEntry {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, ErrInvalidTransition
	}
	if email == "" {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, ErrEmptyEmail
	}

	o.email = email
	o.state = StateAwaitingOrderCreation
	o.processing = true
	req := buildOrderRequest(email, o.cart)
	localTotal := cart.Total(o.cart)
	o.mu.Unlock()

	order, err := o.backend.CreateOrder(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.processing = false

	if err != nil {
		log.WithError(err).Error("Order creation failed, returning to email entry")
		o.state = StateEmailEntry
		return o.snapshotLocked(), &OrderCreationError{Err: err}
	}

	o.order = &models.Order{
		ID:            order.OrderID,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: order.PaymentStatus,
	}
	o.mismatch = order.TotalAmount != localTotal
	if o.mismatch {
		log.WithFields(logrus.Fields{
			"order_id":     order.OrderID,
			"local_total":  localTotal,
			"server_total": order.TotalAmount,
		}).Warn("Backend total disagrees with local cart total")
	}
	o.state = StatePaymentPending
	log.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"total":    order.TotalAmount,
	}).Info("Order created, awaiting payment")
	return o.snapshotLocked(), nil
}

// ConfirmPayment moves PaymentPending -> AwaitingConfirmation -> Idle. This is
// a manual operator action after seeing the customer pay; nothing polls for
// it. On failure the order and payment view survive for a retry; on success
// the cart, email and order are cleared.
func (o *Orchestrator) ConfirmPayment(ctx context.Context) (Snapshot, error) {
	o.mu.Lock()
	if o.processing {
		o.mu.Unlock()
		return o.Snapshot(), ErrBusy
	}
	if o.state != StatePaymentPending {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, ErrInvalidTransition
	}
	if o.order == nil {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, ErrNoOrder
	}

	orderID := o.order.ID
	o.state = StateAwaitingConfirmation
	o.processing = true
	o.mu.Unlock()

	err := o.backend.ConfirmPayment(ctx, orderID)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.processing = false

	if err != nil {
		log.WithError(err).WithField("order_id", orderID).Error("Payment confirmation failed")
		o.state = StatePaymentPending
		return o.snapshotLocked(), &PaymentConfirmationError{OrderID: orderID, Err: err}
	}

	log.WithField("order_id", orderID).Info("Payment confirmed, resetting terminal")
	o.cart = nil
	o.email = ""
	o.order = nil
	o.mismatch = false
	o.state = StateIdle
	return o.snapshotLocked(), nil
}

// buildOrderRequest translates cart lines into the backend's item shape.
func buildOrderRequest(email string, c models.Cart) commerce.CreateOrderRequest {
	items := make([]commerce.OrderItemRequest, 0, len(c))
	for _, line := range c {
		var toppingID *string
		if line.ToppingID != "" {
			id := line.ToppingID
			toppingID = &id
		}
		items = append(items, commerce.OrderItemRequest{
			VariantID: line.VariantID,
			ToppingID: toppingID,
			Quantity:  line.Quantity,
		})
	}
	return commerce.CreateOrderRequest{CustomerEmail: email, Items: items}
}
