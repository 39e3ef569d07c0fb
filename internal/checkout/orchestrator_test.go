package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajifood/saji-cashier-station/internal/commerce"
	"github.com/sajifood/saji-cashier-station/internal/models"
)

// fakeBackend lets each test script the order endpoints.
type fakeBackend struct {
	createOrderFn    func(ctx context.Context, req commerce.CreateOrderRequest) (*commerce.OrderResponse, error)
	confirmPaymentFn func(ctx context.Context, orderID string) error

	createCalls  []commerce.CreateOrderRequest
	confirmCalls []string
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req commerce.CreateOrderRequest) (*commerce.OrderResponse, error) {
	f.createCalls = append(f.createCalls, req)
	return f.createOrderFn(ctx, req)
}

func (f *fakeBackend) ConfirmPayment(ctx context.Context, orderID string) error {
	f.confirmCalls = append(f.confirmCalls, orderID)
	return f.confirmPaymentFn(ctx, orderID)
}

var (
	besar = models.ProductVariant{ID: "v1", Name: "Besar", Price: 20000, ProductName: "Es Teh"}
	kecil = models.ProductVariant{ID: "v2", Name: "Kecil", Price: 15000, ProductName: "Es Teh"}
	boba  = models.Topping{ID: "t1", Name: "Boba", Price: 3000}
)

func orderOK(id string, total int64) func(context.Context, commerce.CreateOrderRequest) (*commerce.OrderResponse, error) {
	return func(context.Context, commerce.CreateOrderRequest) (*commerce.OrderResponse, error) {
		return &commerce.OrderResponse{OrderID: id, TotalAmount: total, PaymentStatus: models.PaymentStatusPending}, nil
	}
}

func loadedOrchestrator(t *testing.T, backend Backend) *Orchestrator {
	t.Helper()
	o := NewOrchestrator(backend)
	_, err := o.AddItem(besar, &boba)
	require.NoError(t, err)
	_, err = o.AddItem(besar, &boba)
	require.NoError(t, err)
	_, err = o.AddItem(kecil, nil)
	require.NoError(t, err)
	// 2x23000 + 15000
	require.Equal(t, int64(61000), o.Snapshot().Total)
	return o
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	o := NewOrchestrator(&fakeBackend{})

	_, err := o.Begin()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, o.Snapshot().State)
}

func TestBeginMovesToEmailEntry(t *testing.T) {
	o := loadedOrchestrator(t, &fakeBackend{})

	snap, err := o.Begin()
	require.NoError(t, err)
	assert.Equal(t, StateEmailEntry, snap.State)

	// begin is not re-entrant
	_, err = o.Begin()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitOrderRequiresEmail(t *testing.T) {
	o := loadedOrchestrator(t, &fakeBackend{})
	_, err := o.Begin()
	require.NoError(t, err)

	_, err = o.SubmitOrder(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyEmail)
	assert.Equal(t, StateEmailEntry, o.Snapshot().State)
}

func TestSubmitOrderOutsideEmailEntry(t *testing.T) {
	o := loadedOrchestrator(t, &fakeBackend{})

	_, err := o.SubmitOrder(context.Background(), "pelanggan@example.com")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitOrderSuccess(t *testing.T) {
	backend := &fakeBackend{createOrderFn: orderOK("ord-1", 61000)}
	o := loadedOrchestrator(t, backend)
	_, err := o.Begin()
	require.NoError(t, err)

	snap, err := o.SubmitOrder(context.Background(), "pelanggan@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatePaymentPending, snap.State)
	require.NotNil(t, snap.Order)
	assert.Equal(t, "ord-1", snap.Order.ID)
	assert.Equal(t, int64(61000), snap.Order.TotalAmount)
	assert.False(t, snap.TotalMismatch)

	// the submitted items mirror the cart lines
	require.Len(t, backend.createCalls, 1)
	req := backend.createCalls[0]
	assert.Equal(t, "pelanggan@example.com", req.CustomerEmail)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "v1", req.Items[0].VariantID)
	require.NotNil(t, req.Items[0].ToppingID)
	assert.Equal(t, "t1", *req.Items[0].ToppingID)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Nil(t, req.Items[1].ToppingID)
}

func TestSubmitOrderFlagsTotalMismatch(t *testing.T) {
	backend := &fakeBackend{createOrderFn: orderOK("ord-1", 59000)}
	o := loadedOrchestrator(t, backend)
	_, err := o.Begin()
	require.NoError(t, err)

	snap, err := o.SubmitOrder(context.Background(), "pelanggan@example.com")
	require.NoError(t, err)

	assert.True(t, snap.TotalMismatch, "a disagreeing backend total must be flagged, not trusted silently")
	assert.Equal(t, int64(59000), snap.Order.TotalAmount, "the backend figure is still the authoritative one")
}

func TestSubmitOrderFailureKeepsCartAndEmail(t *testing.T) {
	backend := &fakeBackend{
		createOrderFn: func(context.Context, commerce.CreateOrderRequest) (*commerce.OrderResponse, error) {
			return nil, errors.New("backend unavailable")
		},
	}
	o := loadedOrchestrator(t, backend)
	_, err := o.Begin()
	require.NoError(t, err)

	snap, err := o.SubmitOrder(context.Background(), "pelanggan@example.com")

	var creationErr *OrderCreationError
	require.ErrorAs(t, err, &creationErr)
	assert.Equal(t, StateEmailEntry, snap.State, "failure falls back one step, never forward")
	assert.Len(t, snap.Cart, 2, "cart survives a failed submission")
	assert.Equal(t, "pelanggan@example.com", snap.Email, "email survives for the retry")
	assert.Nil(t, snap.Order)

	// the retry goes through
	backend.createOrderFn = orderOK("ord-2", 61000)
	snap, err = o.SubmitOrder(context.Background(), "pelanggan@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatePaymentPending, snap.State)
}

func TestConfirmPaymentFailureKeepsOrder(t *testing.T) {
	backend := &fakeBackend{
		createOrderFn: orderOK("ord-1", 61000),
		confirmPaymentFn: func(context.Context, string) error {
			return errors.New("backend unavailable")
		},
	}
	o := loadedOrchestrator(t, backend)
	_, err := o.Begin()
	require.NoError(t, err)
	_, err = o.SubmitOrder(context.Background(), "pelanggan@example.com")
	require.NoError(t, err)

	snap, err := o.ConfirmPayment(context.Background())

	var confirmErr *PaymentConfirmationError
	require.ErrorAs(t, err, &confirmErr)
	assert.Equal(t, "ord-1", confirmErr.OrderID)
	assert.Equal(t, StatePaymentPending, snap.State, "confirmation failure stays on the payment view")
	require.NotNil(t, snap.Order, "order and payment artifact survive for a retry")
	assert.Len(t, snap.Cart, 2)
}

func TestConfirmPaymentSuccessResetsTerminal(t *testing.T) {
	backend := &fakeBackend{
		createOrderFn:    orderOK("ord-1", 61000),
		confirmPaymentFn: func(context.Context, string) error { return nil },
	}
	o := loadedOrchestrator(t, backend)
	_, err := o.Begin()
	require.NoError(t, err)
	_, err = o.SubmitOrder(context.Background(), "pelanggan@example.com")
	require.NoError(t, err)

	snap, err := o.ConfirmPayment(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Cart)
	assert.Empty(t, snap.Email)
	assert.Nil(t, snap.Order)
	assert.Zero(t, snap.Total)
	assert.Equal(t, []string{"ord-1"}, backend.confirmCalls)
}

func TestConfirmPaymentRequiresPaymentPending(t *testing.T) {
	o := loadedOrchestrator(t, &fakeBackend{})

	_, err := o.ConfirmPayment(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCartLockedDuringPayment(t *testing.T) {
	backend := &fakeBackend{createOrderFn: orderOK("ord-1", 61000)}
	o := loadedOrchestrator(t, backend)
	_, err := o.Begin()
	require.NoError(t, err)
	_, err = o.SubmitOrder(context.Background(), "pelanggan@example.com")
	require.NoError(t, err)

	_, err = o.AddItem(besar, nil)
	assert.ErrorIs(t, err, ErrCheckoutLocked)
	_, err = o.AdjustItem("v1-t1", 1)
	assert.ErrorIs(t, err, ErrCheckoutLocked)
	_, err = o.RemoveItem("v1-t1")
	assert.ErrorIs(t, err, ErrCheckoutLocked)
}

func TestCartEditsAllowedDuringEmailEntry(t *testing.T) {
	o := loadedOrchestrator(t, &fakeBackend{})
	_, err := o.Begin()
	require.NoError(t, err)

	snap, err := o.AddItem(kecil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(76000), snap.Total)
}

func TestAdjustUnknownLine(t *testing.T) {
	o := NewOrchestrator(&fakeBackend{})
	_, err := o.AdjustItem("missing-none", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
	_, err = o.RemoveItem("missing-none")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestAbort(t *testing.T) {
	o := loadedOrchestrator(t, &fakeBackend{})
	_, err := o.Begin()
	require.NoError(t, err)

	snap, err := o.Abort()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, snap.State)
	assert.Len(t, snap.Cart, 2, "abort keeps the cart")

	_, err = o.Abort()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
