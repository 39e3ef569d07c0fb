package devbackend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sajifood/saji-cashier-station/internal/commerce"
)

var testSecret = []byte("test-secret")

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))

	server := NewServer(db, testSecret, func() time.Time { return testNow })
	return &fixture{db: db, router: server.Router()}
}

func (f *fixture) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()
	w := f.request(t, http.MethodPost, "/api/v1/auth/login", "", commerce.LoginRequest{
		Username: DefaultCashierUsername,
		Password: DefaultCashierPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp commerce.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// variantID looks up a seeded variant by product and variant name.
func (f *fixture) variantID(t *testing.T, product, variant string) string {
	t.Helper()
	var p Product
	require.NoError(t, f.db.Where("name = ?", product).First(&p).Error)
	var v ProductVariant
	require.NoError(t, f.db.Where("product_id = ? AND name = ?", p.ID, variant).First(&v).Error)
	return v.ID
}

func (f *fixture) toppingID(t *testing.T, name string) string {
	t.Helper()
	var top Topping
	require.NoError(t, f.db.Where("name = ?", name).First(&top).Error)
	return top.ID
}

func TestLoginIssuesCashierToken(t *testing.T) {
	f := newFixture(t)

	token := f.login(t)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return testSecret, nil },
		jwt.WithTimeFunc(func() time.Time { return testNow }))
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, DefaultCashierUsername, sub)
	assert.Contains(t, claims["authorities"], "CASHIER")

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(sessionTTL).Unix(), exp.Unix())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newFixture(t)

	w := f.request(t, http.MethodPost, "/api/v1/auth/login", "", commerce.LoginRequest{
		Username: DefaultCashierUsername,
		Password: "salah",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	w := f.request(t, http.MethodGet, "/api/v1/menu/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, http.MethodGet, "/api/v1/menu/products", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProductsIncludesInactive(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	w := f.request(t, http.MethodGet, "/api/v1/menu/products", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []commerce.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 3)

	var inactive int
	for _, p := range products {
		if !p.Active {
			inactive++
		}
		assert.NotEmpty(t, p.Variants)
	}
	assert.Equal(t, 1, inactive, "the inactive product is served, filtering is the caller's job")
}

func TestCreateOrderRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	variant := f.variantID(t, "Es Teh", "Besar") // 20000
	topping := f.toppingID(t, "Boba")            // 3000

	w := f.request(t, http.MethodPost, "/api/v1/orders", token, commerce.CreateOrderRequest{
		CustomerEmail: "pelanggan@example.com",
		Items: []commerce.OrderItemRequest{
			{VariantID: variant, ToppingID: &topping, Quantity: 2},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		StatusSchema commerce.StatusSchema  `json:"status_schema"`
		OutputSchema commerce.OrderResponse `json:"output_schema"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "S001", envelope.StatusSchema.Code)
	assert.Equal(t, int64(46000), envelope.OutputSchema.TotalAmount)
	assert.Equal(t, PaymentStatusPending, envelope.OutputSchema.PaymentStatus)
	assert.NotEmpty(t, envelope.OutputSchema.OrderID)

	// the stored order carries the captured unit price
	var stored Order
	require.NoError(t, f.db.Preload("Items").First(&stored, "id = ?", envelope.OutputSchema.OrderID).Error)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(23000), stored.Items[0].UnitPrice)
}

func TestCreateOrderRejectsUnknownVariant(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	w := f.request(t, http.MethodPost, "/api/v1/orders", token, commerce.CreateOrderRequest{
		CustomerEmail: "pelanggan@example.com",
		Items:         []commerce.OrderItemRequest{{VariantID: "does-not-exist", Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsEmptyOrder(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	w := f.request(t, http.MethodPost, "/api/v1/orders", token, commerce.CreateOrderRequest{
		CustomerEmail: "pelanggan@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmPayment(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	variant := f.variantID(t, "Kopi Susu", "Kecil")
	w := f.request(t, http.MethodPost, "/api/v1/orders", token, commerce.CreateOrderRequest{
		CustomerEmail: "pelanggan@example.com",
		Items:         []commerce.OrderItemRequest{{VariantID: variant, Quantity: 1}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		OutputSchema commerce.OrderResponse `json:"output_schema"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	orderID := envelope.OutputSchema.OrderID

	w = f.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/payment-confirmation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored Order
	require.NoError(t, f.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, PaymentStatusConfirmed, stored.PaymentStatus)

	// a second confirmation is a conflict
	w = f.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/payment-confirmation", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	w := f.request(t, http.MethodPut, "/api/v1/orders/nope/payment-confirmation", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, Seed(f.db))

	var count int64
	require.NoError(t, f.db.Model(&Product{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
