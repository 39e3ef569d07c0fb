// Package commerce is the typed client for the remote commerce backend.
// Every call is a single request/response with no client-side retry.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// ErrInvalidCredentials is returned for any login failure. Network and
// authentication failures are deliberately not distinguished: the cashier sees
// one generic message either way.
var ErrInvalidCredentials = errors.New("invalid credentials")

// BackendError is any non-2xx answer from the backend.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// TokenSource supplies the bearer credential attached to outbound requests.
// The session store satisfies this.
type TokenSource interface {
	Token() string
}

// bearerTransport attaches the stored credential to every outbound request,
// the way the browser client's request interceptor did. Requests made while
// no session exists (login itself) go out without the header.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// Client calls the commerce backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL (e.g.
// "http://localhost:8080/api/v1"). tokens provides the session credential.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &bearerTransport{
				base:   http.DefaultTransport,
				tokens: tokens,
			},
		},
	}
}

// ListProducts fetches the product catalog, inactive entries included.
func (c *Client) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	var products []ProductResponse
	if err := c.doJSON(ctx, http.MethodGet, "/menu/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListToppings fetches the topping catalog, inactive entries included.
func (c *Client) ListToppings(ctx context.Context) ([]ToppingResponse, error) {
	var toppings []ToppingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/menu/toppings", nil, &toppings); err != nil {
		return nil, err
	}
	return toppings, nil
}

// CreateOrder submits the cart and returns the backend's order projection,
// unwrapped from the response envelope.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var envelope createOrderEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/orders", req, &envelope); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"order_id":    envelope.OutputSchema.OrderID,
		"status_code": envelope.StatusSchema.Code,
	}).Debug("Order created")
	order := envelope.OutputSchema
	return &order, nil
}

// ConfirmPayment marks the order as paid. The backend decides what a repeated
// confirmation does.
func (c *Client) ConfirmPayment(ctx context.Context, orderID string) error {
	return c.doJSON(ctx, http.MethodPut, "/orders/"+orderID+"/payment-confirmation", nil, nil)
}

// Login exchanges credentials for a bearer token. Any failure, transport or
// authentication, collapses to ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil || resp.Token == "" {
		log.WithError(err).Debug("Login against backend failed")
		return "", ErrInvalidCredentials
	}
	return resp.Token, nil
}

// doJSON performs one JSON request/response cycle against the backend.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	log.WithFields(logrus.Fields{"method": method, "path": path}).Trace("Calling commerce backend")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &BackendError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
