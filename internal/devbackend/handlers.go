package devbackend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sajifood/saji-cashier-station/internal/commerce"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

func (s *Server) login(c *gin.Context) {
	var req commerce.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	var user CashierUser
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := issueToken(s.secret, user, s.now())
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	log.WithField("username", user.Username).Info("Cashier session issued")
	c.JSON(http.StatusOK, commerce.LoginResponse{Token: token})
}

// listProducts returns the full catalog, inactive products included; filtering
// is the caller's job.
func (s *Server) listProducts(c *gin.Context) {
	var products []Product
	if err := s.db.Preload("Variants").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	out := make([]commerce.ProductResponse, 0, len(products))
	for _, p := range products {
		variants := make([]commerce.ProductVariantResponse, 0, len(p.Variants))
		for _, v := range p.Variants {
			variants = append(variants, commerce.ProductVariantResponse{
				VariantID:   v.ID,
				VariantName: v.Name,
				Price:       v.Price,
			})
		}
		out = append(out, commerce.ProductResponse{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: optional(p.Description),
			ImageURL:    optional(p.ImageURL),
			Active:      p.Active,
			Variants:    variants,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listToppings(c *gin.Context) {
	var toppings []Topping
	if err := s.db.Find(&toppings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list toppings"})
		return
	}

	out := make([]commerce.ToppingResponse, 0, len(toppings))
	for _, t := range toppings {
		out = append(out, commerce.ToppingResponse{
			ToppingID: t.ID,
			Name:      t.Name,
			Price:     t.Price,
			ImageURL:  optional(t.ImageURL),
			Active:    t.Active,
		})
	}
	c.JSON(http.StatusOK, out)
}

// createOrder persists a submitted order. The total is recomputed from
// catalog prices; an unknown variant or topping rejects the whole order.
func (s *Server) createOrder(c *gin.Context) {
	var req commerce.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order body"})
		return
	}
	if req.CustomerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerEmail is required"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order has no items"})
		return
	}

	order := Order{
		CustomerEmail: req.CustomerEmail,
		PaymentStatus: PaymentStatusPending,
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be positive"})
			return
		}

		var variant ProductVariant
		if err := s.db.First(&variant, "id = ?", item.VariantID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variant: " + item.VariantID})
			return
		}
		unitPrice := variant.Price

		if item.ToppingID != nil {
			var topping Topping
			if err := s.db.First(&topping, "id = ?", *item.ToppingID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topping: " + *item.ToppingID})
				return
			}
			unitPrice += topping.Price
		}

		order.Items = append(order.Items, OrderItem{
			VariantID: item.VariantID,
			ToppingID: item.ToppingID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
		order.TotalAmount += unitPrice * int64(item.Quantity)
	}

	if err := s.db.Create(&order).Error; err != nil {
		log.WithError(err).Error("Failed to persist order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalAmount,
	}).Info("Order created")

	c.JSON(http.StatusOK, gin.H{
		"status_schema": commerce.StatusSchema{Code: "S001", Message: "Success"},
		"output_schema": commerce.OrderResponse{
			OrderID:       order.ID,
			TotalAmount:   order.TotalAmount,
			PaymentStatus: order.PaymentStatus,
		},
	})
}

// confirmPayment marks an order paid. Confirming twice is a conflict, not an
// idempotent no-op, so a lost race at the till is visible to the operator.
func (s *Server) confirmPayment(c *gin.Context) {
	orderID := c.Param("id")

	var order Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}
	if order.PaymentStatus == PaymentStatusConfirmed {
		c.JSON(http.StatusConflict, gin.H{"error": "payment already confirmed"})
		return
	}

	order.PaymentStatus = PaymentStatusConfirmed
	if err := s.db.Save(&order).Error; err != nil {
		log.WithError(err).WithField("order_id", orderID).Error("Failed to confirm payment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm payment"})
		return
	}

	log.WithField("order_id", orderID).Info("Payment confirmed")
	c.JSON(http.StatusOK, gin.H{"orderId": order.ID, "paymentStatus": order.PaymentStatus})
}

// optional maps an empty string to a null wire field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
