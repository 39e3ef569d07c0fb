package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"github.com/sajifood/saji-cashier-station/internal/checkout"
	"github.com/sajifood/saji-cashier-station/internal/models"
)

// qrSize is the pixel edge of the generated payment artifact.
const qrSize = 256

// CheckoutController drives the checkout flow over the station API
type CheckoutController struct {
	orchestrator *checkout.Orchestrator
}

// NewCheckoutController creates a new instance of CheckoutController
func NewCheckoutController(orchestrator *checkout.Orchestrator) *CheckoutController {
	return &CheckoutController{orchestrator: orchestrator}
}

// GetState godoc
// @Summary Current checkout state
// @Description Cart, state machine position, customer email and current order
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/checkout [get]
func (cc *CheckoutController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, toCheckoutView(cc.orchestrator.Snapshot()))
}

// Begin godoc
// @Summary Start checkout
// @Description Move to email entry; requires a non-empty cart
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/checkout [post]
func (cc *CheckoutController) Begin(c *gin.Context) {
	snap, err := cc.orchestrator.Begin()
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutView(snap))
}

// SubmitOrder godoc
// @Summary Submit the order
// @Description Send the cart and customer email to the backend; on success the payment view opens
// @Tags checkout
// @Accept json
// @Produce json
// @Param order body object true "Customer email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/checkout/order [post]
func (cc *CheckoutController) SubmitOrder(c *gin.Context) {
	var req struct {
		CustomerEmail string `json:"customerEmail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.NewAPIError(models.ErrValidationFailed, "Invalid request body"),
		})
		return
	}

	snap, err := cc.orchestrator.SubmitOrder(c.Request.Context(), req.CustomerEmail)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutView(snap))
}

// ConfirmPayment godoc
// @Summary Confirm payment receipt
// @Description Manual operator action after the customer has paid via the QR artifact
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/checkout/payment/confirm [post]
func (cc *CheckoutController) ConfirmPayment(c *gin.Context) {
	snap, err := cc.orchestrator.ConfirmPayment(c.Request.Context())
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutView(snap))
}

// Abort godoc
// @Summary Cancel email entry
// @Description Close the email step and return to the cart; the cart is preserved
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/checkout [delete]
func (cc *CheckoutController) Abort(c *gin.Context) {
	snap, err := cc.orchestrator.Abort()
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutView(snap))
}

// PaymentQR godoc
// @Summary Payment artifact
// @Description QR image the customer scans to pay the current order
// @Tags checkout
// @Produce png
// @Success 200 {string} binary "PNG image"
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/checkout/payment/qr [get]
func (cc *CheckoutController) PaymentQR(c *gin.Context) {
	snap := cc.orchestrator.Snapshot()
	if snap.Order == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": models.NewAPIError(models.ErrNoCurrentOrder, "No order awaiting payment"),
		})
		return
	}

	payload := fmt.Sprintf("SAJI-PAY|order=%s|amount=%d", snap.Order.ID, snap.Order.TotalAmount)
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		log.WithError(err).Error("Failed to encode payment QR")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": models.NewAPIError(models.ErrInternalServer, "Failed to render payment artifact"),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
