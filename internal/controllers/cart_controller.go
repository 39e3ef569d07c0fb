package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajifood/saji-cashier-station/internal/checkout"
	"github.com/sajifood/saji-cashier-station/internal/models"
	"github.com/sajifood/saji-cashier-station/internal/services"
)

// CartController exposes the terminal's cart operations
type CartController struct {
	menu         services.MenuService
	orchestrator *checkout.Orchestrator
}

// NewCartController creates a new instance of CartController
func NewCartController(menu services.MenuService, orchestrator *checkout.Orchestrator) *CartController {
	return &CartController{menu: menu, orchestrator: orchestrator}
}

// GetCart godoc
// @Summary Get the cart
// @Description Current cart lines and total
// @Tags cart
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/cart [get]
func (cc *CartController) GetCart(c *gin.Context) {
	snap := cc.orchestrator.Snapshot()
	c.JSON(http.StatusOK, toCartView(snap.Cart, snap.Total))
}

// AddItem godoc
// @Summary Add a selection to the cart
// @Description Merge a (variant, topping) selection into the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param selection body object true "variantId and optional toppingId"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/cart/items [post]
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		VariantID string `json:"variantId" binding:"required"`
		ToppingID string `json:"toppingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.NewAPIError(models.ErrValidationFailed, "variantId is required"),
		})
		return
	}

	variant, ok := cc.menu.Variant(req.VariantID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": models.NewAPIError(models.ErrNotFound, "Unknown variant; load the menu first"),
		})
		return
	}

	var topping *models.Topping
	if req.ToppingID != "" {
		t, ok := cc.menu.Topping(req.ToppingID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.NewAPIError(models.ErrNotFound, "Unknown topping"),
			})
			return
		}
		topping = &t
	}

	snap, err := cc.orchestrator.AddItem(variant, topping)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(snap.Cart, snap.Total))
}

// AdjustItem godoc
// @Summary Adjust a cart line quantity
// @Description Apply a quantity delta; the line is dropped at zero
// @Tags cart
// @Accept json
// @Produce json
// @Param key path string true "Cart line key"
// @Param delta body object true "Quantity delta"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/cart/items/{key} [patch]
func (cc *CartController) AdjustItem(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.NewAPIError(models.ErrValidationFailed, "delta is required and must be non-zero"),
		})
		return
	}

	snap, err := cc.orchestrator.AdjustItem(c.Param("key"), req.Delta)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(snap.Cart, snap.Total))
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Description Drop the line with the given key
// @Tags cart
// @Produce json
// @Param key path string true "Cart line key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/cart/items/{key} [delete]
func (cc *CartController) RemoveItem(c *gin.Context) {
	snap, err := cc.orchestrator.RemoveItem(c.Param("key"))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(snap.Cart, snap.Total))
}

// respondCheckoutError maps orchestrator errors onto HTTP answers. Backend
// failures surface as a generic message; everything else is a client mistake.
func respondCheckoutError(c *gin.Context, err error) {
	var creationErr *checkout.OrderCreationError
	var confirmErr *checkout.PaymentConfirmationError

	switch {
	case errors.As(err, &creationErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": models.NewAPIError(models.ErrOrderCreationFailed, "Gagal membuat pesanan!"),
		})
	case errors.As(err, &confirmErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": models.NewAPIError(models.ErrPaymentConfirmFailed, "Gagal mengonfirmasi pembayaran!"),
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.NewAPIError(models.ErrCartEmpty, "Keranjang masih kosong."),
		})
	case errors.Is(err, checkout.ErrEmptyEmail):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.NewAPIError(models.ErrValidationFailed, "Email pelanggan tidak boleh kosong!"),
		})
	case errors.Is(err, checkout.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": models.NewAPIError(models.ErrCartLineNotFound, "Cart line not found"),
		})
	case errors.Is(err, checkout.ErrCheckoutLocked):
		c.JSON(http.StatusConflict, gin.H{
			"error": models.NewAPIError(models.ErrCheckoutLocked, "Cart is locked while payment is in progress"),
		})
	case errors.Is(err, checkout.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{
			"error": models.NewAPIError(models.ErrCheckoutBusy, "Another checkout operation is in progress"),
		})
	case errors.Is(err, checkout.ErrNoOrder):
		c.JSON(http.StatusConflict, gin.H{
			"error": models.NewAPIError(models.ErrNoCurrentOrder, "No order awaiting payment"),
		})
	case errors.Is(err, checkout.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": models.NewAPIError(models.ErrInvalidTransition, "Operation not valid in the current checkout state"),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": models.NewAPIError(models.ErrInternalServer, "Unexpected error"),
		})
	}
}
