package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sajifood/saji-cashier-station/internal/models"
	"github.com/sajifood/saji-cashier-station/internal/services"
)

// MenuController serves the sellable menu to the terminal
type MenuController struct {
	menu services.MenuService
}

// NewMenuController creates a new instance of MenuController
func NewMenuController(menu services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

// GetMenu godoc
// @Summary Get the menu
// @Description Fetch active product variants and toppings from the commerce backend
// @Tags menu
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/menu [get]
func (mc *MenuController) GetMenu(c *gin.Context) {
	menu, err := mc.menu.Load(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load menu from backend")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": models.NewAPIError(models.ErrMenuUnavailable, "Gagal memuat data dari server!"),
		})
		return
	}
	c.JSON(http.StatusOK, toMenuView(menu))
}
