package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sajifood/saji-cashier-station/internal/models"
	"github.com/sajifood/saji-cashier-station/internal/session"
)

// AuthAPI is the slice of the commerce client the auth controller needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthController exchanges cashier credentials against the backend and keeps
// the resulting bearer token in the station's session store.
type AuthController struct {
	backend AuthAPI
	store   session.Store
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(backend AuthAPI, store session.Store) *AuthController {
	return &AuthController{backend: backend, store: store}
}

// Login godoc
// @Summary Cashier login
// @Description Exchange username/password for a session at this station
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body commerce.LoginRequest true "Cashier credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.NewAPIError(models.ErrValidationFailed, "Username and password are required"),
		})
		return
	}

	token, err := ac.backend.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// transport and authentication failures look the same to the cashier
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": models.NewAPIError(models.ErrInvalidCredentials, "Username atau password salah."),
		})
		return
	}

	ac.store.SetToken(token)
	log.WithField("username", req.Username).Info("Cashier logged in")
	c.JSON(http.StatusOK, gin.H{"message": "logged_in", "redirect": "/"})
}

// Logout godoc
// @Summary Cashier logout
// @Description Drop the station session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	ac.store.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "logged_out", "redirect": "/login"})
}
