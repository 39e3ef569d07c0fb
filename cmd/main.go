package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	_ "github.com/sajifood/saji-cashier-station/docs" // Import generated docs
	"github.com/sajifood/saji-cashier-station/internal/checkout"
	"github.com/sajifood/saji-cashier-station/internal/commerce"
	"github.com/sajifood/saji-cashier-station/internal/config"
	"github.com/sajifood/saji-cashier-station/internal/controllers"
	"github.com/sajifood/saji-cashier-station/internal/middleware"
	"github.com/sajifood/saji-cashier-station/internal/services"
	"github.com/sajifood/saji-cashier-station/internal/session"
)

var (
	configuration      *config.Config
	store              *session.MemoryStore
	client             *commerce.Client
	menuService        services.MenuService
	orchestrator       *checkout.Orchestrator
	authController     *controllers.AuthController
	menuController     *controllers.MenuController
	cartController     *controllers.CartController
	checkoutController *controllers.CheckoutController
)

// @title Saji Cashier Station API
// @version 1.0
// @description Cashier terminal front-end for the Saji commerce backend
// @host localhost:8081
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Wire the station components: one session, one cart, one backend client
	store = session.NewMemoryStore()
	client = commerce.NewClient(configuration.BackendBaseURL, store)
	menuService = services.NewMenuService(client)
	orchestrator = checkout.NewOrchestrator(client)

	authController = controllers.NewAuthController(client, store)
	menuController = controllers.NewMenuController(menuService)
	cartController = controllers.NewCartController(menuService, orchestrator)
	checkoutController = controllers.NewCheckoutController(orchestrator)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting station on %s:%d (backend %s)", configuration.Host, configuration.Port, configuration.BackendBaseURL)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the station configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	// The terminal display is a browser served from another origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     configuration.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
		}

		// Protected routes: everything the terminal shows after login sits
		// behind the session guard
		guard := session.NewGuard(store, configuration.RequiredAuthority, nil)
		protectedApi := v1.Group("")
		protectedApi.Use(middleware.SessionGuard(guard))
		{
			protectedApi.GET("/menu", menuController.GetMenu)

			protectedApi.GET("/cart", cartController.GetCart)
			protectedApi.POST("/cart/items", cartController.AddItem)
			protectedApi.PATCH("/cart/items/:key", cartController.AdjustItem)
			protectedApi.DELETE("/cart/items/:key", cartController.RemoveItem)

			protectedApi.GET("/checkout", checkoutController.GetState)
			protectedApi.POST("/checkout", checkoutController.Begin)
			protectedApi.DELETE("/checkout", checkoutController.Abort)
			protectedApi.POST("/checkout/order", checkoutController.SubmitOrder)
			protectedApi.POST("/checkout/payment/confirm", checkoutController.ConfirmPayment)
			protectedApi.GET("/checkout/payment/qr", checkoutController.PaymentQR)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the station is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "saji-cashier-station",
	})
}
