package devbackend

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server is the dev backend's HTTP surface.
type Server struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

// NewServer builds a Server over an already-migrated database. now may be nil
// outside of tests.
func NewServer(db *gorm.DB, secret []byte, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{db: db, secret: secret, now: now}
}

// Router returns the gin engine serving the commerce API the station's
// client expects.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", s.login)

		protected := v1.Group("")
		protected.Use(requireToken(s.secret, s.now))
		{
			protected.GET("/menu/products", s.listProducts)
			protected.GET("/menu/toppings", s.listToppings)
			protected.POST("/orders", s.createOrder)
			protected.PUT("/orders/:id/payment-confirmation", s.confirmPayment)
		}
	}

	return router
}
