package main

import (
	"fmt"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/sajifood/saji-cashier-station/internal/config"
	"github.com/sajifood/saji-cashier-station/internal/database"
	"github.com/sajifood/saji-cashier-station/internal/devbackend"
)

// Dev stand-in for the commerce backend. Serves the menu, order and auth
// endpoints the station calls, backed by a local database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
	log.SetFormatter(&log.JSONFormatter{})

	db, err := database.Connect(database.FromEnv())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := devbackend.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := devbackend.Seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	secret := []byte(config.GetEnvWithDefault("JWT_SECRET", "dev-secret-change-me"))
	port := config.GetEnvAsType("BACKEND_PORT", 8080)
	host := config.GetEnvWithDefault("BACKEND_HOST", "localhost")

	server := devbackend.NewServer(db, secret, nil)
	router := server.Router()

	log.Infof("Starting dev backend on %s:%d", host, port)
	router.Run(fmt.Sprintf("%v:%d", host, port))
}
