// Package database opens the dev backend's gorm connection. The station
// itself never touches a database; all persistent state lives behind the
// commerce API.
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

const maxConnectAttempts = 5

// Connect opens the database described by cfg, retrying with exponential
// backoff while the server comes up. The connection pool is sized for the
// dev backend's single-process workload.
func Connect(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(cfg.Driver)

	log.WithFields(logrus.Fields{
		"db_driver": driver,
		"db_name":   cfg.Name,
		"db_path":   cfg.Path,
	}).Info("Connecting to database")

	var db *gorm.DB
	var err error
	backoff := time.Second

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err = open(driver, cfg)
		if err == nil {
			err = ping(db)
		}
		if err == nil {
			log.WithFields(logrus.Fields{
				"db_driver": driver,
				"attempt":   attempt,
			}).Info("Database connection established")
			return db, nil
		}

		log.WithError(err).WithField("attempt", attempt).Warn("Database connection attempt failed")
		if attempt < maxConnectAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxConnectAttempts, err)
}

func open(driver string, cfg Config) (*gorm.DB, error) {
	switch driver {
	case "postgres", "postgresql":
		return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", driver)
	}
}

// ping verifies the connection and configures the pool.
func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}
