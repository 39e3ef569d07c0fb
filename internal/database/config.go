package database

import (
	"fmt"

	"github.com/sajifood/saji-cashier-station/internal/config"
)

// Config holds the dev backend's database settings. The default is a local
// SQLite file; a Postgres instance can be pointed at with DB_DRIVER=postgres.
type Config struct {
	// Driver selects the database driver (sqlite, postgres)
	Driver string

	// PostgreSQL settings
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite settings
	Path string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Driver:   config.GetEnvWithDefault("DB_DRIVER", "sqlite"),
		Host:     config.GetEnvWithDefault("DB_HOST", "localhost"),
		Port:     config.GetEnvWithDefault("DB_PORT", "5432"),
		User:     config.GetEnvWithDefault("DB_USER", "saji"),
		Password: config.GetEnvWithDefault("DB_PASSWORD", ""),
		Name:     config.GetEnvWithDefault("DB_NAME", "saji_dev"),
		SSLMode:  config.GetEnvWithDefault("DB_SSLMODE", "disable"),
		Path:     config.GetEnvWithDefault("DB_PATH", "saji_dev.sqlite"),
	}
}

// String returns a representation with the password masked
func (c Config) String() string {
	return fmt.Sprintf("Config{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds the driver-specific data source name
func (c Config) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
