package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config holds the station configuration, loaded from environment variables.
// The station carries no signing secret: it only decodes the session credential
// locally, signature trust stays with the commerce backend.
type Config struct {
	// Server configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Remote commerce backend
	BackendBaseURL string `json:"backend_base_url"`

	// Authority the session credential must carry to operate the station
	RequiredAuthority string `json:"required_authority"`

	// Origins allowed to call the station API (the terminal display)
	CORSOrigins []string `json:"cors_origins"`

	// Logging configuration
	LogLevel string `json:"log_level"`
}

// LoadConfig reads the station configuration from environment variables and
// validates it. Returns an error if a required variable is missing or invalid.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")

	port := GetEnvAsType("APP_PORT", 8081)

	backendURL := GetEnvWithDefault("BACKEND_BASE_URL", "")
	if backendURL == "" {
		return nil, errors.New("BACKEND_BASE_URL environment variable is required")
	}
	// validate URL with net/url
	if _, err := url.ParseRequestURI(backendURL); err != nil {
		return nil, errors.New("invalid BACKEND_BASE_URL format: " + backendURL)
	}

	config := &Config{
		Port:              port,
		Host:              GetEnvWithDefault("APP_HOST", "localhost"),
		BackendBaseURL:    strings.TrimRight(backendURL, "/"),
		RequiredAuthority: GetEnvWithDefault("REQUIRED_AUTHORITY", "CASHIER"),
		CORSOrigins:       splitOrigins(GetEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:          GetEnvWithDefault("LOG_LEVEL", "info"),
	}
	log.Infof("Configuration loaded: %+v", config)
	return config, nil
}

// splitOrigins parses a comma-separated origin list
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
