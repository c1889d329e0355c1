package config

import "os"

// Config holds the application configuration
// Note: The planner itself is stateless; the database only backs imported
// templates and is optional. Without DATABASE_URL the API serves builtin
// templates only.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Database (optional)
	DatabaseURL string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the hosting gateway
	// - "jwt": Validate bearer tokens locally
	AuthMode  string
	JWTSecret string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		AuthMode:    getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		JWTSecret:   getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind the hosting gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}
