// Package config provides configuration loading and validation from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	LogLevel          string        // debug, info, warn, error
	ListenAddr        string        // Server listen address (e.g., ":8080")
	MetricsListenAddr string        // Metrics listener address (e.g., "localhost:9090")
	DatabasePath      string        // SQLite database path
	TokenSecret       string        // Required: HMAC secret for signing admin tokens
	TokenTTL          time.Duration // Lifetime of issued admin tokens
	CORSOrigins       []string      // Allowed CORS origins, comma-separated in env
	UploadDir         string        // Directory for uploaded images
	SenderEmail       string        // From address for outbound contact emails
	ContactEmail      string        // Recipient for contact form notifications
}

// Load parses configuration from environment variables.
// All configuration options except TOKEN_SECRET have sensible defaults.
func Load() (*Config, error) {
	logLevel := os.Getenv("LOG_LEVEL")
	listenAddr := os.Getenv("LISTEN_ADDR")
	metricsListenAddr := os.Getenv("METRICS_LISTEN_ADDR")
	databasePath := os.Getenv("DATABASE_PATH")
	tokenSecret := os.Getenv("TOKEN_SECRET")
	tokenTTL := os.Getenv("TOKEN_TTL")
	corsOrigins := os.Getenv("CORS_ORIGINS")
	uploadDir := os.Getenv("UPLOAD_DIR")
	senderEmail := os.Getenv("SENDER_EMAIL")
	contactEmail := os.Getenv("CONTACT_EMAIL")

	// Set defaults for optional fields
	if logLevel == "" {
		logLevel = "info"
	}

	if listenAddr == "" {
		listenAddr = ":8080"
	}

	if metricsListenAddr == "" {
		metricsListenAddr = "localhost:9090"
	}

	if databasePath == "" {
		databasePath = "/data/site.db"
	}

	if uploadDir == "" {
		uploadDir = "/data/uploads"
	}

	if senderEmail == "" {
		senderEmail = "info@rudimedia.de"
	}

	if contactEmail == "" {
		contactEmail = "info@rudimedia.de"
	}

	ttl := time.Hour
	if tokenTTL != "" {
		parsed, err := time.ParseDuration(tokenTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", tokenTTL, err)
		}
		ttl = parsed
	}

	var origins []string
	if corsOrigins != "" {
		for _, o := range strings.Split(corsOrigins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	cfg := &Config{
		LogLevel:          logLevel,
		ListenAddr:        listenAddr,
		MetricsListenAddr: metricsListenAddr,
		DatabasePath:      databasePath,
		TokenSecret:       tokenSecret,
		TokenTTL:          ttl,
		CORSOrigins:       origins,
		UploadDir:         uploadDir,
		SenderEmail:       senderEmail,
		ContactEmail:      contactEmail,
	}

	return cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET environment variable is required")
	}
	if len(c.TokenSecret) < 32 {
		return fmt.Errorf("TOKEN_SECRET must be at least 32 characters")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
