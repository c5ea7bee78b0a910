// Package config provides application configuration management.
// Configuration is loaded from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	// Database (MongoDB)
	DBUser string `env:"DB_USER,required"`
	DBPass string `env:"DB_PASS,required"`
	DBHost string `env:"DB_HOST" envDefault:"localhost:27017"`
	DBName string `env:"DB_NAME" envDefault:"RestaurentDB"`

	// JWT signing secret
	AccessToken string `env:"ACCESS_TOKEN,required"`

	// Stripe
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`

	// Email receipts (disabled when the API key is empty)
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	EmailSender    string `env:"EMAIL_SENDER"`

	// Comma-separated list of allowed CORS origins; empty allows any origin
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
}

// MongoURI assembles the connection string for the document store.
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s/?retryWrites=true&w=majority", c.DBUser, c.DBPass, c.DBHost)
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
