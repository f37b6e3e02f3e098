// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds all configuration for the API and the worker.
type Config struct {
	Port             string
	RunLocal         bool
	OrdersTable      string
	ProductsTable    string
	QueueURL         string
	MailFrom         string
	MetricsNamespace string
	LogLevel         string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		RunLocal:         os.Getenv("RUN_LOCAL") == "true",
		OrdersTable:      getEnv("ORDERS_TABLE", "storefront-orders"),
		ProductsTable:    getEnv("PRODUCTS_TABLE", "storefront-products"),
		QueueURL:         os.Getenv("ORDERS_QUEUE_URL"),
		MailFrom:         getEnv("MAIL_FROM", "orders@storefront.example"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "Storefront"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OrdersTable == "" {
		return fmt.Errorf("ORDERS_TABLE is required")
	}
	if c.ProductsTable == "" {
		return fmt.Errorf("PRODUCTS_TABLE is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
