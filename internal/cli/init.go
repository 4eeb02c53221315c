// Package cli provides common initialization shared by cmd/cashbook
// and cmd/cashbook-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"cashbook/internal/config"
	"cashbook/internal/events"
	"cashbook/internal/log"
)

// SetupLogger initializes structured logging with default settings and
// sets it as the process default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// ConnectEvents opens the AMQP client, or returns nil when no broker
// URL is configured.
func ConnectEvents(logger *log.Logger, cfg *config.Config) *events.Client {
	if cfg.AMQPURL == "" {
		logger.Warn("AMQP not configured, transaction events disabled")
		return nil
	}
	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to connect to AMQP, transaction events disabled", "error", err)
		return nil
	}
	return client
}
