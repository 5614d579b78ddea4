package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Application base URL (for canonical links)
	BaseURL string

	// WhatsApp destination number in international format, digits only.
	WhatsAppNumber string

	// Checkout wizard session handling
	CheckoutSessionTTL  time.Duration
	CheckoutSubmitReset time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Base URL defaults to localhost for development
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "5593992273046"),

		CheckoutSessionTTL:  getEnvDuration("CHECKOUT_SESSION_TTL", 30*time.Minute),
		CheckoutSubmitReset: getEnvDuration("CHECKOUT_SUBMIT_RESET", 600*time.Millisecond),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	digits := strings.TrimSpace(cfg.WhatsAppNumber)
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("WHATSAPP_NUMBER must contain digits only, got: %s", cfg.WhatsAppNumber)
		}
	}
	if digits == "" {
		return nil, fmt.Errorf("WHATSAPP_NUMBER is required")
	}
	cfg.WhatsAppNumber = digits

	if cfg.CheckoutSessionTTL <= 0 {
		return nil, fmt.Errorf("CHECKOUT_SESSION_TTL must be positive, got: %s", cfg.CheckoutSessionTTL)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
