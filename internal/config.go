package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Session  SessionConfig
	Metrics  MetricsConfig
}

// CatalogConfig holds the two upstream catalog endpoints and the shared
// response cache settings.
type CatalogConfig struct {
	DummyJSONBaseURL string
	FakeStoreBaseURL string
	RequestTimeout   time.Duration
	CacheSize        int
	CacheTTL         time.Duration
}

// CheckoutConfig tunes the checkout pipeline. ProcessingDelay stands in for
// the order-submission round trip; tests set it to zero.
type CheckoutConfig struct {
	ProcessingDelay time.Duration
}

// SessionConfig scopes browsing-session state.
type SessionConfig struct {
	TTL time.Duration
}

type MetricsConfig struct {
	Namespace string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		Catalog: CatalogConfig{
			DummyJSONBaseURL: getEnv("DUMMYJSON_BASE_URL", "https://dummyjson.com"),
			FakeStoreBaseURL: getEnv("FAKESTORE_BASE_URL", "https://fakestoreapi.com"),
			RequestTimeout:   getEnvDuration("CATALOG_REQUEST_TIMEOUT", 10*time.Second),
			CacheSize:        int(getEnvInt("CATALOG_CACHE_SIZE", 256)),
			CacheTTL:         getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: getEnvDuration("ORDER_PROCESSING_DELAY", 3*time.Second),
		},
		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "vitrine"),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Catalog.CacheSize <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_SIZE must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
