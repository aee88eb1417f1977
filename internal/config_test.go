package internal

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("expected dev env default, got %q", cfg.Env)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.Catalog.DummyJSONBaseURL != "https://dummyjson.com" {
		t.Errorf("unexpected dummyjson base URL %q", cfg.Catalog.DummyJSONBaseURL)
	}
	if cfg.Catalog.FakeStoreBaseURL != "https://fakestoreapi.com" {
		t.Errorf("unexpected fakestore base URL %q", cfg.Catalog.FakeStoreBaseURL)
	}
	if cfg.Checkout.ProcessingDelay != 3*time.Second {
		t.Errorf("expected 3s processing delay default, got %s", cfg.Checkout.ProcessingDelay)
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("ORDER_PROCESSING_DELAY", "500ms")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected prod, got %q", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Checkout.ProcessingDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms delay, got %s", cfg.Checkout.ProcessingDelay)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("expected 1h session TTL, got %s", cfg.Session.TTL)
	}
}

func TestNewConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("ORDER_PROCESSING_DELAY", "not-a-duration")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected invalid env coerced to prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected invalid level coerced to info, got %q", cfg.LogLevel)
	}
	if cfg.Checkout.ProcessingDelay != 3*time.Second {
		t.Errorf("expected unparseable delay to fall back, got %s", cfg.Checkout.ProcessingDelay)
	}
}
