package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOOM_TOKEN_PASSPHRASE", "test-passphrase")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://api.bloom.app" {
		t.Errorf("api base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("api timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Social.GoogleClientID != "" {
		t.Errorf("google client id = %q, want empty", cfg.Social.GoogleClientID)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BLOOM_TOKEN_PASSPHRASE", "test-passphrase")
	t.Setenv("BLOOM_PORT", "9999")
	t.Setenv("BLOOM_API_URL", "http://localhost:3000")
	t.Setenv("BLOOM_API_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("api base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("api timeout = %v, want 2s", cfg.API.Timeout)
	}
}

func TestLoadRequiresPassphrase(t *testing.T) {
	t.Setenv("BLOOM_TOKEN_PASSPHRASE", "")

	if _, err := Load(); err == nil {
		t.Fatal("load without passphrase succeeded")
	}
}
