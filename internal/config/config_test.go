package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEUTRINO_USER_ID", "user")
	t.Setenv("NEUTRINO_API_KEY", "key")
	t.Setenv("LOOKUP_INTERVAL", "120")
	t.Setenv("RUN_ONCE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserID != "user" || cfg.APIKey != "key" {
		t.Fatalf("credentials not loaded: %q %q", cfg.UserID, cfg.APIKey)
	}
	if cfg.BaseURL != "https://neutrinoapi.net" {
		t.Fatalf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.LookupInterval != 2*time.Minute {
		t.Fatalf("LookupInterval = %v", cfg.LookupInterval)
	}
	if !cfg.RunOnce {
		t.Fatalf("RunOnce not loaded")
	}
	if cfg.HTTPTimeout != 30*time.Second || cfg.MaxConcurrency != 4 {
		t.Fatalf("defaults = %v %d", cfg.HTTPTimeout, cfg.MaxConcurrency)
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("NEUTRINO_USER_ID", "")
	t.Setenv("NEUTRINO_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without credentials")
	}
}

func TestFinalizeRejectsBadDurations(t *testing.T) {
	cfg := Config{
		BaseURL:               "https://neutrinoapi.net",
		UserID:                "u",
		APIKey:                "k",
		HTTPTimeoutSeconds:    5,
		LookupIntervalSeconds: 0,
		StorageTTLSeconds:     1,
		StorageCleanupSeconds: 1,
	}
	if err := cfg.finalize(); err == nil {
		t.Fatalf("expected error for zero lookup_interval")
	}
}
