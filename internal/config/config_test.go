package config

import (
	"errors"
	"testing"
)

func TestFromEnvRequiresAPIKey(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")

	_, err := FromEnv()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "test-key")
	t.Setenv(EnvModelName, "")
	t.Setenv(EnvMaxRetries, "")
	t.Setenv(EnvRequestsPerMinute, "")
	t.Setenv(EnvBaseDelay, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.FallbackModel != DefaultFallbackModel {
		t.Errorf("FallbackModel = %q, want %q", cfg.FallbackModel, DefaultFallbackModel)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
	}
	if cfg.RequestsPerMinute != DefaultRequestsPerMinute {
		t.Errorf("RequestsPerMinute = %d, want %d", cfg.RequestsPerMinute, DefaultRequestsPerMinute)
	}
	if cfg.BaseDelaySeconds != DefaultBaseDelaySeconds {
		t.Errorf("BaseDelaySeconds = %v, want %v", cfg.BaseDelaySeconds, DefaultBaseDelaySeconds)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.Domain != "general" {
		t.Errorf("Domain = %q, want general", cfg.Domain)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "test-key")
	t.Setenv(EnvModelName, "gemini-2.0-pro")
	t.Setenv(EnvMaxRetries, "5")
	t.Setenv(EnvRequestsPerMinute, "10")
	t.Setenv(EnvBaseDelay, "2.5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Model != "gemini-2.0-pro" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.RequestsPerMinute != 10 {
		t.Errorf("RequestsPerMinute = %d", cfg.RequestsPerMinute)
	}
	if cfg.BaseDelaySeconds != 2.5 {
		t.Errorf("BaseDelaySeconds = %v", cfg.BaseDelaySeconds)
	}
}

func TestFromEnvInvalidNumbersFallBack(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "test-key")
	t.Setenv(EnvMaxRetries, "not-a-number")
	t.Setenv(EnvBaseDelay, "-1")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want default %d", cfg.MaxRetries, DefaultMaxRetries)
	}
	if cfg.BaseDelaySeconds != DefaultBaseDelaySeconds {
		t.Errorf("BaseDelaySeconds = %v, want default %v", cfg.BaseDelaySeconds, DefaultBaseDelaySeconds)
	}
}

func TestIsValidDomain(t *testing.T) {
	for _, d := range Domains {
		if !IsValidDomain(d) {
			t.Errorf("IsValidDomain(%q) = false", d)
		}
	}
	if !IsValidDomain("Medical") {
		t.Error("domain check should be case-insensitive")
	}
	if IsValidDomain("poetry") {
		t.Error("IsValidDomain(poetry) = true")
	}
}
