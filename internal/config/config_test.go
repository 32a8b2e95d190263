package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("INFERENCE_TIMEOUT", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "feedback.created" {
		t.Fatalf("expected default subject feedback.created, got %q", cfg.NATSSubject)
	}
	if cfg.InferenceTimeout != 5*time.Second {
		t.Fatalf("expected default inference timeout 5s, got %v", cfg.InferenceTimeout)
	}
	if cfg.RateLimitRPS != 10 {
		t.Fatalf("expected default rate limit rps 10, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 20 {
		t.Fatalf("expected default rate limit burst 20, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT", "750ms")
	t.Setenv("INFERENCE_MODEL", "roberta-sentiment")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")

	cfg := Load()
	if cfg.InferenceTimeout != 750*time.Millisecond {
		t.Fatalf("expected inference timeout 750ms, got %v", cfg.InferenceTimeout)
	}
	if cfg.InferenceModel != "roberta-sentiment" {
		t.Fatalf("expected inference model override, got %q", cfg.InferenceModel)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit rps 2.5, got %v", cfg.RateLimitRPS)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Fatalf("expected gemini model override, got %q", cfg.GeminiModel)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := Load()
	if cfg.InferenceTimeout != 5*time.Second {
		t.Fatalf("expected fallback inference timeout 5s, got %v", cfg.InferenceTimeout)
	}
	if cfg.RateLimitBurst != 20 {
		t.Fatalf("expected fallback rate limit burst 20, got %d", cfg.RateLimitBurst)
	}
}
