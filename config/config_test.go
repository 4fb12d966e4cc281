package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("RENDER_TOKEN_TTL", "not-a-duration")
	t.Setenv("AI_RATE_LIMIT_PER_MINUTE", "-3")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AIProvider != ProviderAzure {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, ProviderAzure)
	}
	if cfg.RenderTokenTTL != 24*time.Hour {
		t.Errorf("RenderTokenTTL = %v, want 24h", cfg.RenderTokenTTL)
	}
	if cfg.AIRateLimitPerMinute != 10 {
		t.Errorf("AIRateLimitPerMinute = %d, want 10", cfg.AIRateLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.AIProvider != ProviderGemini {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, ProviderGemini)
	}
	if cfg.AITimeout != 5*time.Second {
		t.Errorf("AITimeout = %v, want 5s", cfg.AITimeout)
	}
}

func TestAIConfigured(t *testing.T) {
	azure := Config{
		AIProvider:            ProviderAzure,
		AzureOpenAIAPIKey:     "key",
		AzureOpenAIEndpoint:   "https://example.openai.azure.com",
		AzureOpenAIDeployment: "gpt-4o-mini",
		AzureOpenAIAPIVersion: "2025-01-01-preview",
	}

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"azure complete", azure, true},
		{"azure missing key", func() Config { c := azure; c.AzureOpenAIAPIKey = ""; return c }(), false},
		{"azure missing deployment", func() Config { c := azure; c.AzureOpenAIDeployment = ""; return c }(), false},
		{"gemini with key", Config{AIProvider: ProviderGemini, GeminiAPIKey: "key"}, true},
		{"gemini without key", Config{AIProvider: ProviderGemini}, false},
		{"unknown provider", Config{AIProvider: "llama", GeminiAPIKey: "key"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.AIConfigured(); got != tt.want {
				t.Errorf("AIConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}
