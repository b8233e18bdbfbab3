package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"OPENAI_MAX_TOKENS", "ARK_API_KEY", "ARK_MODEL", "CHAT_TIMEOUT", "CHAT_PERSONA",
		"CHAT_PROMPT_VARIANT", "CHAT_SYSTEM_PROMPT", "CHAT_RATE_LIMIT", "CHAT_RATE_WINDOW",
		"CHAT_WEBSOCKET_ENABLED", "STATIC_DIR", "CORS_ALLOWED_ORIGIN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gpt-3.5-turbo" {
		t.Fatalf("unexpected model %s", cfg.AI.Model)
	}
	if cfg.AI.BaseURL != "https://api.openai.com/v1" {
		t.Fatalf("unexpected base url %s", cfg.AI.BaseURL)
	}
	if cfg.AI.MaxTokens != 500 {
		t.Fatalf("expected 500 max tokens, got %d", cfg.AI.MaxTokens)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.AI.Timeout)
	}
	if cfg.AI.PromptVariant != PromptFull {
		t.Fatalf("expected full prompt, got %s", cfg.AI.PromptVariant)
	}
	if cfg.AI.Configured() {
		t.Fatal("expected AI to be unconfigured without a key")
	}
	if cfg.Site.RateLimit != 0 || !cfg.Site.WebSocketEnabled {
		t.Fatalf("unexpected site defaults: %+v", cfg.Site)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1/")
	t.Setenv("OPENAI_MAX_TOKENS", "200")
	t.Setenv("CHAT_TIMEOUT", "5")
	t.Setenv("CHAT_PROMPT_VARIANT", "Concise")
	t.Setenv("CHAT_RATE_LIMIT", "10")
	t.Setenv("CHAT_RATE_WINDOW", "30s")
	t.Setenv("CHAT_WEBSOCKET_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.AI.APIKey != "sk-test" || !cfg.AI.Configured() {
		t.Fatalf("unexpected api key %q", cfg.AI.APIKey)
	}
	if cfg.AI.BaseURL != "http://localhost:11434/v1" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.AI.BaseURL)
	}
	if cfg.AI.MaxTokens != 200 {
		t.Fatalf("expected 200 max tokens, got %d", cfg.AI.MaxTokens)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.AI.Timeout)
	}
	if cfg.AI.PromptVariant != PromptConcise {
		t.Fatalf("expected concise prompt, got %s", cfg.AI.PromptVariant)
	}
	if cfg.Site.RateLimit != 10 || cfg.Site.RateWindow != 30*time.Second {
		t.Fatalf("unexpected limiter config: %+v", cfg.Site)
	}
	if cfg.Site.WebSocketEnabled {
		t.Fatal("expected websocket disabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port with space", "PORT", "80 80"},
		{"non-numeric max tokens", "OPENAI_MAX_TOKENS", "lots"},
		{"zero max tokens", "OPENAI_MAX_TOKENS", "0"},
		{"bad timeout", "CHAT_TIMEOUT", "soon"},
		{"negative timeout", "CHAT_TIMEOUT", "-3s"},
		{"unknown variant", "CHAT_PROMPT_VARIANT", "verbose"},
		{"unknown provider", "LLM_PROVIDER", "carrier-pigeon"},
		{"bad websocket flag", "CHAT_WEBSOCKET_ENABLED", "maybe"},
		{"negative rate limit", "CHAT_RATE_LIMIT", "-1"},
		{"zero seconds timeout", "CHAT_TIMEOUT", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoadArkRequiresModel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "ark")
	t.Setenv("ARK_API_KEY", "ark-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when ARK_MODEL is missing")
	}

	t.Setenv("ARK_MODEL", "doubao-pro")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.APIKey != "ark-key" || cfg.AI.Region != "cn-beijing" {
		t.Fatalf("unexpected ark config: %+v", cfg.AI)
	}
}
