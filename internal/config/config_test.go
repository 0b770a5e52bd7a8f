package config

import "testing"

func TestGetEnvFallback(t *testing.T) {
	if got := getEnv("GATEWAY_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want %q", got, "fallback")
	}

	t.Setenv("GATEWAY_TEST_SET_KEY", "value")
	if got := getEnv("GATEWAY_TEST_SET_KEY", "fallback"); got != "value" {
		t.Errorf("getEnv() = %q, want %q", got, "value")
	}

	// An empty value set in the environment still wins over the fallback
	t.Setenv("GATEWAY_TEST_EMPTY_KEY", "")
	if got := getEnv("GATEWAY_TEST_EMPTY_KEY", "fallback"); got != "" {
		t.Errorf("getEnv() = %q, want empty string", got)
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("VERIFY_TOKEN", "secret")
	t.Setenv("GRAPH_API_BASE_URL", "http://localhost:1234/v18.0")

	cfg := LoadConfig()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.VerifyToken != "secret" {
		t.Errorf("VerifyToken = %q, want secret", cfg.VerifyToken)
	}
	if cfg.GraphAPIBaseURL != "http://localhost:1234/v18.0" {
		t.Errorf("GraphAPIBaseURL = %q, want override", cfg.GraphAPIBaseURL)
	}
}
