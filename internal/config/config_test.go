package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	required := map[string]string{
		"DATABASE_URL":       "postgres://localhost:5432/daleel",
		"REDIS_URL":          "redis://localhost:6379/0",
		"JWT_SECRET":         "test-secret",
		"AI_GATEWAY_API_KEY": "test-key",
	}
	for key, val := range required {
		os.Setenv(key, val)
	}
	os.Setenv("AI_GATEWAY_RETRIES", "5")
	defer func() {
		for key := range required {
			os.Unsetenv(key)
		}
		os.Unsetenv("AI_GATEWAY_RETRIES")
	}()

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.GatewayURL != "https://ai.gateway.lovable.dev/v1" {
		t.Errorf("Expected default gateway URL, got %q", cfg.GatewayURL)
	}
	if cfg.GatewayModel != "google/gemini-2.5-flash" {
		t.Errorf("Expected default gateway model, got %q", cfg.GatewayModel)
	}
	if cfg.GatewayRetries != 5 {
		t.Errorf("Expected retries override 5, got %d", cfg.GatewayRetries)
	}
	if cfg.ChatDailyQuota != 50 {
		t.Errorf("Expected default daily quota 50, got %d", cfg.ChatDailyQuota)
	}
	if cfg.DatabaseURL != required["DATABASE_URL"] {
		t.Errorf("Expected database URL from env, got %q", cfg.DatabaseURL)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	os.Unsetenv("NONEXISTENT_REQUIRED_VAR")
	mustGetEnv("NONEXISTENT_REQUIRED_VAR")
}
