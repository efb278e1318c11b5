package config

import (
	"testing"
)

// setRequiredEnv fills the variables Load panics without. Optional keys are
// blanked so each test starts from the documented defaults.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/flashdeck_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-key")

	for _, key := range []string{"PORT", "ENV", "GEMINI_CONCURRENT_REQUESTS", "STORAGE_PATH", "FRONTEND_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Expected default env development, got %q", cfg.Env)
	}
	if cfg.GeminiConcurrentReqs != 5 {
		t.Errorf("Expected 5 concurrent Gemini requests, got %d", cfg.GeminiConcurrentReqs)
	}
	if cfg.StoragePath != "./uploads" {
		t.Errorf("Expected default storage path ./uploads, got %q", cfg.StoragePath)
	}
	if cfg.FrontendURL != "http://localhost:5173" {
		t.Errorf("Expected default frontend URL, got %q", cfg.FrontendURL)
	}
}

func TestLoad_ReadsOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_CONCURRENT_REQUESTS", "12")
	t.Setenv("STORAGE_PATH", "/data/uploads")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Port)
	}
	if cfg.GeminiConcurrentReqs != 12 {
		t.Errorf("Expected 12 concurrent Gemini requests, got %d", cfg.GeminiConcurrentReqs)
	}
	if cfg.StoragePath != "/data/uploads" {
		t.Errorf("Expected storage path /data/uploads, got %q", cfg.StoragePath)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/flashdeck_test" {
		t.Errorf("Unexpected database URL %q", cfg.DatabaseURL)
	}
}

func TestLoad_NonNumericConcurrencyFallsBackToDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_CONCURRENT_REQUESTS", "many")

	cfg := Load()

	if cfg.GeminiConcurrentReqs != 5 {
		t.Errorf("Expected fallback to 5 for non-numeric value, got %d", cfg.GeminiConcurrentReqs)
	}
}

func TestLoad_PanicsWithoutDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when DATABASE_URL is missing")
		}
	}()

	Load()
}

func TestMustGetEnv_ReturnsValue(t *testing.T) {
	t.Setenv("JWT_SECRET", "value123")

	if got := mustGetEnv("JWT_SECRET"); got != "value123" {
		t.Errorf("Expected 'value123', got %q", got)
	}
}
