package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/orpaynter?sslmode=disable")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.GetHTTPAddr())
	}
	if cfg.GetEmergencyScoreThreshold() != 80 {
		t.Fatalf("expected default emergency threshold 80, got %d", cfg.GetEmergencyScoreThreshold())
	}
	if cfg.GetEmergencyCallbackCooldown() != 30*time.Minute {
		t.Fatalf("expected default cooldown 30m, got %s", cfg.GetEmergencyCallbackCooldown())
	}
	if cfg.GetPhoneDefaultRegion() != "US" {
		t.Fatalf("expected default region US, got %q", cfg.GetPhoneDefaultRegion())
	}
	if cfg.IsSMTPEnabled() {
		t.Fatal("expected SMTP to be disabled without SMTP_HOST")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadRejectsWildcardCORSWithCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard CORS with credentials")
	}
}

func TestLoadRejectsOutOfRangeThreshold(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMERGENCY_SCORE_THRESHOLD", "120")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for threshold above 100")
	}
}

func TestLoadSMTPRequiresFromAddress(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SMTP_FROM_ADDRESS is missing")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.com, ,https://b.example.com ")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("unexpected split result: %v", got)
	}
}
