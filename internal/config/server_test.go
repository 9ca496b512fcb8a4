package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/rofl?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadServerDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Fatalf("HTTPAddr = %q, want :5000", cfg.HTTPAddr)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
	if cfg.CookieName != "token" {
		t.Fatalf("CookieName = %q, want token", cfg.CookieName)
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Fatalf("OTPTTL = %v, want 10m", cfg.OTPTTL)
	}
	if cfg.UploadMaxBytes() != 5<<20 {
		t.Fatalf("UploadMaxBytes = %d, want %d", cfg.UploadMaxBytes(), 5<<20)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTGRES_DSN", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerRequiresJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ADMIN_EMAILS", " Boss@Example.com ,,ops@example.com")
	t.Setenv("AUTH_RATE_PER_MINUTE", "2.5")
	t.Setenv("UPLOAD_MAX_MB", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://rofl.app, http://localhost:5173")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.JWTTTL != 90*time.Minute {
		t.Fatalf("JWTTTL = %v, want 90m", cfg.JWTTTL)
	}
	if !cfg.CookieSecure {
		t.Fatal("CookieSecure = false, want true")
	}
	if len(cfg.AdminEmails) != 2 {
		t.Fatalf("AdminEmails = %v, want 2 entries", cfg.AdminEmails)
	}
	if !cfg.IsAdminEmail("boss@example.com") || !cfg.IsAdminEmail(" OPS@example.com") {
		t.Fatalf("admin emails not matched: %v", cfg.AdminEmails)
	}
	if cfg.IsAdminEmail("someone@example.com") {
		t.Fatal("unexpected admin match")
	}
	if cfg.AuthRatePerMinute != 2.5 {
		t.Fatalf("AuthRatePerMinute = %v, want 2.5", cfg.AuthRatePerMinute)
	}
	if cfg.UploadMaxBytes() != 2<<20 {
		t.Fatalf("UploadMaxBytes = %d", cfg.UploadMaxBytes())
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}
