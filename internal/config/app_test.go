package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAppReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "POSTGRES_DSN=postgres://file/rofl\nJWT_SECRET=from-file\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"POSTGRES_DSN", "JWT_SECRET", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadApp(path)
	if err != nil {
		t.Fatalf("LoadApp() error = %v", err)
	}
	if cfg.Server.PostgresDSN != "postgres://file/rofl" || cfg.Server.JWTSecret != "from-file" {
		t.Fatalf("server config not loaded from file: %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadAppWrapsServerErrors(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("JWT_SECRET", "x")
	_, err := LoadApp(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil || !strings.HasPrefix(err.Error(), "server config:") {
		t.Fatalf("LoadApp() error = %v, want server config error", err)
	}
}
