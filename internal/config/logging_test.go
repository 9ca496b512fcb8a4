package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" || cfg.Service != "rofl-backend" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxMB != 10 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 28 || !cfg.Compress {
		t.Fatalf("unexpected rotation defaults: %+v", cfg)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("LOG_FILE", "/tmp/rofl.log")
	t.Setenv("LOG_COMPRESS", "false")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.File != "/tmp/rofl.log" || cfg.Compress {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}

func TestLoadLogRejectsUnknownLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := LoadLog(); err == nil {
		t.Fatal("LoadLog() expected error for unknown level")
	}
}

func TestLoadLogRejectsNegativeSampling(t *testing.T) {
	t.Setenv("LOG_SAMPLE_EVERY", "-1")
	if _, err := LoadLog(); err == nil {
		t.Fatal("LoadLog() expected error for negative sampling")
	}
}
