package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SHOPLIST_PORT", "SHOPLIST_DB_PATH", "SHOPLIST_LOG_LEVEL", "SHOPLIST_DEFAULT_LANG",
		"SHOPLIST_SESSION_TTL", "SHOPLIST_DEV_FALLBACK", "SHOPLIST_SECURE_COOKIES",
		"SHOPLIST_METRICS_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "shoplist.db" {
		t.Errorf("DBPath = %q, want shoplist.db", cfg.DBPath)
	}
	if cfg.DefaultLang != "ca" {
		t.Errorf("DefaultLang = %q, want ca", cfg.DefaultLang)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Errorf("SessionTTL = %s, want 720h", cfg.SessionTTL)
	}
	if cfg.DevFallback || cfg.SecureCookies || cfg.MetricsEnabled {
		t.Error("boolean flags should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHOPLIST_PORT", "9000")
	t.Setenv("SHOPLIST_SESSION_TTL", "2h")
	t.Setenv("SHOPLIST_DEV_FALLBACK", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %s, want 2h", cfg.SessionTTL)
	}
	if !cfg.DevFallback {
		t.Error("DevFallback should be true")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv only fills variables that are absent, not empty.
	os.Unsetenv("SHOPLIST_DB_PATH")
	t.Setenv("SHOPLIST_PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	content := "SHOPLIST_DB_PATH=/tmp/from-file.db\nSHOPLIST_PORT=1111\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/from-file.db" {
		t.Errorf("DBPath = %q, want value from file", cfg.DBPath)
	}
	if cfg.Port != "7000" {
		t.Errorf("Port = %q, want environment to win over file", cfg.Port)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"SHOPLIST_SESSION_TTL":    "soon",
		"SHOPLIST_DEV_FALLBACK":   "maybe",
		"SHOPLIST_SECURE_COOKIES": "perhaps",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("expected error for %s=%q", key, val)
			}
		})
	}
}
