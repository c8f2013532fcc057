// Package config reads process configuration from SHOPLIST_* environment
// variables. A .env file in the working directory, if present, is loaded
// first and never overrides variables already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBPath        string
	LogLevel      string
	DefaultLang   string
	SessionTTL    time.Duration
	DevFallback   bool
	SecureCookies bool
	// MetricsEnabled exposes GET /metrics on the public listener.
	MetricsEnabled bool
}

// Load reads the optional env files (".env" when none are given) and then
// the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrDefault("SHOPLIST_PORT", "8080"),
		DBPath:      getEnvOrDefault("SHOPLIST_DB_PATH", "shoplist.db"),
		LogLevel:    getEnvOrDefault("SHOPLIST_LOG_LEVEL", "info"),
		DefaultLang: getEnvOrDefault("SHOPLIST_DEFAULT_LANG", "ca"),
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnvOrDefault("SHOPLIST_SESSION_TTL", "720h")); err != nil {
		return nil, fmt.Errorf("SHOPLIST_SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SHOPLIST_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.DevFallback, err = strconv.ParseBool(getEnvOrDefault("SHOPLIST_DEV_FALLBACK", "false")); err != nil {
		return nil, fmt.Errorf("SHOPLIST_DEV_FALLBACK: %w", err)
	}
	if cfg.SecureCookies, err = strconv.ParseBool(getEnvOrDefault("SHOPLIST_SECURE_COOKIES", "false")); err != nil {
		return nil, fmt.Errorf("SHOPLIST_SECURE_COOKIES: %w", err)
	}
	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnvOrDefault("SHOPLIST_METRICS_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("SHOPLIST_METRICS_ENABLED: %w", err)
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
