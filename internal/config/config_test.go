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
		"PORT", "DOCOUTLINE_API_KEY", "MAX_UPLOAD_BYTES", "EXCLUDE_CLASS",
		"BROWSER_ENABLED", "BROWSER_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.APIKey)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ExcludeClass != "footer-heading" {
		t.Errorf("expected default exclude class, got %q", cfg.ExcludeClass)
	}
	if cfg.BrowserEnabled {
		t.Error("expected browser disabled by default")
	}
	if cfg.BrowserTimeout != 30*time.Second {
		t.Errorf("expected 30s browser timeout, got %s", cfg.BrowserTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DOCOUTLINE_API_KEY", "secret")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("EXCLUDE_CLASS", "site-footer")
	t.Setenv("BROWSER_ENABLED", "true")
	t.Setenv("BROWSER_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	if cfg.Port != "9000" || cfg.APIKey != "secret" || cfg.MaxUploadBytes != 1024 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ExcludeClass != "site-footer" {
		t.Errorf("expected exclude class override, got %q", cfg.ExcludeClass)
	}
	if !cfg.BrowserEnabled || cfg.BrowserTimeout != 5*time.Second {
		t.Errorf("unexpected browser config: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected lower-cased log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_EmptyExcludeClassDisablesExclusion(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXCLUDE_CLASS", "")
	if cfg := Load(); cfg.ExcludeClass != "" {
		t.Errorf("expected explicit empty exclude class, got %q", cfg.ExcludeClass)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	t.Setenv("BROWSER_TIMEOUT", "soon")
	cfg := Load()
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.BrowserTimeout != 30*time.Second {
		t.Errorf("expected fallback timeout, got %s", cfg.BrowserTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: "8090", LogLevel: "info"}, false},
		{"bad port", Config{Port: "http", LogLevel: "info"}, true},
		{"port too large", Config{Port: "70000", LogLevel: "info"}, true},
		{"bad level", Config{Port: "8090", LogLevel: "loud"}, true},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: wantErr=%v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PORT=7777\nLOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "error")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := Load()
	if cfg.Port != "7777" {
		t.Errorf("expected port from .env, got %q", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected existing env to win, got %q", cfg.LogLevel)
	}
}
