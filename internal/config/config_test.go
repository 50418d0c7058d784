package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv resets every config variable for a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "LISTEN_ADDR", "METRICS_LISTEN_ADDR", "DATABASE_PATH",
		"TOKEN_SECRET", "TOKEN_TTL", "CORS_ORIGINS", "UPLOAD_DIR",
		"SENDER_EMAIL", "CONTACT_EMAIL",
	} {
		t.Setenv(key, "")
	}
}

// TestLoadDefaults verifies the defaults applied for unset variables.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.MetricsListenAddr != "localhost:9090" {
		t.Errorf("expected metrics addr localhost:9090, got %q", cfg.MetricsListenAddr)
	}
	if cfg.DatabasePath != "/data/site.db" {
		t.Errorf("expected default database path, got %q", cfg.DatabasePath)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected default TTL of 1h, got %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no CORS origins by default, got %v", cfg.CORSOrigins)
	}
}

// TestLoadFromEnvironment verifies explicit values override defaults.
func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://rudimedia.de, https://www.rudimedia.de")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("expected listen addr :9000, got %q", cfg.ListenAddr)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("expected TTL 30m, got %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://www.rudimedia.de" {
		t.Errorf("expected two trimmed origins, got %v", cfg.CORSOrigins)
	}
}

// TestLoadInvalidTTL verifies an unparseable TOKEN_TTL fails loading.
func TestLoadInvalidTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "ninety minutes")

	if _, err := Load(); err == nil {
		t.Errorf("expected error for invalid TOKEN_TTL")
	}
}

// TestValidate verifies the secret requirements.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing secret",
			cfg:     Config{TokenTTL: time.Hour},
			wantErr: "TOKEN_SECRET",
		},
		{
			name:    "short secret",
			cfg:     Config{TokenSecret: "too-short", TokenTTL: time.Hour},
			wantErr: "32 characters",
		},
		{
			name:    "non-positive ttl",
			cfg:     Config{TokenSecret: strings.Repeat("s", 32), TokenTTL: 0},
			wantErr: "TOKEN_TTL",
		},
		{
			name: "valid",
			cfg:  Config{TokenSecret: strings.Repeat("s", 32), TokenTTL: time.Hour},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
