package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "CLIENT_ORIGIN", "LOG_LEVEL", "LOG_PRETTY", "ANIMATION_DURATION_MS", "FRAME_INTERVAL_MS", "DEFAULT_FEN"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3000" || cfg.LogLevel != zerolog.InfoLevel || cfg.LogPretty {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.AnimationDuration != 300*time.Millisecond || cfg.FrameInterval != 16*time.Millisecond {
		t.Fatalf("unexpected timing defaults %+v", cfg)
	}
	if cfg.DefaultFEN != model.StartingPosition {
		t.Fatalf("unexpected default position %s", cfg.DefaultFEN)
	}
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set
	for _, k := range []string{"PORT", "ANIMATION_DURATION_MS", "LOG_LEVEL"} {
		os.Unsetenv(k)
	}
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=8080\nANIMATION_DURATION_MS=250\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Cleanup(func() {
		for _, k := range []string{"PORT", "ANIMATION_DURATION_MS", "LOG_LEVEL"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.AnimationDuration != 250*time.Millisecond || cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"LOG_LEVEL", "loud"},
		{"LOG_PRETTY", "maybe"},
		{"ANIMATION_DURATION_MS", "fast"},
		{"FRAME_INTERVAL_MS", "-5"},
		{"DEFAULT_FEN", "8/8"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("expected an error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
