package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/duckboard-backend/internal/board"
	"github.com/benbeisheim/duckboard-backend/internal/model"
	"github.com/benbeisheim/duckboard-backend/internal/service"
)

type Config struct {
	Port              string
	ClientOrigin      string
	LogLevel          zerolog.Level
	LogPretty         bool
	AnimationDuration time.Duration
	FrameInterval     time.Duration
	DefaultFEN        string
}

// Load reads .env when present, then the environment. Unset variables take
// their defaults; malformed ones are an error.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	cfg := Config{
		Port:         getEnv("PORT", "3000"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DefaultFEN:   getEnv("DEFAULT_FEN", model.StartingPosition),
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl

	if cfg.LogPretty, err = strconv.ParseBool(getEnv("LOG_PRETTY", "false")); err != nil {
		return Config{}, fmt.Errorf("LOG_PRETTY: %w", err)
	}
	if cfg.AnimationDuration, err = millis("ANIMATION_DURATION_MS", board.DefaultDuration); err != nil {
		return Config{}, err
	}
	if cfg.FrameInterval, err = millis("FRAME_INTERVAL_MS", service.DefaultFrameInterval); err != nil {
		return Config{}, err
	}
	if _, err := model.Parse(cfg.DefaultFEN); err != nil {
		return Config{}, fmt.Errorf("DEFAULT_FEN: %w", err)
	}
	return cfg, nil
}

func millis(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive number of milliseconds, got %q", key, v)
	}
	return time.Duration(n) * time.Millisecond, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
