package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override config values.
const (
	EnvTheme   = "GLASSTILT_THEME"
	EnvFPS     = "GLASSTILT_FPS"
	EnvSeed    = "GLASSTILT_SEED"
	EnvBubbles = "GLASSTILT_BUBBLES"
	EnvAddr    = "GLASSTILT_ADDR"
)

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment. Missing files are not an error; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv writes GLASSTILT_* variables over cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.View.Theme = v
	}
	if v := os.Getenv(EnvFPS); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		cfg.View.FPS = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.View.Seed = n
	}
	if v := os.Getenv(EnvBubbles); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBubbles, err)
		}
		cfg.Field.Count = n
	}
	return nil
}
