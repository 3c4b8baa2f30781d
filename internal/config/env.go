// Package config loads the rain settings from YAML, the environment and
// command-line overrides.
package config

import (
	"os"
	"strconv"
)

// Environment variables.
const (
	EnvConfigPath = "RAIN_CONFIG"
	EnvLogFile    = "RAIN_LOG_FILE"
	EnvTheme      = "RAIN_THEME"
	EnvGlyphs     = "RAIN_GLYPHS"
	EnvFPS        = "RAIN_FPS"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides cfg with RAIN_THEME, RAIN_GLYPHS and RAIN_FPS when they
// are non-empty. A malformed RAIN_FPS is ignored.
func ApplyEnv(cfg *Config) {
	if theme := GetEnv(EnvTheme, ""); theme != "" {
		cfg.Theme = theme
	}
	if glyphs := GetEnv(EnvGlyphs, ""); glyphs != "" {
		cfg.Glyphs = glyphs
	}
	if fps, err := strconv.Atoi(GetEnv(EnvFPS, "")); err == nil {
		cfg.FPS = fps
	}
}
