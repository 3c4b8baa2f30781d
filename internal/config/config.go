package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/glyphrain/internal/rain"
)

// ErrInvalid is returned by Validate for settings out of range.
var ErrInvalid = errors.New("invalid config")

// FPS limits.
const (
	MinFPS     = 1
	MaxFPS     = 120
	DefaultFPS = 10
)

// Config is the full set of user-tunable settings.
type Config struct {
	FPS          int        `yaml:"fps"`
	Theme        string     `yaml:"theme"`
	Glyphs       string     `yaml:"glyphs"`
	GlyphMode    string     `yaml:"glyph_mode"`
	CustomGlyphs string     `yaml:"custom_glyphs"`
	Rain         RainConfig `yaml:"rain"`
}

// RainConfig mirrors rain.Config with wider types so out-of-range YAML values
// are reported by Validate instead of failing to decode.
type RainConfig struct {
	Falloff     int     `yaml:"falloff"`
	BrightAt    int     `yaml:"bright_at"`
	HeadAt      int     `yaml:"head_at"`
	SpawnChance float64 `yaml:"spawn_chance"`
	DecayChance float64 `yaml:"decay_chance"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:       DefaultFPS,
		Theme:     rain.DefaultTheme.Name,
		Glyphs:    rain.DefaultGlyphSet.Name,
		GlyphMode: rain.GlyphRandom.String(),
		Rain: RainConfig{
			Falloff:     rain.DefaultFalloff,
			BrightAt:    rain.DefaultBrightAt,
			HeadAt:      rain.DefaultHeadAt,
			SpawnChance: rain.DefaultSpawnChance,
			DecayChance: rain.DefaultDecayChance,
		},
	}
}

// Validate checks every setting, including theme and glyph set names.
func (c Config) Validate() error {
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps must be in %d..%d, got %d", ErrInvalid, MinFPS, MaxFPS, c.FPS)
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"falloff", c.Rain.Falloff},
		{"bright_at", c.Rain.BrightAt},
		{"head_at", c.Rain.HeadAt},
	} {
		if f.v < 0 || f.v > rain.MaxIntensity {
			return fmt.Errorf("%w: %s must be in 0..%d, got %d", ErrInvalid, f.name, rain.MaxIntensity, f.v)
		}
	}
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Look(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FrameTime is the target duration of one tick.
func (c Config) FrameTime() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// Engine returns the engine tunables. Call Validate first; out-of-range values
// are truncated.
func (c Config) Engine() rain.Config {
	return rain.Config{
		Falloff:     uint8(c.Rain.Falloff),
		BrightAt:    uint8(c.Rain.BrightAt),
		HeadAt:      uint8(c.Rain.HeadAt),
		SpawnChance: c.Rain.SpawnChance,
		DecayChance: c.Rain.DecayChance,
	}
}

// Look resolves the theme, glyph set and glyph mode into engine options.
// CustomGlyphs takes precedence over Glyphs.
func (c Config) Look() (rain.Options, error) {
	theme, err := rain.ThemeByName(c.Theme)
	if err != nil {
		return rain.Options{}, err
	}

	var glyphs rain.GlyphSet
	if c.CustomGlyphs != "" {
		glyphs, err = rain.CustomGlyphSet(c.CustomGlyphs)
	} else {
		glyphs, err = rain.GlyphSetByName(c.Glyphs)
	}
	if err != nil {
		return rain.Options{}, err
	}

	mode, err := rain.ParseGlyphMode(c.GlyphMode)
	if err != nil {
		return rain.Options{}, err
	}

	return rain.Options{Theme: theme, Glyphs: glyphs, GlyphMode: mode}, nil
}
