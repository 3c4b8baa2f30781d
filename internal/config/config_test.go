package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/glyphrain/internal/rain"
)

// isolate points the user config dir and working directory at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	isolate(t)

	cfg, src, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SourceEmbedded, src)
	def := Default()
	assert.Equal(t, def.FPS, cfg.FPS)
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.Equal(t, def.Glyphs, cfg.Glyphs)
	assert.Equal(t, def.Rain.Falloff, cfg.Rain.Falloff)
	assert.InDelta(t, def.Rain.SpawnChance, cfg.Rain.SpawnChance, 1e-6)
	assert.InDelta(t, def.Rain.DecayChance, cfg.Rain.DecayChance, 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mine.yaml")
	writeFile(t, path, "theme: red\nrain:\n  falloff: 5\n")

	cfg, src, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, src)
	assert.Equal(t, "red", cfg.Theme)
	assert.Equal(t, 5, cfg.Rain.Falloff)
	assert.Equal(t, DefaultFPS, cfg.FPS, "unset keys keep their defaults")
	assert.Equal(t, rain.DefaultHeadAt, cfg.Rain.HeadAt)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "fps: [not a number\n")
	_, _, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	writeFile(t, localConfigPath, "fps: 20\n")
	cfg, src, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, localConfigPath, src)
	assert.Equal(t, 20, cfg.FPS)

	userDir, err := os.UserConfigDir()
	require.NoError(t, err)
	require.Contains(t, userDir, home)
	userPath := filepath.Join(userDir, "glyphrain", "rain.yaml")
	writeFile(t, userPath, "fps: 30\n")

	cfg, src, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, userPath, src)
	assert.Equal(t, 30, cfg.FPS)
}

func TestLoadSkipsBrokenUserConfig(t *testing.T) {
	isolate(t)
	userDir, err := os.UserConfigDir()
	require.NoError(t, err)
	writeFile(t, filepath.Join(userDir, "glyphrain", "rain.yaml"), "fps: [unterminated\n")

	_, src, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps zero", func(c *Config) { c.FPS = 0 }},
		{"fps too high", func(c *Config) { c.FPS = MaxFPS + 1 }},
		{"falloff too big", func(c *Config) { c.Rain.Falloff = 300 }},
		{"negative head", func(c *Config) { c.Rain.HeadAt = -1 }},
		{"falloff zero", func(c *Config) { c.Rain.Falloff = 0 }},
		{"bright below falloff", func(c *Config) { c.Rain.BrightAt = 10 }},
		{"spawn chance", func(c *Config) { c.Rain.SpawnChance = 1.2 }},
		{"unknown theme", func(c *Config) { c.Theme = "amber" }},
		{"unknown glyphs", func(c *Config) { c.Glyphs = "runes" }},
		{"unknown glyph mode", func(c *Config) { c.GlyphMode = "hashed" }},
		{"wide custom glyphs", func(c *Config) { c.CustomGlyphs = "日本" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateKeepsCause(t *testing.T) {
	cfg := Default()
	cfg.Theme = "amber"
	require.ErrorIs(t, cfg.Validate(), rain.ErrUnknownTheme)

	cfg = Default()
	cfg.Rain.Falloff = 0
	require.ErrorIs(t, cfg.Validate(), rain.ErrInvalidConfig)
}

func TestLook(t *testing.T) {
	cfg := Default()
	cfg.Theme = "red"
	cfg.Glyphs = "katakana"
	cfg.GlyphMode = "indexed"

	opts, err := cfg.Look()
	require.NoError(t, err)
	assert.Equal(t, rain.Red, opts.Theme.Bright)
	assert.Equal(t, "katakana", opts.Glyphs.Name)
	assert.Equal(t, rain.GlyphIndexed, opts.GlyphMode)

	cfg.CustomGlyphs = "01"
	opts, err = cfg.Look()
	require.NoError(t, err)
	assert.Equal(t, "custom", opts.Glyphs.Name)
}

func TestEngineAndFrameTime(t *testing.T) {
	cfg := Default()
	assert.Equal(t, rain.DefaultConfig(), cfg.Engine())
	assert.Equal(t, 100*time.Millisecond, cfg.FrameTime())

	cfg.FPS = 50
	assert.Equal(t, 20*time.Millisecond, cfg.FrameTime())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvTheme, "blue")
	t.Setenv(EnvGlyphs, "binary")
	t.Setenv(EnvFPS, "25")

	cfg := Default()
	ApplyEnv(&cfg)

	assert.Equal(t, "blue", cfg.Theme)
	assert.Equal(t, "binary", cfg.Glyphs)
	assert.Equal(t, 25, cfg.FPS)

	t.Setenv(EnvFPS, "fast")
	ApplyEnv(&cfg)
	assert.Equal(t, 25, cfg.FPS, "malformed fps is ignored")
}

func TestGetEnv(t *testing.T) {
	t.Setenv("RAIN_TEST_SET", "")
	assert.Equal(t, "", GetEnv("RAIN_TEST_SET", "fallback"), "set but empty still wins")
	assert.Equal(t, "fallback", GetEnv("RAIN_TEST_DEFINITELY_UNSET", "fallback"))
}
