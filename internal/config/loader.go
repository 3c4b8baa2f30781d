package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/rain.yaml
var defaultRainYAML []byte

// Source names where a loaded config came from.
const (
	SourceEmbedded = "embedded defaults"
	SourceBuiltin  = "builtin defaults"
)

// localConfigPath is checked relative to the working directory.
var localConfigPath = filepath.Join("configs", "rain.yaml")

// Load reads the config and reports where it came from.
// Search order: customPath -> ~/.config/glyphrain/rain.yaml -> ./configs/rain.yaml -> embedded default.
// Files are decoded on top of the defaults, so they only need the keys they change.
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), "", err
		}
		return cfg, customPath, nil
	}

	if userCfgPath := userConfigPath("rain.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	if cfg, err := loadFile(localConfigPath); err == nil {
		return cfg, localConfigPath, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultRainYAML, &cfg); err != nil {
		return Default(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if the config dir is unavailable.
func userConfigPath(filename string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glyphrain", filename)
}
