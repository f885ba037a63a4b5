package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "dotcraft.yaml"

// Load loads the dotcraft configuration.
// Search order: customPath -> ~/.dotcraft/configs/dotcraft.yaml -> ./configs/dotcraft.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. A custom path that cannot be read or parsed is an error;
// broken files found by the search are skipped.
func Load(customPath string) (DotcraftConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DotcraftConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DotcraftConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", fileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	if cfg, err := Parse(defaultDotcraftYAML); err == nil {
		return cfg, nil
	}
	return DefaultDotcraftConfig(), nil
}

// Parse decodes YAML over the default configuration and validates the result.
func Parse(data []byte) (DotcraftConfig, error) {
	cfg := DefaultDotcraftConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DotcraftConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DotcraftConfig{}, err
	}
	return cfg, nil
}

func loadFile(path string) (DotcraftConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DotcraftConfig{}, err
	}
	return Parse(data)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dotcraft", "configs", filename)
}
