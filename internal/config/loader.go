package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sources reported by Load.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load loads the fireworks configuration and reports where it came from.
// Search order: customPath -> ~/.fireworks/configs/fireworks.yaml ->
// ./configs/fireworks.yaml -> embedded default.
// Values missing from a file keep their defaults. The result is not
// validated; callers run Validate before starting a show.
func Load(customPath string) (FireworksConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("fireworks.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", "fireworks.yaml")
	if cfg, err := LoadFile(localPath); err == nil {
		return cfg, localPath, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFireworksYAML)
	if err != nil {
		return DefaultFireworksConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// LoadFile reads and parses a single YAML file.
func LoadFile(path string) (FireworksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultFireworksConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (FireworksConfig, error) {
	cfg := DefaultFireworksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFireworksConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fireworks", "configs", filename)
}
