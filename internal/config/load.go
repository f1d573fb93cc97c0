package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/carvemesh/pkg/geom"
)

// FileName is the config file name looked up in standard locations.
const FileName = "carvemesh.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if _, err := geom.ParseLayer(c.Render.Pass); err != nil {
		return fmt.Errorf("render.pass: %w", err)
	}
	if c.Assets.TileSize <= 0 {
		return fmt.Errorf("assets.tile_size must be positive, got %d", c.Assets.TileSize)
	}
	return nil
}

// Pass returns the configured active render pass.
func (c *Config) Pass() geom.Layer {
	l, err := geom.ParseLayer(c.Render.Pass)
	if err != nil {
		return geom.Solid
	}
	return l
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "carvemesh")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "carvemesh")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "carvemesh")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "carvemesh")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
