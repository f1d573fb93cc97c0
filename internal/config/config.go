// Package config handles carvemesh configuration loading and saving.
package config

// Config holds all settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds compositing settings.
type RenderConfig struct {
	Pass      string `yaml:"pass"`       // Active pass when none is given
	ItemCache bool   `yaml:"item_cache"` // Memoize item meshes per variant
}

// AssetsConfig holds block definition and atlas settings.
type AssetsConfig struct {
	Definitions []string `yaml:"definitions"` // Block definition YAML files
	TileSize    int      `yaml:"tile_size"`   // Atlas tile edge in pixels
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Pass:      "solid",
			ItemCache: true,
		},
		Assets: AssetsConfig{
			Definitions: []string{"blocks.yaml"},
			TileSize:    16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
