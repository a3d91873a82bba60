// Package config loads the exchart TOML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ukaji3/exchart-go/pkg/exchart"
)

// Config is the exchart configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig holds the defaults applied to rendered charts.
type RenderConfig struct {
	// SheetName selects the data sheet; empty means the first sheet.
	SheetName  string `toml:"sheet_name"`
	TableName  string `toml:"table_name"`
	TableStyle string `toml:"table_style"`
	// CategoryHeader is written above the category column when set.
	CategoryHeader *string `toml:"category_header"`
	FormatCode     string  `toml:"format_code"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := exchart.DefaultOptions()
	return &Config{
		Render: RenderConfig{
			TableName:  opts.TableName,
			TableStyle: opts.TableStyle,
			FormatCode: opts.FormatCode,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads configuration from path. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// Set defaults if missing
	def := Default()
	if cfg.Render.TableName == "" {
		cfg.Render.TableName = def.Render.TableName
	}
	if cfg.Render.FormatCode == "" {
		cfg.Render.FormatCode = def.Render.FormatCode
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Options converts the render section to synchronizer options.
func (c *Config) Options() exchart.Options {
	return exchart.Options{
		TableName:      c.Render.TableName,
		TableStyle:     c.Render.TableStyle,
		CategoryHeader: c.Render.CategoryHeader,
		FormatCode:     c.Render.FormatCode,
	}
}
