package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Level   LevelConfig   `toml:"level"`
	Spawner SpawnerConfig `toml:"spawner"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"`
}

type LevelConfig struct {
	Path       string `toml:"path"`       // disk path, falls back to the embedded project
	Index      int    `toml:"index"`      // used when identifier is empty
	Identifier string `toml:"identifier"` // editor level identifier, e.g. "Level_0"
	Watch      bool   `toml:"watch"`      // reload the level and prefabs when they change on disk
}

type SpawnerConfig struct {
	Period time.Duration `toml:"period"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 768,
			Title:  "Tower Defence",
			TPS:    60,
		},
		Level: LevelConfig{
			Path: "levels/TowerDefence.ldtk",
		},
		Spawner: SpawnerConfig{
			Period: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.Level.Index < 0 {
		errs = append(errs, fmt.Errorf("level index %d must not be negative", c.Level.Index))
	}
	if c.Spawner.Period <= 0 {
		errs = append(errs, fmt.Errorf("spawner period %v must be positive", c.Spawner.Period))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging format %q must be console or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}
