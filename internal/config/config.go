package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"render3d/internal/bounds"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Render  RenderConfig  `toml:"render"`
	Scene   SceneConfig   `toml:"scene"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int    `toml:"target_fps"`
}

type RenderConfig struct {
	Culling    bool   `toml:"culling"`
	Precise    bool   `toml:"precise"` // three-way IntersectsFrustum instead of IsInFrustum
	Volume     string `toml:"volume"`  // "obb", "aabb" or "sphere"
	ClearColor string `toml:"clear_color"`
}

type SceneConfig struct {
	Path       string `toml:"path"`
	ScriptsDir string `toml:"scripts_dir"`
	Watch      bool   `toml:"watch"` // hot reload Lua scripts
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "render3d",
			TargetFPS: 60,
		},
		Render: RenderConfig{
			Culling:    true,
			Volume:     "obb",
			ClearColor: "skyblue",
		},
		Scene: SceneConfig{
			ScriptsDir: "assets/scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := bounds.ParseKind(c.Render.Volume); err != nil {
		return fmt.Errorf("render.volume: %w", err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q: want console or json", c.Logging.Format)
	}
	return nil
}

// VolumeKind is Render.Volume parsed. Validate has already rejected bad
// values for loaded configs.
func (c *Config) VolumeKind() bounds.Kind {
	k, err := bounds.ParseKind(c.Render.Volume)
	if err != nil {
		return bounds.KindOBB
	}
	return k
}
