package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

const (
	envPrefix = "VIGNETTE_"

	// DefaultMaxDeltaTime applies when EngineConfig.MaxDeltaTime is not set.
	DefaultMaxDeltaTime = 0.5
)

var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig is passed by value to Run and never modified by the App.
type AppConfig struct {
	// The application name used in windowing.
	Title string `toml:"title" env:"TITLE"`
	// Window starting width.
	Width uint32 `toml:"width" env:"WIDTH"`
	// Window starting height.
	Height uint32 `toml:"height" env:"HEIGHT"`

	Engine   EngineConfig   `toml:"engine" envPrefix:"ENGINE_"`
	Graphics GraphicsConfig `toml:"graphics" envPrefix:"GRAPHICS_"`
	Debug    DebugConfig    `toml:"debug" envPrefix:"DEBUG_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	Assets   AssetsConfig   `toml:"assets" envPrefix:"ASSETS_"`
}

type EngineConfig struct {
	// Update is skipped on frames whose delta time is at least MaxDeltaTime,
	// e.g. after the process was stopped in a debugger. Setting this runs
	// Update on every frame.
	UpdateLongFrames bool `toml:"update_long_frames" env:"UPDATE_LONG_FRAMES"`
	// 0 selects DefaultMaxDeltaTime.
	MaxDeltaTime float64 `toml:"max_delta_time" env:"MAX_DELTA_TIME"`
	// 0 disables the frame limiter.
	TargetFPS uint32 `toml:"target_fps" env:"TARGET_FPS"`
}

type GraphicsConfig struct {
	VSync      bool `toml:"vsync" env:"VSYNC"`
	Validation bool `toml:"validation" env:"VALIDATION"`
	// SVG colour keyword; empty selects renderer.DefaultClear.
	ClearColor string `toml:"clear_color" env:"CLEAR_COLOR"`
}

type DebugConfig struct {
	Overlay bool `toml:"overlay" env:"OVERLAY"`
	// Seconds between two overlay panels.
	OverlayInterval float64 `toml:"overlay_interval" env:"OVERLAY_INTERVAL"`
}

type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
}

type AssetsConfig struct {
	// Empty disables the asset manager.
	Root  string `toml:"root" env:"ROOT"`
	Watch bool   `toml:"watch" env:"WATCH"`
}

func DefaultConfig() AppConfig {
	return AppConfig{
		Title:  "Vignette",
		Width:  1280,
		Height: 720,
		Engine: EngineConfig{
			MaxDeltaTime: DefaultMaxDeltaTime,
		},
		Graphics: GraphicsConfig{
			VSync: true,
		},
		Debug: DebugConfig{
			OverlayInterval: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Assets: AssetsConfig{
			Root:  "assets",
			Watch: true,
		},
	}
}

// LoadConfig reads the TOML file at path over DefaultConfig, then applies
// VIGNETTE_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (AppConfig, error) {
	return loadConfig(path, nil)
}

// environ replaces the process environment when not nil.
func loadConfig(path string, environ map[string]string) (AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decodeConfig(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: envPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *AppConfig) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return err
	}
	return nil
}

func (c AppConfig) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Engine.MaxDeltaTime < 0:
		return fmt.Errorf("%w: max_delta_time must not be negative, got %g", ErrInvalidConfig, c.Engine.MaxDeltaTime)
	case c.Debug.OverlayInterval < 0:
		return fmt.Errorf("%w: overlay_interval must not be negative", ErrInvalidConfig)
	}
	// An empty level leaves the logger as it is.
	if c.Log.Level != "" {
		if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Graphics.Clear(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

// longFrame reports whether Update is skipped for a frame of deltaTime seconds.
func (e EngineConfig) longFrame(deltaTime float64) bool {
	if e.UpdateLongFrames {
		return false
	}
	limit := e.MaxDeltaTime
	if limit <= 0 {
		limit = DefaultMaxDeltaTime
	}
	return deltaTime >= limit
}

// Clear resolves the configured clear colour.
func (g GraphicsConfig) Clear() (renderer.Color, error) {
	if g.ClearColor == "" {
		return renderer.DefaultClear, nil
	}
	return renderer.ColorByName(g.ClearColor)
}

func (c AppConfig) rendererOptions() renderer.Options {
	clearColor, err := c.Graphics.Clear()
	if err != nil {
		clearColor = renderer.DefaultClear
	}
	return renderer.Options{
		ApplicationName: c.Title,
		VSync:           c.Graphics.VSync,
		Validation:      c.Graphics.Validation,
		ClearColor:      clearColor,
	}
}
