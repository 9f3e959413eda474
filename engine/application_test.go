package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vignette.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		environ map[string]string
		want    func(c *AppConfig)
	}{
		{
			name: "defaults",
			want: func(c *AppConfig) {},
		},
		{
			name: "file over defaults",
			file: `
title = "From File"

[engine]
target_fps = 30

[graphics]
clear_color = "red"
`,
			want: func(c *AppConfig) {
				c.Title = "From File"
				c.Engine.TargetFPS = 30
				c.Graphics.ClearColor = "red"
			},
		},
		{
			name: "environment over file",
			file: `
title = "From File"

[engine]
target_fps = 30
`,
			environ: map[string]string{
				"VIGNETTE_TITLE":             "From Env",
				"VIGNETTE_ENGINE_TARGET_FPS": "144",
				"VIGNETTE_DEBUG_OVERLAY":     "true",
				"VIGNETTE_ASSETS_WATCH":      "false",
				"UNRELATED":                  "ignored",
			},
			want: func(c *AppConfig) {
				c.Title = "From Env"
				c.Engine.TargetFPS = 144
				c.Debug.Overlay = true
				c.Assets.Watch = false
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}

			got, err := loadConfig(path, environ)
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			want := DefaultConfig()
			tt.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		environ map[string]string
	}{
		{name: "unknown field", file: "titel = \"typo\"\n"},
		{name: "unknown section", file: "[audio]\nvolume = 1\n"},
		{name: "zero width", file: "width = 0\n"},
		{name: "max delta time", file: "[engine]\nmax_delta_time = -1.0\n"},
		{name: "overlay interval", file: "[debug]\noverlay_interval = -1.0\n"},
		{name: "log level", file: "[log]\nlevel = \"loud\"\n"},
		{name: "clear color", file: "[graphics]\nclear_color = \"notacolor\"\n"},
		{name: "env clear color", environ: map[string]string{"VIGNETTE_GRAPHICS_CLEAR_COLOR": "notacolor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, err := loadConfig(path, environ)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("loadConfig() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestValidateLiteralConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  AppConfig
		wantErr bool
	}{
		{name: "title and size", config: AppConfig{Title: "plain", Width: 640, Height: 480}},
		{name: "zero value", config: AppConfig{}, wantErr: true},
		{name: "negative max delta", config: AppConfig{Width: 1, Height: 1, Engine: EngineConfig{MaxDeltaTime: -0.1}}, wantErr: true},
		{name: "explicit level", config: AppConfig{Width: 1, Height: 1, Log: LogConfig{Level: "debug"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestLongFrame(t *testing.T) {
	tests := []struct {
		name   string
		engine EngineConfig
		delta  float64
		want   bool
	}{
		{name: "zero limit falls back to default", delta: DefaultMaxDeltaTime, want: true},
		{name: "below default", delta: 0.49},
		{name: "custom limit", engine: EngineConfig{MaxDeltaTime: 0.1}, delta: 0.2, want: true},
		{name: "gate disabled", engine: EngineConfig{UpdateLongFrames: true}, delta: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.engine.longFrame(tt.delta); got != tt.want {
				t.Errorf("longFrame(%g) = %t, want %t", tt.delta, got, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), map[string]string{})
	if err == nil {
		t.Fatal("loadConfig() error = nil for a missing file")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Errorf("loadConfig() error = %v, want a read error", err)
	}
}

func TestLoadConfigBadEnvironmentValue(t *testing.T) {
	_, err := loadConfig("", map[string]string{"VIGNETTE_WIDTH": "wide"})
	if err == nil {
		t.Fatal("loadConfig() error = nil for a non-numeric width")
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := loadConfig(filepath.Join("..", "vignette.toml"), map[string]string{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	want, _ := renderer.ColorByName("midnightblue")
	got, err := cfg.Graphics.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got != want {
		t.Errorf("Clear() = %v, want %v", got, want)
	}
}

func TestRendererOptions(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.rendererOptions().ClearColor; got != renderer.DefaultClear {
		t.Errorf("default ClearColor = %v, want %v", got, renderer.DefaultClear)
	}

	cfg.Title = "opts"
	cfg.Graphics.Validation = true
	cfg.Graphics.ClearColor = "black"
	want := renderer.Options{
		ApplicationName: "opts",
		VSync:           true,
		Validation:      true,
		ClearColor:      renderer.Black,
	}
	if diff := cmp.Diff(want, cfg.rendererOptions()); diff != "" {
		t.Errorf("rendererOptions() mismatch (-want +got):\n%s", diff)
	}
}
