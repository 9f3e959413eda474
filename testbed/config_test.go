package testbed

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

func TestParseStateConfig(t *testing.T) {
	coral, _ := renderer.ColorByName("coral")
	tests := []struct {
		name string
		data string
		want StateConfig
	}{
		{
			name: "empty file",
			data: "",
			want: StateConfig{ClearColor: renderer.DefaultClear},
		},
		{
			name: "color name",
			data: "clear_color = \"coral\"\nnext = \"dusk\"\nprevious = \"stats\"\n",
			want: StateConfig{ClearColor: coral, Next: "dusk", Previous: "stats"},
		},
		{
			name: "rgb array",
			data: "clear_color = [0.25, 0.5, 0.75]\npulse = 0.5\n",
			want: StateConfig{ClearColor: renderer.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, Pulse: 0.5},
		},
		{
			name: "rgba integers are clamped",
			data: "clear_color = [1, 0, 2, 0]\n",
			want: StateConfig{ClearColor: renderer.Color{R: 1, G: 0, B: 1, A: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStateConfig([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseStateConfig() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStateConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStateConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantColor bool
	}{
		{name: "unknown field", data: "colour = \"red\"\n"},
		{name: "bad syntax", data: "clear_color = \n"},
		{name: "negative pulse", data: "pulse = -1.0\n"},
		{name: "unknown color", data: "clear_color = \"notacolor\"\n", wantColor: true},
		{name: "short array", data: "clear_color = [1, 0]\n", wantColor: true},
		{name: "long array", data: "clear_color = [1, 0, 0, 1, 1]\n", wantColor: true},
		{name: "string component", data: "clear_color = [1, \"0\", 0]\n", wantColor: true},
		{name: "boolean", data: "clear_color = true\n", wantColor: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStateConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseStateConfig() error = nil")
			}
			if got := errors.Is(err, ErrInvalidColor); got != tt.wantColor {
				t.Errorf("errors.Is(err, ErrInvalidColor) = %t, want %t (err = %v)", got, tt.wantColor, err)
			}
		})
	}
}

func TestShippedStateFilesParse(t *testing.T) {
	am := newAssets(t, filepath.Join("..", "assets"))
	for _, name := range []string{"dawn", "dusk", "noon"} {
		asset, err := am.Load("states/" + name + ".toml")
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if _, err := parseAsset(asset); err != nil {
			t.Errorf("parse %s: %v", name, err)
		}
	}
}
