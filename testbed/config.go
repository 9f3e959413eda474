package testbed

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

var ErrInvalidColor = errors.New("invalid clear_color")

// StateConfig is the content of a states/<name>.toml file.
type StateConfig struct {
	ClearColor renderer.Color
	Next       string
	Previous   string
	// Brightness oscillations per second; 0 keeps the colour steady.
	Pulse float64
}

type stateFile struct {
	ClearColor interface{} `toml:"clear_color"`
	Next       string      `toml:"next"`
	Previous   string      `toml:"previous"`
	Pulse      float64     `toml:"pulse"`
}

func ParseStateConfig(data []byte) (StateConfig, error) {
	var f stateFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return StateConfig{}, err
	}

	cfg := StateConfig{
		ClearColor: renderer.DefaultClear,
		Next:       f.Next,
		Previous:   f.Previous,
		Pulse:      f.Pulse,
	}
	if f.Pulse < 0 {
		return cfg, fmt.Errorf("pulse must not be negative, got %g", f.Pulse)
	}
	if f.ClearColor != nil {
		c, err := parseColor(f.ClearColor)
		if err != nil {
			return cfg, err
		}
		cfg.ClearColor = c
	}
	return cfg, nil
}

// parseColor accepts a colour keyword or an [r, g, b] / [r, g, b, a] array.
func parseColor(v interface{}) (renderer.Color, error) {
	switch value := v.(type) {
	case string:
		c, err := renderer.ColorByName(value)
		if err != nil {
			return renderer.Color{}, fmt.Errorf("%w: %s", ErrInvalidColor, err)
		}
		return c, nil
	case []interface{}:
		if len(value) != 3 && len(value) != 4 {
			return renderer.Color{}, fmt.Errorf("%w: expected 3 or 4 components, got %d", ErrInvalidColor, len(value))
		}
		comps := []float32{0, 0, 0, 1}
		for i, raw := range value {
			switch n := raw.(type) {
			case float64:
				comps[i] = float32(n)
			case int64:
				comps[i] = float32(n)
			default:
				return renderer.Color{}, fmt.Errorf("%w: component %d is %T", ErrInvalidColor, i, raw)
			}
		}
		return renderer.RGBA(comps[0], comps[1], comps[2], comps[3]), nil
	default:
		return renderer.Color{}, fmt.Errorf("%w: unsupported value %T", ErrInvalidColor, v)
	}
}
