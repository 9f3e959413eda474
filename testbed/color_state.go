package testbed

import (
	"errors"
	"fmt"
	"math"

	"github.com/spaghettifunk/vignette/engine"
	"github.com/spaghettifunk/vignette/engine/assets"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

// ColorState clears the screen with the colour from states/<name>.toml and
// moves to its neighbours with the arrow keys. The file is reloaded when it
// changes on disk.
type ColorState struct {
	name     string
	config   StateConfig
	elapsed  float64
	active   bool
	watching bool
	reloads  int
}

func NewColorState(name string) *ColorState {
	return &ColorState{name: name}
}

func (s *ColorState) AssetName() string {
	return "states/" + s.name + ".toml"
}

func (s *ColorState) Config() StateConfig {
	return s.config
}

func (s *ColorState) Initialize(ctx *engine.AppContext) error {
	s.elapsed = 0
	s.config = StateConfig{ClearColor: renderer.DefaultClear}

	if ctx.Assets != nil && ctx.Assets.Has(s.AssetName()) {
		asset, err := ctx.Assets.Load(s.AssetName())
		if err != nil {
			return err
		}
		cfg, err := parseAsset(asset)
		if err != nil {
			return fmt.Errorf("state %s: %w", s.name, err)
		}
		s.config = cfg

		if !s.watching {
			ctx.Assets.OnChange(s.AssetName(), func(assets.Info) { s.reload(ctx.Assets) })
			s.watching = true
		}
	}
	s.active = true
	core.LogDebug("Color state %q uses %s.", s.name, s.config.ClearColor)
	return nil
}

func (s *ColorState) Terminate(ctx *engine.AppContext) {
	s.active = false
}

func (s *ColorState) Update(ctx *engine.AppContext, deltaTime float64) error {
	s.elapsed += deltaTime

	switch {
	case ctx.Input.IsKeyPressed(core.KEY_ESCAPE):
		ctx.Events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT, Sender: s})
	case ctx.Input.IsKeyPressed(core.KEY_RIGHT) && s.config.Next != "":
		ctx.App.ChangeState(s.config.Next)
	case ctx.Input.IsKeyPressed(core.KEY_LEFT) && s.config.Previous != "":
		ctx.App.ChangeState(s.config.Previous)
	}
	return nil
}

func (s *ColorState) Render(ctx *engine.AppContext) error {
	ctx.Graphics.Clear(s.currentColor())
	return nil
}

func (s *ColorState) DebugUI(ctx *engine.AppContext) {
	ctx.Overlay.Header(s.name)
	ctx.Overlay.Value("clear", s.currentColor())
	ctx.Overlay.Value("next", s.config.Next)
	ctx.Overlay.Value("previous", s.config.Previous)
	ctx.Overlay.Value("reloads", s.reloads)
	ctx.Overlay.Separator()
	fps, frameTime := ctx.Metrics.Frame()
	ctx.Overlay.Text("FPS: %5.1f (%4.1fms)", fps, frameTime)
}

func (s *ColorState) currentColor() renderer.Color {
	if s.config.Pulse == 0 {
		return s.config.ClearColor
	}
	t := 0.5 - 0.5*math.Cos(2*math.Pi*s.config.Pulse*s.elapsed)
	return s.config.ClearColor.Lerp(renderer.Black, float32(0.5*t))
}

func (s *ColorState) reload(am *assets.Manager) {
	if !s.active {
		// Initialize reads the file again next time.
		return
	}
	am.LoadAsync(s.AssetName(), func(asset *assets.Asset, err error) {
		if err == nil {
			var cfg StateConfig
			if cfg, err = parseAsset(asset); err == nil {
				s.config = cfg
				s.reloads++
				core.LogInfo("Reloaded %s.", s.AssetName())
				return
			}
		}
		core.LogWarn("Keeping previous config for %q: %s", s.name, err)
	})
}

func parseAsset(asset *assets.Asset) (StateConfig, error) {
	data, ok := asset.Data.([]byte)
	if !ok {
		return StateConfig{}, errors.New("state file is not a text asset")
	}
	return ParseStateConfig(data)
}
