package testbed

import (
	"math"

	"github.com/spaghettifunk/vignette/engine"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

// StatsState shows frame metrics and returns to the first state on SPACE.
// Its zero value is ready to use.
type StatsState struct {
	engine.StateBase

	elapsed   float64
	sinceLog  float64
	startedAt float64
}

func (s *StatsState) Initialize(ctx *engine.AppContext) error {
	s.elapsed = 0
	s.sinceLog = 0
	s.startedAt = ctx.Time.GetTime()
	return nil
}

func (s *StatsState) Update(ctx *engine.AppContext, deltaTime float64) error {
	s.elapsed += deltaTime
	s.sinceLog += deltaTime

	if s.sinceLog >= 1 {
		s.sinceLog = 0
		fps, frameTime := ctx.Metrics.Frame()
		core.LogInfo("FPS: %5.1f (%4.1fms), %d frames", fps, frameTime, ctx.Metrics.TotalFrames())
	}

	switch {
	case ctx.Input.IsKeyPressed(core.KEY_ESCAPE):
		ctx.App.Quit()
	case ctx.Input.IsKeyPressed(core.KEY_SPACE):
		if keys := ctx.App.StateKeys(); len(keys) > 0 {
			ctx.App.ChangeState(keys[0])
		}
	}
	return nil
}

func (s *StatsState) Render(ctx *engine.AppContext) error {
	_, t := math.Modf(s.elapsed)
	ctx.Graphics.Clear(renderer.Black.Lerp(renderer.CornflowerBlue, float32(t)))
	return nil
}

func (s *StatsState) DebugUI(ctx *engine.AppContext) {
	fps, frameTime := ctx.Metrics.Frame()
	mx, my := ctx.Input.MousePosition()

	ctx.Overlay.Header("stats")
	ctx.Overlay.Value("run", ctx.RunID)
	ctx.Overlay.Value("fps", fps)
	ctx.Overlay.Value("frame ms", frameTime)
	ctx.Overlay.Value("frames", ctx.Metrics.TotalFrames())
	ctx.Overlay.Value("uptime", ctx.Time.GetTime()-s.startedAt)
	ctx.Overlay.Value("mouse", [2]int32{mx, my})
	ctx.Overlay.Value("states", ctx.App.StateKeys())
}
