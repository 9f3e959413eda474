package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/vignette/engine/assets"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/debugui"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

type Stage uint8

const (
	// Run has not been called yet
	StageNotStarted Stage = iota
	// The frame loop is running
	StageRunning
	// Run returned; the App cannot be started again
	StageStopped
)

func (s Stage) String() string {
	switch s {
	case StageNotStarted:
		return "not started"
	case StageRunning:
		return "running"
	case StageStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

var (
	ErrAlreadyStarted = errors.New("application already started")
	ErrNoWindow       = errors.New("no window configured")
	ErrNoGraphics     = errors.New("no graphics backend configured")
	ErrNoInitialState = errors.New("no initial state designated")
	ErrUnknownState   = errors.New("unknown state")
)

type Option func(*App)

func WithWindow(w Window) Option {
	return func(a *App) { a.window = w }
}

func WithGraphics(b renderer.Backend) Option {
	return func(a *App) { a.graphics = b }
}

func WithOverlay(o debugui.Overlay) Option {
	return func(a *App) { a.overlay = o }
}

func WithTimeSource(ts core.TimeSource) Option {
	return func(a *App) { a.time = ts }
}

func WithInput(in *core.Input) Option {
	return func(a *App) { a.input = in }
}

func WithEvents(eb *core.EventBus) Option {
	return func(a *App) { a.events = eb }
}

func WithAssets(am *assets.Manager) Option {
	return func(a *App) { a.assets = am }
}

// App owns the state registry and drives the frame loop. Except for Quit,
// its methods must be called from the goroutine that calls Run.
type App struct {
	registry *StateRegistry

	window   Window
	graphics renderer.Backend
	overlay  debugui.Overlay
	time     core.TimeSource
	input    *core.Input
	events   *core.EventBus
	assets   *assets.Manager
	metrics  *core.Metrics

	stage atomic.Uint32
	quit  atomic.Bool

	current            AppState
	currentKey         string
	currentInitialized bool
	next               AppState
	nextKey            string

	config AppConfig
	runID  uuid.UUID
	frame  uint64
	sleep  func(time.Duration)
}

func New(opts ...Option) *App {
	a := &App{
		registry: NewStateRegistry(),
		metrics:  core.NewMetrics(),
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.events == nil {
		a.events = core.NewEventBus()
	}
	if a.input == nil {
		a.input = core.NewInput(a.events)
	}
	if a.time == nil {
		a.time = core.NewClock()
	}
	if a.overlay == nil {
		a.overlay = debugui.Nop{}
	}
	return a
}

// Register adds a state under key. The first registered state becomes the
// initial state unless SetInitialState picks another one.
func (a *App) Register(key string, state AppState) error {
	if err := a.registry.Register(key, state); err != nil {
		return err
	}
	if a.current == nil {
		a.current = state
		a.currentKey = key
	}
	core.LogDebug("State %q registered.", key)
	return nil
}

// AddState constructs a zero T and registers it under key.
func AddState[T any, PT interface {
	*T
	AppState
}](a *App, key string) error {
	return a.Register(key, PT(new(T)))
}

func (a *App) SetInitialState(key string) error {
	if a.Stage() != StageNotStarted {
		return ErrAlreadyStarted
	}
	state, ok := a.registry.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, key)
	}
	a.current = state
	a.currentKey = key
	return nil
}

// ChangeState schedules a transition to key at the start of the next frame.
// The last request before that point wins. Unknown keys are ignored.
func (a *App) ChangeState(key string) {
	state, ok := a.registry.Lookup(key)
	if !ok {
		core.LogDebug("ChangeState(%q) ignored, no such state.", key)
		return
	}
	a.next = state
	a.nextKey = key
}

// Quit stops the loop before the next frame. It is safe to call from any goroutine.
func (a *App) Quit() {
	a.quit.Store(true)
}

func (a *App) Stage() Stage {
	return Stage(a.stage.Load())
}

func (a *App) CurrentKey() string {
	return a.currentKey
}

func (a *App) StateKeys() []string {
	return a.registry.Keys()
}

func (a *App) Registry() *StateRegistry {
	return a.registry
}

func (a *App) Metrics() *core.Metrics {
	return a.metrics
}

func (a *App) Events() *core.EventBus {
	return a.events
}

func (a *App) Input() *core.Input {
	return a.input
}

// Run sets up the window, the graphics backend and the initial state, and
// runs the frame loop until Quit is called or the window closes. Teardown
// happens in reverse order before Run returns.
func (a *App) Run(config AppConfig) (err error) {
	if a.Stage() != StageNotStarted {
		return ErrAlreadyStarted
	}
	switch {
	case a.window == nil:
		return ErrNoWindow
	case a.graphics == nil:
		return ErrNoGraphics
	case a.current == nil:
		return ErrNoInitialState
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	if !a.stage.CompareAndSwap(uint32(StageNotStarted), uint32(StageRunning)) {
		return ErrAlreadyStarted
	}
	defer a.stage.Store(uint32(StageStopped))

	a.config = config
	a.registry.Freeze()
	a.runID = uuid.New()
	core.LogInfo("Starting %q (run %s) with %d states.", config.Title, a.runID, a.registry.Len())
	defer func() {
		core.LogInfo("Run %s stopped after %d frames.", a.runID, a.frame)
	}()

	if err := a.window.Initialize(config.Title, config.Width, config.Height); err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer a.window.Terminate()

	if err := a.graphics.Initialize(a.window.NativeHandle(), config.rendererOptions()); err != nil {
		return fmt.Errorf("failed to initialize graphics backend: %w", err)
	}
	defer a.graphics.Terminate()

	a.events.Register(core.EVENT_CODE_APPLICATION_QUIT, a, a.onQuit)
	a.events.Register(core.EVENT_CODE_RESIZED, a, a.onResized)
	defer func() {
		a.events.Unregister(core.EVENT_CODE_APPLICATION_QUIT, a)
		a.events.Unregister(core.EVENT_CODE_RESIZED, a)
	}()
	if a.assets != nil {
		a.assets.AttachEvents(a.events)
	}

	ctx := a.newContext()
	if err := a.current.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize state %q: %w", a.currentKey, err)
	}
	a.currentInitialized = true
	core.LogInfo("State %q initialized.", a.currentKey)

	err = a.loop(ctx)

	if a.currentInitialized {
		a.current.Terminate(ctx)
		a.currentInitialized = false
		core.LogInfo("State %q terminated.", a.currentKey)
	}
	return err
}

func (a *App) newContext() *AppContext {
	return &AppContext{
		App:      a,
		Input:    a.input,
		Graphics: a.graphics,
		Overlay:  a.overlay,
		Time:     a.time,
		Metrics:  a.metrics,
		Events:   a.events,
		Assets:   a.assets,
		Config:   a.config,
		RunID:    a.runID.String(),
	}
}

func (a *App) loop(ctx *AppContext) error {
	for !a.quit.Load() {
		frameStart := a.time.GetTime()

		// Platform callbacks write input during the pump; latch it right after.
		a.window.ProcessMessage()
		a.input.Update()
		if a.assets != nil {
			a.assets.Dispatch()
		}

		if !a.window.IsActive() {
			core.LogInfo("Window is no longer active, shutting down.")
			a.Quit()
			continue
		}

		if a.next != nil {
			if err := a.applyTransition(ctx); err != nil {
				return err
			}
		}

		deltaTime := a.time.GetDeltaTime()
		ctx.DeltaTime = deltaTime
		if a.config.Engine.longFrame(deltaTime) {
			core.LogDebug("Frame took %.3fs, skipping update.", deltaTime)
		} else if err := a.current.Update(ctx, deltaTime); err != nil {
			return fmt.Errorf("state %q update failed: %w", a.currentKey, err)
		}

		if err := a.renderFrame(ctx); err != nil {
			return err
		}

		a.frame++
		ctx.Frame = a.frame

		frameElapsed := a.time.GetTime() - frameStart
		a.metrics.Update(frameElapsed)
		a.limitFrameRate(frameElapsed)
	}
	return nil
}

func (a *App) applyTransition(ctx *AppContext) error {
	from := a.currentKey
	core.LogInfo("Changing state %q -> %q.", from, a.nextKey)

	a.current.Terminate(ctx)
	a.currentInitialized = false

	a.current, a.currentKey = a.next, a.nextKey
	a.next, a.nextKey = nil, ""

	if err := a.current.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize state %q: %w", a.currentKey, err)
	}
	a.currentInitialized = true

	a.events.Fire(core.EventContext{
		Type:   core.EVENT_CODE_STATE_CHANGED,
		Sender: a,
		Data:   &core.StateEvent{From: from, To: a.currentKey},
	})
	return nil
}

func (a *App) renderFrame(ctx *AppContext) error {
	if err := a.graphics.BeginRender(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	renderErr := a.current.Render(ctx)
	if renderErr == nil && a.config.Debug.Overlay {
		a.overlay.BeginRender()
		a.current.DebugUI(ctx)
		a.overlay.EndRender()
	}

	// The frame is ended even when the state failed so the backend is left idle.
	endErr := a.graphics.EndRender()
	if renderErr != nil {
		return fmt.Errorf("state %q render failed: %w", a.currentKey, renderErr)
	}
	if endErr != nil {
		return fmt.Errorf("failed to end frame: %w", endErr)
	}
	return nil
}

func (a *App) limitFrameRate(frameElapsed float64) {
	if a.config.Engine.TargetFPS == 0 {
		return
	}
	targetFrameSeconds := 1.0 / float64(a.config.Engine.TargetFPS)
	if remaining := targetFrameSeconds - frameElapsed; remaining > 0 {
		// If there is time left, give it back to the OS.
		a.sleep(time.Duration(remaining * float64(time.Second)))
	}
}

func (a *App) onQuit(context core.EventContext) bool {
	core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
	a.Quit()
	return true
}

func (a *App) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if r, ok := a.graphics.(renderer.Resizer); ok {
		r.Resized(se.WindowWidth, se.WindowHeight)
	}
	// Other listeners may care about the new size too.
	return false
}
