package engine

// AppState is one screen of the application. The App initializes a state
// when it becomes current and terminates it when it stops being current;
// Update, Render and DebugUI are only called in between.
type AppState interface {
	// Initialize acquires everything the state needs to render. An error
	// aborts the application.
	Initialize(ctx *AppContext) error
	Terminate(ctx *AppContext)
	// Update advances the state by deltaTime seconds. It may request a
	// transition with ctx.App.ChangeState.
	Update(ctx *AppContext, deltaTime float64) error
	Render(ctx *AppContext) error
	// DebugUI draws widgets on ctx.Overlay. Only called when the overlay is enabled.
	DebugUI(ctx *AppContext)
}

// StateBase can be embedded to get no-op lifecycle methods.
type StateBase struct{}

func (StateBase) Initialize(*AppContext) error { return nil }
func (StateBase) Terminate(*AppContext) {}
func (StateBase) Update(*AppContext, float64) error { return nil }
func (StateBase) Render(*AppContext) error { return nil }
func (StateBase) DebugUI(*AppContext) {}
