package engine

import (
	"github.com/spaghettifunk/vignette/engine/assets"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/debugui"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

// Controller is the part of the App states are allowed to drive.
type Controller interface {
	ChangeState(key string)
	Quit()
	CurrentKey() string
	StateKeys() []string
}

// AppContext is handed to every state callback. It is owned by the App and
// only valid during the callback.
type AppContext struct {
	App      Controller
	Input    *core.Input
	Graphics renderer.Backend
	Overlay  debugui.Overlay
	Time     core.TimeSource
	Metrics  *core.Metrics
	Events   *core.EventBus
	// Assets is nil when the application runs without an asset root.
	Assets *assets.Manager
	Config AppConfig

	RunID     string
	Frame     uint64
	DeltaTime float64
}
