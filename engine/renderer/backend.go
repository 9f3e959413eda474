package renderer

import (
	"errors"
)

var (
	ErrUnsupportedSurface = errors.New("surface not supported by this backend")
	ErrNotInitialized     = errors.New("renderer backend not initialized")
	ErrFrameNotStarted    = errors.New("EndRender called without a matching BeginRender")
	ErrFrameInProgress    = errors.New("BeginRender called while a frame is in progress")
)

// Backend is the graphics device the application loop renders through.
// Initialize borrows the surface; the window that produced it keeps
// ownership and must outlive the backend.
type Backend interface {
	Initialize(surface Surface, options Options) error
	Terminate()
	BeginRender() error
	EndRender() error
	// Clear sets the colour the current frame's target is cleared to.
	Clear(color Color)
}

// Resizer is implemented by backends that need to rebuild their
// render targets when the window size changes.
type Resizer interface {
	Resized(width, height uint32)
}

// Options configures a backend at initialization.
type Options struct {
	ApplicationName string
	VSync           bool
	Validation      bool
	ClearColor      Color
}
