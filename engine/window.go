package engine

import "github.com/spaghettifunk/vignette/engine/renderer"

// Window owns the native surface the graphics backend presents to.
type Window interface {
	Initialize(title string, width, height uint32) error
	Terminate()
	// ProcessMessage pumps pending platform messages without blocking.
	ProcessMessage()
	// IsActive reports false once the window has been closed.
	IsActive() bool
	// NativeHandle is borrowed by the backend and stays owned by the window.
	NativeHandle() renderer.Surface
}
