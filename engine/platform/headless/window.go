// Package headless provides a window with no native surface. It is used to run
// the frame loop in CI and in tests.
package headless

import (
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

// Window stays active for a fixed number of message pumps. A limit of 0
// keeps it active until Close is called.
type Window struct {
	Title  string
	Width  uint32
	Height uint32

	// OnPump runs at the end of every ProcessMessage with the pump count,
	// standing in for platform callbacks.
	OnPump func(pump int)

	input  *core.Input
	limit  int
	pumps  int
	open   bool
	closed bool
}

func New(input *core.Input, frames int) *Window {
	return &Window{input: input, limit: frames}
}

func (w *Window) Initialize(title string, width, height uint32) error {
	w.Title = title
	w.Width, w.Height = width, height
	w.open = true
	w.closed = false
	w.pumps = 0
	if w.input != nil {
		w.input.SetWindowSize(width, height)
	}
	core.LogDebug("Headless window %q created (%dx%d).", title, width, height)
	return nil
}

func (w *Window) Terminate() {
	w.open = false
}

func (w *Window) ProcessMessage() {
	if !w.open {
		return
	}
	w.pumps++
	if w.OnPump != nil {
		w.OnPump(w.pumps)
	}
}

func (w *Window) IsActive() bool {
	if !w.open || w.closed {
		return false
	}
	return w.limit <= 0 || w.pumps <= w.limit
}

func (w *Window) NativeHandle() renderer.Surface {
	return renderer.NullSurface{Width: w.Width, Height: w.Height}
}

func (w *Window) Close() {
	w.closed = true
}

// Pumps is the number of ProcessMessage calls since Initialize.
func (w *Window) Pumps() int {
	return w.pumps
}
