package headless

import (
	"testing"

	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

func TestWindowFrameLimit(t *testing.T) {
	w := New(nil, 2)
	if w.IsActive() {
		t.Error("IsActive() = true before Initialize")
	}
	if err := w.Initialize("test", 320, 200); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	var active []bool
	for i := 0; i < 3; i++ {
		w.ProcessMessage()
		active = append(active, w.IsActive())
	}
	if !active[0] || !active[1] || active[2] {
		t.Errorf("IsActive() per pump = %v, want [true true false]", active)
	}
	if w.Pumps() != 3 {
		t.Errorf("Pumps() = %d, want 3", w.Pumps())
	}
}

func TestWindowCloseAndTerminate(t *testing.T) {
	w := New(nil, 0)
	if err := w.Initialize("test", 320, 200); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		w.ProcessMessage()
	}
	if !w.IsActive() {
		t.Fatal("IsActive() = false without a frame limit")
	}
	w.Close()
	if w.IsActive() {
		t.Error("IsActive() = true after Close")
	}

	w.Terminate()
	w.ProcessMessage()
	if w.Pumps() != 100 {
		t.Errorf("Pumps() = %d after Terminate, want 100", w.Pumps())
	}
}

func TestWindowOnPumpAndSurface(t *testing.T) {
	in := core.NewInput(nil)
	w := New(in, 0)
	w.OnPump = func(pump int) {
		if pump == 1 {
			in.ProcessMouseMove(300, 100)
			in.ProcessMouseMove(315, 100)
		}
	}
	if err := w.Initialize("test", 320, 200); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	w.ProcessMessage()
	in.Update()

	// Initialize passed the window size on, so edges are known.
	if !in.IsMouseRightEdge() {
		t.Error("IsMouseRightEdge() = false")
	}
	if got := w.NativeHandle(); got != (renderer.NullSurface{Width: 320, Height: 200}) {
		t.Errorf("NativeHandle() = %v", got)
	}
	if w.Title != "test" {
		t.Errorf("Title = %q", w.Title)
	}
}
