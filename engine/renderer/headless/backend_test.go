package headless

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

func TestBackendFramePairing(t *testing.T) {
	b := New()
	if err := b.BeginRender(); !errors.Is(err, renderer.ErrNotInitialized) {
		t.Fatalf("BeginRender() before Initialize error = %v", err)
	}

	opts := renderer.Options{ApplicationName: "test", ClearColor: renderer.White}
	if err := b.Initialize(renderer.NullSurface{Width: 640, Height: 480}, opts); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if err := b.EndRender(); !errors.Is(err, renderer.ErrFrameNotStarted) {
		t.Errorf("EndRender() without BeginRender error = %v", err)
	}
	if err := b.BeginRender(); err != nil {
		t.Fatalf("BeginRender() error = %v", err)
	}
	if err := b.BeginRender(); !errors.Is(err, renderer.ErrFrameInProgress) {
		t.Errorf("nested BeginRender() error = %v", err)
	}
	b.Clear(renderer.Black)
	if err := b.EndRender(); err != nil {
		t.Fatalf("EndRender() error = %v", err)
	}
	b.Resized(800, 600)
	b.Terminate()

	want := Stats{
		Frames:     1,
		Clears:     1,
		LastClear:  renderer.Black,
		Width:      800,
		Height:     600,
		Resizes:    1,
		Terminated: true,
	}
	if diff := cmp.Diff(want, b.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
	if err := b.BeginRender(); !errors.Is(err, renderer.ErrNotInitialized) {
		t.Errorf("BeginRender() after Terminate error = %v", err)
	}
}

func TestBackendInitializeResetsStats(t *testing.T) {
	b := New()
	opts := renderer.Options{ClearColor: renderer.CornflowerBlue}
	if err := b.Initialize(nil, opts); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	want := Stats{LastClear: renderer.CornflowerBlue}
	if diff := cmp.Diff(want, b.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
}
