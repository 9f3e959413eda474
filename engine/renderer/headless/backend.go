package headless

import (
	"sync"

	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

// Stats is a snapshot of what the backend was asked to do.
type Stats struct {
	Frames     uint64
	Clears     uint64
	LastClear  renderer.Color
	Width      uint32
	Height     uint32
	Resizes    uint64
	InFrame    bool
	Terminated bool
}

// Backend renders nothing. It validates the BeginRender/EndRender pairing
// and keeps counters so tests and CI runs can observe the frame loop.
type Backend struct {
	mu          sync.Mutex
	initialized bool
	options     renderer.Options
	stats       Stats
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Initialize(surface renderer.Surface, options renderer.Options) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.options = options
	b.stats = Stats{LastClear: options.ClearColor}
	if surface != nil {
		b.stats.Width, b.stats.Height = surface.FramebufferSize()
	}
	b.initialized = true
	core.LogInfo("Headless renderer initialized (%dx%d).", b.stats.Width, b.stats.Height)
	return nil
}

func (b *Backend) Terminate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.initialized = false
	b.stats.InFrame = false
	b.stats.Terminated = true
	core.LogDebug("Headless renderer terminated after %d frames.", b.stats.Frames)
}

func (b *Backend) BeginRender() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return renderer.ErrNotInitialized
	}
	if b.stats.InFrame {
		return renderer.ErrFrameInProgress
	}
	b.stats.InFrame = true
	return nil
}

func (b *Backend) EndRender() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return renderer.ErrNotInitialized
	}
	if !b.stats.InFrame {
		return renderer.ErrFrameNotStarted
	}
	b.stats.InFrame = false
	b.stats.Frames++
	return nil
}

func (b *Backend) Clear(color renderer.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.Clears++
	b.stats.LastClear = color
}

func (b *Backend) Resized(width, height uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.Width = width
	b.stats.Height = height
	b.stats.Resizes++
}

func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}
