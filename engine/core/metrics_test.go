package core

import (
	"math"
	"testing"
)

func TestMetricsFrameTimeAverage(t *testing.T) {
	m := NewMetrics()
	m.Update(0.010)
	m.Update(0.020)
	if got := m.FrameTime(); math.Abs(got-15) > 1e-9 {
		t.Errorf("FrameTime() = %v, want 15", got)
	}
	if got := m.TotalFrames(); got != 2 {
		t.Errorf("TotalFrames() = %d, want 2", got)
	}
}

func TestMetricsRollingWindow(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.100)
	}
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.010)
	}
	if got := m.FrameTime(); math.Abs(got-10) > 1e-6 {
		t.Errorf("FrameTime() = %v, want 10 once old samples are evicted", got)
	}
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	// 0.25s frames: the fifth frame pushes the accumulated time past one second.
	for i := 0; i < 4; i++ {
		m.Update(0.25)
	}
	if got := m.FPS(); got != 0 {
		t.Errorf("FPS() after one second = %v, want 0", got)
	}
	m.Update(0.25)
	fps, ms := m.Frame()
	if fps != 4 {
		t.Errorf("FPS = %v, want 4", fps)
	}
	if ms != 250 {
		t.Errorf("frame ms = %v, want 250", ms)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d", got)
	}
	if got := Clamp(-1.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-1.5, 0, 1) = %v", got)
	}
	if got := Clamp("m", "a", "z"); got != "m" {
		t.Errorf(`Clamp("m", "a", "z") = %q`, got)
	}
}
