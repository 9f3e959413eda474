package core

import (
	"testing"
	"time"
)

type manualTime struct {
	t time.Time
}

func (m *manualTime) now() time.Time { return m.t }

func (m *manualTime) advance(d time.Duration) { m.t = m.t.Add(d) }

func TestClockDeltaTime(t *testing.T) {
	mt := &manualTime{t: time.Unix(1000, 0)}
	c := NewClockWithSource(mt.now)

	if got := c.GetTime(); got != 0 {
		t.Errorf("GetTime() before start = %v, want 0", got)
	}
	if got := c.GetDeltaTime(); got != 0 {
		t.Errorf("first GetDeltaTime() = %v, want 0", got)
	}

	mt.advance(250 * time.Millisecond)
	if got := c.GetDeltaTime(); got != 0.25 {
		t.Errorf("GetDeltaTime() = %v, want 0.25", got)
	}
	mt.advance(500 * time.Millisecond)
	if got := c.GetDeltaTime(); got != 0.5 {
		t.Errorf("GetDeltaTime() = %v, want 0.5", got)
	}
	mt.advance(250 * time.Millisecond)
	if got := c.GetTime(); got != 1 {
		t.Errorf("GetTime() = %v, want 1", got)
	}
}

func TestClockStartStop(t *testing.T) {
	mt := &manualTime{t: time.Unix(0, 0)}
	c := NewClockWithSource(mt.now)

	c.Update()
	if c.Elapsed() != 0 {
		t.Errorf("Elapsed() on a stopped clock = %v", c.Elapsed())
	}

	c.Start()
	mt.advance(2 * time.Second)
	c.Update()
	if c.Elapsed() != 2 {
		t.Errorf("Elapsed() = %v, want 2", c.Elapsed())
	}

	c.Stop()
	mt.advance(time.Second)
	c.Update()
	if c.Elapsed() != 2 {
		t.Errorf("Elapsed() after Stop = %v, want 2", c.Elapsed())
	}
	if got := c.GetTime(); got != 2 {
		t.Errorf("GetTime() after Stop = %v, want 2", got)
	}

	c.Start()
	if c.Elapsed() != 0 {
		t.Errorf("Elapsed() after restart = %v, want 0", c.Elapsed())
	}
}
