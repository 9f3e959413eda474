package core

import "time"

// TimeSource provides frame timing in seconds.
type TimeSource interface {
	// GetDeltaTime returns the seconds elapsed since the previous call.
	GetDeltaTime() float64
	// GetTime returns the seconds elapsed since the source started.
	GetTime() float64
}

// Clock is a monotonic TimeSource.
type Clock struct {
	now       func() time.Time
	startTime time.Time
	lastTick  time.Time
	elapsed   float64
	running   bool
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithSource is used by tests to drive the clock by hand.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = c.now().Sub(c.startTime).Seconds()
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.lastTick = c.startTime
	c.elapsed = 0
	c.running = true
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

func (c *Clock) GetDeltaTime() float64 {
	if !c.running {
		c.Start()
	}
	now := c.now()
	delta := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	c.elapsed = now.Sub(c.startTime).Seconds()
	return delta
}

func (c *Clock) GetTime() float64 {
	if !c.running {
		return c.elapsed
	}
	c.Update()
	return c.elapsed
}
