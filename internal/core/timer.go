package core

import "time"

// FrameClock measures the elapsed time between host frame ticks.
type FrameClock struct {
	last     time.Time
	maxDelta time.Duration
	now      func() time.Time
}

// NewFrameClock constructs a clock whose reported deltas never exceed
// maxDelta. A non-positive maxDelta defaults to a quarter second.
func NewFrameClock(maxDelta time.Duration) *FrameClock {
	if maxDelta <= 0 {
		maxDelta = 250 * time.Millisecond
	}
	return &FrameClock{maxDelta: maxDelta, now: time.Now}
}

// Tick returns the seconds elapsed since the previous Tick. The first call
// returns 0.
func (c *FrameClock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}
	return delta.Seconds()
}

// Reset forgets the previous tick so the next Tick returns 0.
func (c *FrameClock) Reset() { c.last = time.Time{} }

// FixedDelta returns the frame duration in seconds for a ticks-per-second rate.
func FixedDelta(tps int) float64 {
	if tps <= 0 {
		tps = 60
	}
	return 1 / float64(tps)
}
