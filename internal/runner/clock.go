package runner

import "time"

// DefaultMaxStep bounds a single frame delta in seconds.
const DefaultMaxStep = 0.035

// Clock converts host timestamps into bounded frame deltas.
// The first tick after construction, Reset or Resume yields zero.
type Clock struct {
	maxStep float64
	last    time.Time
	primed  bool
}

// NewClock creates a clock capping deltas at maxStep seconds.
func NewClock(maxStep float64) *Clock {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	return &Clock{maxStep: maxStep}
}

// Tick returns min(now-last, maxStep) in seconds and advances the reference.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.primed {
		c.last = now
		c.primed = true
		return 0
	}

	delta := now.Sub(c.last).Seconds()
	c.last = now
	if delta < 0 {
		return 0
	}
	return min(delta, c.maxStep)
}

// Reset forgets the reference timestamp.
func (c *Clock) Reset() {
	c.primed = false
	c.last = time.Time{}
}

// Resume drops the time spent paused by re-arming the reference.
func (c *Clock) Resume() {
	c.Reset()
}

// MaxStep returns the delta cap.
func (c *Clock) MaxStep() float64 {
	return c.maxStep
}
