// Package clock provides the scaled game clock and the cooperative timers that
// run on it. Freezing the clock stops every timer and tween driven by it while
// wall time keeps moving.
package clock

import "time"

// MaxWallStep caps a single Wall tick so a stalled terminal does not fast-forward
// the simulation.
const MaxWallStep = 250 * time.Millisecond

// Clock supplies scaled game time, one tick at a time.
type Clock interface {
	// ElapsedSinceLastTick returns the game time that passed since the previous
	// call. It is zero while the clock is frozen.
	ElapsedSinceLastTick() time.Duration

	// Frozen reports whether game time is currently stopped.
	Frozen() bool

	// SetFrozen stops or restarts game time.
	SetFrozen(frozen bool)
}

// Fixed is a fixed-step clock: each tick is worth exactly Step of game time.
// This keeps a run fully deterministic for a given seed and input sequence.
type Fixed struct {
	step   time.Duration
	frozen bool
}

// NewFixed creates a fixed-step clock.
func NewFixed(step time.Duration) *Fixed {
	return &Fixed{step: step}
}

// NewFixedRate creates a fixed-step clock for the given ticks per second.
func NewFixedRate(tickRate int) *Fixed {
	if tickRate <= 0 {
		tickRate = 60
	}
	return NewFixed(time.Second / time.Duration(tickRate))
}

// Step returns the game time added per tick.
func (c *Fixed) Step() time.Duration {
	return c.step
}

// ElapsedSinceLastTick implements Clock.
func (c *Fixed) ElapsedSinceLastTick() time.Duration {
	if c.frozen {
		return 0
	}
	return c.step
}

// Frozen implements Clock.
func (c *Fixed) Frozen() bool {
	return c.frozen
}

// SetFrozen implements Clock.
func (c *Fixed) SetFrozen(frozen bool) {
	c.frozen = frozen
}

// Wall measures real time between ticks. Wall time that passes while frozen is
// dropped, so resuming never produces a catch-up burst.
type Wall struct {
	now    func() time.Time
	last   time.Time
	frozen bool
}

// NewWall creates a wall clock reading time.Now.
func NewWall() *Wall {
	return NewWallWithSource(time.Now)
}

// NewWallWithSource creates a wall clock reading the given time source.
func NewWallWithSource(now func() time.Time) *Wall {
	return &Wall{now: now}
}

// ElapsedSinceLastTick implements Clock.
func (c *Wall) ElapsedSinceLastTick() time.Duration {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}

	d := t.Sub(c.last)
	c.last = t

	if c.frozen || d < 0 {
		return 0
	}
	if d > MaxWallStep {
		d = MaxWallStep
	}
	return d
}

// Frozen implements Clock.
func (c *Wall) Frozen() bool {
	return c.frozen
}

// SetFrozen implements Clock.
func (c *Wall) SetFrozen(frozen bool) {
	if c.frozen && !frozen {
		// Discard the frozen span
		c.last = c.now()
	}
	c.frozen = frozen
}
