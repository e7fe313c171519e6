package clock

import "time"

// Tween accumulates game time into a normalized progress value that runs from
// 0 to 1 over a fixed duration. The zero value is already complete.
type Tween struct {
	duration time.Duration
	elapsed  time.Duration
}

// NewTween creates a tween lasting d.
func NewTween(d time.Duration) Tween {
	return Tween{duration: d}
}

// Advance adds dt to the tween and returns the new progress and whether the
// tween has finished.
func (t *Tween) Advance(dt time.Duration) (float64, bool) {
	if dt > 0 && t.elapsed < t.duration {
		t.elapsed += dt
		if t.elapsed > t.duration {
			t.elapsed = t.duration
		}
	}
	return t.Progress(), t.Done()
}

// Progress returns completion in [0, 1].
func (t Tween) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}

// Done reports whether the tween has reached the end.
func (t Tween) Done() bool {
	return t.elapsed >= t.duration
}

// Lerp interpolates linearly between a and b. Progress is clamped to [0, 1].
func Lerp(a, b, progress float64) float64 {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return a + (b-a)*progress
}

// Seconds converts float seconds, as used in config files, to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
