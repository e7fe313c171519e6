package clock

import "time"

// Timer is a pending callback on a Scheduler.
type Timer struct {
	id       uint64
	deadline time.Duration
	fn       func()
	sched    *Scheduler
	done     bool
	held     bool // Armed at zero delay by a callback; waits for the next Advance
}

// Cancel stops the timer. A cancelled timer never fires, even if its deadline
// is reached later in the same Advance call. Returns false if the timer had
// already fired or been cancelled.
func (t *Timer) Cancel() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	t.sched.remove(t)
	return true
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	return t != nil && !t.done
}

// Remaining returns how much game time is left before the timer fires.
func (t *Timer) Remaining() time.Duration {
	if !t.Active() {
		return 0
	}
	if r := t.deadline - t.sched.now; r > 0 {
		return r
	}
	return 0
}

// Scheduler runs callbacks at points in game time. It is advanced explicitly
// with the scaled elapsed time of each tick, so a frozen clock freezes every
// timer at once. Not safe for concurrent use.
type Scheduler struct {
	now       time.Duration
	seq       uint64
	timers    []*Timer
	advancing bool
}

// NewScheduler creates an empty scheduler at game time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make([]*Timer, 0, 4)}
}

// Now returns the scheduler's current game time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d of game time has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{
		id:       s.seq,
		deadline: s.now + d,
		fn:       fn,
		sched:    s,
		held:     s.advancing && d == 0,
	}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves game time forward by dt and fires every timer whose deadline
// falls inside the step, in deadline order (ties in scheduling order). While a
// callback runs, Now reports that timer's deadline, so a timer re-armed from
// inside a callback is measured from the exact moment its predecessor fired.
// A timer a callback arms with zero delay fires on the next Advance instead,
// so a zero-interval loop cannot stall a step. Returns the number of
// callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	s.advancing = true
	defer func() {
		s.advancing = false
		for _, t := range s.timers {
			t.held = false
		}
	}()

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.remove(t)
		t.done = true
		s.now = t.deadline
		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// CancelAll cancels every pending timer.
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.done = true
	}
	s.timers = s.timers[:0]
}

// nextDue returns the earliest timer due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *Timer {
	var next *Timer
	for _, t := range s.timers {
		if t.deadline > target || t.held {
			continue
		}
		if next == nil || t.deadline < next.deadline ||
			(t.deadline == next.deadline && t.id < next.id) {
			next = t
		}
	}
	return next
}

// remove drops t from the pending list.
func (s *Scheduler) remove(t *Timer) {
	for i, p := range s.timers {
		if p == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}
