package session

import (
	"errors"
	"testing"
	"time"
)

func spawns(r *recorder) []SpawnRequest {
	var out []SpawnRequest
	for _, e := range r.events {
		if s, ok := e.(SpawnRequested); ok {
			out = append(out, s.Request)
		}
	}
	return out
}

func TestNextInterval(t *testing.T) {
	s := &Spawner{cfg: SpawnerConfig{BaseInterval: 2 * time.Second}}

	tests := []struct {
		draw     int
		expected time.Duration
	}{
		{2, 2 * time.Second},
		{3, 3 * time.Second},
		{4, 4 * time.Second},
	}

	for _, tc := range tests {
		if got := s.NextInterval(tc.draw); got != tc.expected {
			t.Errorf("NextInterval(%d) = %v, expected %v", tc.draw, got, tc.expected)
		}
	}
}

func TestSpawnerIteration(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.Pickups = []string{"coin", "star"}
	h := newHarness(t, cfg)

	// obstacle index 1, pickup coin flip 0, pickup index 1, jitter 3
	h.rng.draws = []int{1, 0, 1, 3}
	h.rt.Begin()

	got := spawns(h.rec)
	if len(got) != 2 {
		t.Fatalf("First iteration spawned %d entities, expected 2", len(got))
	}
	if got[0] != (SpawnRequest{Kind: "spike", Category: CategoryObstacle}) {
		t.Errorf("First spawn = %+v, expected spike obstacle", got[0])
	}
	if got[1] != (SpawnRequest{Kind: "star", Category: CategoryPickup}) {
		t.Errorf("Second spawn = %+v, expected star pickup", got[1])
	}
	if r := h.rt.Spawner.Remaining(); r != 3*time.Second {
		t.Errorf("Remaining() = %v, expected 3s", r)
	}
}

func TestSpawnerSkipsPickupOnCoinFlip(t *testing.T) {
	h := newHarness(t, testConfig())

	// obstacle index 0, coin flip 1 (no pickup), jitter 2
	h.rng.draws = []int{0, 1, 2}
	h.rt.Begin()

	got := spawns(h.rec)
	if len(got) != 1 || got[0].Category != CategoryObstacle {
		t.Errorf("Spawns = %+v, expected a single obstacle", got)
	}
	if h.rng.calls != 3 {
		t.Errorf("Random draws = %d, expected 3", h.rng.calls)
	}
	if r := h.rt.Spawner.Remaining(); r != 2*time.Second {
		t.Errorf("Remaining() = %v, expected 2s", r)
	}
}

func TestSpawnerRepeatsOnScaledClock(t *testing.T) {
	h := newHarness(t, testConfig())
	h.rt.Begin() // scripted random exhausted: every wait is 2s

	h.steps(7) // 1.75s
	if n := len(spawns(h.rec)); n != 2 {
		t.Errorf("Spawned %d entities before the first wait elapsed, expected 2", n)
	}

	h.steps(1) // 2.0s
	if n := len(spawns(h.rec)); n != 4 {
		t.Errorf("Spawned %d entities after one wait, expected 4", n)
	}
}

func TestSpawnerEmptyCatalog(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []string
		pickups   []string
	}{
		{"no obstacles", nil, []string{"coin"}},
		{"no pickups", []string{"wall"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Spawner.Obstacles = tc.obstacles
			cfg.Spawner.Pickups = tc.pickups
			h := newHarness(t, cfg)

			h.rt.Begin()
			h.steps(20)

			if !errors.Is(h.rt.Spawner.Err(), ErrEmptyCatalog) {
				t.Errorf("Err() = %v, expected ErrEmptyCatalog", h.rt.Spawner.Err())
			}
			if n := len(spawns(h.rec)); n != 0 {
				t.Errorf("Spawned %d entities with an empty catalog", n)
			}
			if h.rt.Phase() != PhaseActive {
				t.Errorf("Session should carry on, Phase() = %v", h.rt.Phase())
			}
		})
	}
}

func TestSpawnerStopsOnSessionEnd(t *testing.T) {
	h := started(t)
	h.steps(2)
	h.rt.Machine.EndSession()
	before := len(spawns(h.rec))

	h.steps(40)
	if n := len(spawns(h.rec)); n != before {
		t.Errorf("Spawned %d entities after the session ended", n-before)
	}
	if h.rt.Spawner.Running() {
		t.Error("Spawner should not be running after the session ended")
	}
	if h.rt.Machine.Scheduler().Pending() != 0 {
		t.Errorf("Pending timers after end = %d, expected 0", h.rt.Machine.Scheduler().Pending())
	}
}

func TestPauseResumePreservesState(t *testing.T) {
	h := started(t)
	h.rt.Machine.RegisterScore()
	h.rt.Machine.RegisterScore()
	h.rt.RequestMove()
	h.steps(2)

	pos := h.rt.Player.Position()
	score := h.rt.Machine.Score()
	color := h.rt.Machine.ColorIndex()
	remaining := h.rt.Spawner.Remaining()
	spawned := len(spawns(h.rec))

	h.rt.RequestPause()
	h.steps(50)
	h.rt.RequestResume()

	if h.rt.Player.Position() != pos {
		t.Errorf("Position changed across pause: %v -> %v", pos, h.rt.Player.Position())
	}
	if h.rt.Machine.Score() != score || h.rt.Machine.ColorIndex() != color {
		t.Error("Score or color changed across pause")
	}
	if got := h.rt.Spawner.Remaining(); got != remaining {
		t.Errorf("Spawner remaining changed across pause: %v -> %v", remaining, got)
	}
	if n := len(spawns(h.rec)); n != spawned {
		t.Errorf("Spawned %d entities while paused", n-spawned)
	}

	// Timing resumes from the exact remaining interval
	h.rt.Step()
	if got := h.rt.Spawner.Remaining(); got != remaining-testStep {
		t.Errorf("Remaining() after one resumed tick = %v, expected %v", got, remaining-testStep)
	}
}

func TestZeroIntervalSpawnsOncePerStep(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.BaseInterval = 0
	h := newHarness(t, cfg)
	h.rt.Begin()

	obstacles := func() int {
		n := 0
		for _, r := range spawns(h.rec) {
			if r.Category == CategoryObstacle {
				n++
			}
		}
		return n
	}

	if got := obstacles(); got != 1 {
		t.Fatalf("obstacles after Begin = %d, expected 1", got)
	}
	h.steps(3)
	if got := obstacles(); got != 4 {
		t.Errorf("obstacles after 3 steps = %d, expected 4", got)
	}
}

func TestHostSeesFirstSpawnBeforeSessionStarted(t *testing.T) {
	h := newHarness(t, testConfig())
	h.rt.Begin()

	spawnAt, startAt := -1, -1
	for i, e := range h.rec.events {
		switch e.(type) {
		case SpawnRequested:
			if spawnAt < 0 {
				spawnAt = i
			}
		case SessionStarted:
			startAt = i
		}
	}
	if spawnAt < 0 || startAt < 0 {
		t.Fatalf("events = %v, expected a spawn and SessionStarted", h.rec.events)
	}
	if spawnAt > startAt {
		t.Errorf("first SpawnRequested at %d, SessionStarted at %d: expected the spawn first", spawnAt, startAt)
	}
}
