package session

import (
	"testing"
	"time"

	"github.com/vovakirdan/shuttle-run/internal/clock"
)

const testStep = 250 * time.Millisecond

// scriptedRandom returns queued draws in order, then lo once exhausted.
type scriptedRandom struct {
	draws []int
	calls int
}

func (r *scriptedRandom) UniformInt(lo, hi int) int {
	r.calls++
	if len(r.draws) == 0 {
		return lo
	}
	v := r.draws[0]
	r.draws = r.draws[1:]
	return v
}

// recorder collects every event emitted on a bus.
type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) reset() {
	r.events = nil
}

func count[T Event](r *recorder) int {
	n := 0
	for _, e := range r.events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func last[T Event](r *recorder) (T, bool) {
	var zero T
	for i := len(r.events) - 1; i >= 0; i-- {
		if e, ok := r.events[i].(T); ok {
			return e, true
		}
	}
	return zero, false
}

func testConfig() Config {
	return Config{
		Machine: MachineConfig{
			Palette:      []Color{"red", "green", "blue"},
			ResultsDelay: time.Second,
		},
		Player: PlayerConfig{
			MoveTime:    time.Second,
			DestroyTime: 500 * time.Millisecond,
		},
		Spawner: SpawnerConfig{
			BaseInterval: 2 * time.Second,
			Obstacles:    []string{"wall", "spike"},
			Pickups:      []string{"coin"},
		},
	}
}

type testHarness struct {
	rt    *Runtime
	clock *clock.Fixed
	store *MemoryStore
	rng   *scriptedRandom
	rec   *recorder
}

func newHarness(t *testing.T, cfg Config) *testHarness {
	t.Helper()

	h := &testHarness{
		clock: clock.NewFixed(testStep),
		store: NewMemoryStore(),
		rng:   &scriptedRandom{},
		rec:   &recorder{},
	}
	h.rt = NewRuntime(cfg, Deps{Clock: h.clock, Random: h.rng, Store: h.store})
	h.rt.Subscribe(h.rec.handle)
	t.Cleanup(h.rt.Close)
	return h
}

// started returns a harness whose session is already Active.
func started(t *testing.T) *testHarness {
	t.Helper()
	h := newHarness(t, testConfig())
	h.rt.Begin()
	if h.rt.Phase() != PhaseActive {
		t.Fatalf("Phase() = %v after Begin with no camera move, expected Active", h.rt.Phase())
	}
	return h
}

func (h *testHarness) steps(n int) {
	for i := 0; i < n; i++ {
		h.rt.Step()
	}
}
