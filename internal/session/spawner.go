package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shuttle-run/internal/clock"
)

// SpawnerConfig configures the obstacle spawner.
type SpawnerConfig struct {
	BaseInterval time.Duration
	Obstacles    []string // Obstacle kind catalog
	Pickups      []string // Pickup kind catalog
}

// Spawner is a cancellable, repeating spawn loop on the scaled clock. It runs
// from SessionStarted until SessionEnded.
type Spawner struct {
	cfg    SpawnerConfig
	phase  PhaseReader
	rng    RandomSource
	sched  *clock.Scheduler
	bus    *Bus
	logger *log.Logger
	sub    Subscription

	running bool
	timer   *clock.Timer
	err     error
}

// NewSpawner creates a spawner and registers it for session lifecycle events.
func NewSpawner(cfg SpawnerConfig, phase PhaseReader, rng RandomSource, sched *clock.Scheduler, bus *Bus, logger *log.Logger) *Spawner {
	s := &Spawner{
		cfg:    cfg,
		phase:  phase,
		rng:    rng,
		sched:  sched,
		bus:    bus,
		logger: logger,
	}
	s.sub = bus.Subscribe(s.handle)
	return s
}

// Close stops the loop and deregisters the spawner.
func (s *Spawner) Close() {
	s.Stop()
	s.bus.Unsubscribe(s.sub)
}

func (s *Spawner) handle(e Event) {
	switch ev := e.(type) {
	case SessionStarted:
		//nolint:errcheck // Start logs the error and records it for Err
		s.Start()
	case SessionEnded:
		s.Stop()
	case PhaseChanged:
		if ev.To == PhaseIntro {
			s.Stop()
		}
	}
}

// Start validates the catalogs and runs the first iteration immediately.
// An empty catalog stops the spawner without spawning anything; the session
// itself carries on.
func (s *Spawner) Start() error {
	if s.running {
		return nil
	}

	s.err = s.validate()
	if s.err != nil {
		s.logger.Error("spawner not started", "error", s.err)
		return s.err
	}

	s.running = true
	s.iterate()
	return nil
}

// Stop cancels any pending wait. No spawn happens after Stop returns.
func (s *Spawner) Stop() {
	s.running = false
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
}

// Running reports whether the loop is armed.
func (s *Spawner) Running() bool {
	return s.running
}

// Err returns the configuration error from the last Start, if any.
func (s *Spawner) Err() error {
	return s.err
}

// Remaining returns the game time left before the next spawn.
func (s *Spawner) Remaining() time.Duration {
	return s.timer.Remaining()
}

// NextInterval returns the wait for a jitter draw in [2, 5):
// BaseInterval * draw * 0.5, giving 1x, 1.5x or 2x the base interval.
func (s *Spawner) NextInterval(draw int) time.Duration {
	return time.Duration(float64(s.cfg.BaseInterval) * float64(draw) * 0.5)
}

func (s *Spawner) validate() error {
	if len(s.cfg.Obstacles) == 0 {
		return fmt.Errorf("spawner: %w: no obstacle kinds", ErrEmptyCatalog)
	}
	if len(s.cfg.Pickups) == 0 {
		return fmt.Errorf("spawner: %w: no pickup kinds", ErrEmptyCatalog)
	}
	return nil
}

// iterate is one loop body: an obstacle always, a pickup half the time, then
// re-arm.
func (s *Spawner) iterate() {
	s.timer = nil
	if !s.running || s.phase.Phase() != PhaseActive {
		s.running = false
		return
	}

	kind := s.cfg.Obstacles[s.rng.UniformInt(0, len(s.cfg.Obstacles))]
	s.bus.Emit(SpawnRequested{Request: SpawnRequest{Kind: kind, Category: CategoryObstacle}})

	if s.rng.UniformInt(0, 2) == 0 {
		kind := s.cfg.Pickups[s.rng.UniformInt(0, len(s.cfg.Pickups))]
		s.bus.Emit(SpawnRequested{Request: SpawnRequest{Kind: kind, Category: CategoryPickup}})
	}

	// A spawn handler may have ended the session
	if !s.running {
		return
	}

	interval := s.NextInterval(s.rng.UniformInt(2, 5))
	s.timer = s.sched.After(interval, s.iterate)
}
