package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shuttle-run/internal/clock"
)

// Config bundles the configuration of every session component.
type Config struct {
	Machine MachineConfig
	Player  PlayerConfig
	Spawner SpawnerConfig
}

// Deps are the external collaborators a runtime needs. Nil fields get
// in-process defaults: a 60 Hz fixed clock, a time-seeded random source, a
// memory store and a discarding logger.
type Deps struct {
	Clock  clock.Clock
	Random RandomSource
	Store  PersistentStore
	Logger *log.Logger
}

// Runtime wires a Machine, a Player and a Spawner together and is the single
// entry point for a host: it accepts inbound requests and is stepped once per
// tick.
type Runtime struct {
	Machine  *Machine
	Player   *Player
	Spawner  *Spawner
	Settings *Settings

	clock  clock.Clock
	logger *log.Logger
	ticks  uint64
}

// NewRuntime constructs and wires the session components. The session stays
// in Intro until Begin is called.
func NewRuntime(cfg Config, deps Deps) *Runtime {
	if deps.Clock == nil {
		deps.Clock = clock.NewFixedRate(60)
	}
	if deps.Random == nil {
		deps.Random = NewSeededRandom(time.Now().UnixNano())
	}
	if deps.Store == nil {
		deps.Store = NewMemoryStore()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	settings := NewSettings(deps.Store)
	machine := NewMachine(cfg.Machine, deps.Clock, deps.Store, deps.Logger.With("component", "session"))
	player := NewPlayer(cfg.Player, machine, machine.Events(), settings)
	spawner := NewSpawner(cfg.Spawner, machine, deps.Random, machine.Scheduler(), machine.Events(),
		deps.Logger.With("component", "spawner"))

	return &Runtime{
		Machine:  machine,
		Player:   player,
		Spawner:  spawner,
		Settings: settings,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}
}

// Subscribe registers a host handler for session events. Host handlers run
// after the player and spawner, which registered at construction. Events are
// dispatched synchronously, so an event a component emits while handling
// another reaches the host first: the spawner's first SpawnRequested arrives
// before the SessionStarted that triggered it.
func (r *Runtime) Subscribe(h Handler) Subscription {
	return r.Machine.Events().Subscribe(h)
}

// Unsubscribe removes a host handler.
func (r *Runtime) Unsubscribe(s Subscription) {
	r.Machine.Events().Unsubscribe(s)
}

// Begin starts the intro of a fresh session.
func (r *Runtime) Begin() {
	r.Machine.StartSession()
}

// Step advances one tick and returns the scaled time it covered (zero while
// paused).
func (r *Runtime) Step() time.Duration {
	dt := r.clock.ElapsedSinceLastTick()
	r.ticks++
	r.Machine.Advance(dt)
	r.Player.Tick(dt)
	return dt
}

// Ticks returns the number of Step calls so far.
func (r *Runtime) Ticks() uint64 {
	return r.ticks
}

// Phase returns the current session phase.
func (r *Runtime) Phase() Phase {
	return r.Machine.Phase()
}

// RequestMove asks the player to start a pass.
func (r *Runtime) RequestMove() bool {
	return r.Player.RequestMove()
}

// ReportCollision tells the session the player touched an entity.
func (r *Runtime) ReportCollision(kind CollisionKind, entity EntityID) {
	r.Player.OnCollision(kind, entity)
}

// RequestPause pauses an active session.
func (r *Runtime) RequestPause() {
	r.Machine.Pause()
}

// RequestResume resumes a paused session.
func (r *Runtime) RequestResume() {
	r.Machine.Resume()
}

// TogglePause pauses or resumes depending on the phase. Ignored once ended.
func (r *Runtime) TogglePause() {
	switch r.Machine.Phase() {
	case PhaseActive:
		r.Machine.Pause()
	case PhasePaused:
		r.Machine.Resume()
	}
}

// RequestReset restarts an ended session from the intro.
func (r *Runtime) RequestReset() {
	if r.Machine.Phase() != PhaseEnded {
		return
	}
	r.Machine.Reset()
	r.Machine.StartSession()
}

// ToggleSound flips and persists the sound setting.
func (r *Runtime) ToggleSound() bool {
	enabled := r.Settings.ToggleSound()
	r.logger.Debug("sound toggled", "enabled", enabled)
	return enabled
}

// Close stops all session timers and deregisters the player and spawner.
func (r *Runtime) Close() {
	r.Spawner.Close()
	r.Player.Close()
	r.Machine.Scheduler().CancelAll()
}
