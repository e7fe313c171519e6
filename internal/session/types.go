// Package session implements the gameplay core of Shuttle Run: the session
// state machine, the oscillating player controller and the randomized
// obstacle spawner. It has no terminal or storage dependencies; the host
// supplies a clock, a random source and a persistent store, drives Step once
// per tick and reacts to the events the session emits.
package session

import "errors"

// ErrEmptyCatalog reports a spawner configured with no obstacle or pickup kinds.
var ErrEmptyCatalog = errors.New("empty spawn catalog")

// Persistent store keys.
const (
	KeySoundEnabled = "sound_enabled"
	KeyHighScore    = "high_score"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	PhaseIntro  Phase = iota // Camera moving in, no input accepted
	PhaseActive              // Playing
	PhasePaused              // Game clock frozen
	PhaseEnded               // Run over; terminal until Reset
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "Intro"
	case PhaseActive:
		return "Active"
	case PhasePaused:
		return "Paused"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Category tells the host which catalog a spawned kind came from.
type Category int

const (
	CategoryObstacle Category = iota
	CategoryPickup
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryObstacle:
		return "Obstacle"
	case CategoryPickup:
		return "Pickup"
	default:
		return "Unknown"
	}
}

// CollisionKind is what the player touched.
type CollisionKind int

const (
	CollisionScorePickup CollisionKind = iota
	CollisionObstacle
)

// String returns a human-readable name for the collision kind.
func (k CollisionKind) String() string {
	switch k {
	case CollisionScorePickup:
		return "ScorePickup"
	case CollisionObstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// EntityID identifies a host-side entity involved in a collision.
type EntityID uint64

// SpawnRequest asks the host to instantiate one entity.
type SpawnRequest struct {
	Kind     string
	Category Category
}

// Color is a palette entry. The session treats it as opaque; the renderer
// decides what it means (the terminal host uses lipgloss color strings).
type Color string

// RandomSource supplies uniform integers.
type RandomSource interface {
	// UniformInt returns an integer in [lo, hi).
	UniformInt(lo, hi int) int
}

// PersistentStore is a synchronous integer key-value store. Failures are the
// store's problem: it returns the default and carries on.
type PersistentStore interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
}

// MaxStore is a PersistentStore shared between sessions. RaiseInt stores
// value under key only if it is greater than the current value (def when
// absent), as one atomic step, and returns the value stored afterwards and
// whether this call raised it. The machine settles the high score through it
// when the store provides it.
type MaxStore interface {
	PersistentStore
	RaiseInt(key string, value, def int) (stored int, raised bool)
}

// PhaseReader gives read-only access to the session phase.
type PhaseReader interface {
	Phase() Phase
}
