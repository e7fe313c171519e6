package session

import (
	"math"
	"time"

	"github.com/vovakirdan/shuttle-run/internal/clock"
)

// PlayerConfig configures the player controller.
type PlayerConfig struct {
	MoveTime    time.Duration // Time for one full pass between the two positions
	DestroyTime time.Duration // Length of the end-of-run shrink
}

// Scorekeeper is the part of the state machine the player reports to.
type Scorekeeper interface {
	PhaseReader
	RegisterScore()
	EndSession()
}

// Player moves back and forth along a fixed segment, one pass per move
// request, and turns collisions into score or end-of-run requests.
type Player struct {
	cfg   PlayerConfig
	game  Scorekeeper
	bus   *Bus
	sound *Settings
	sub   Subscription

	position  float64 // Progress along the segment, [0, 1]
	moveSpeed float64 // Signed, progress per second
	isMoving  bool
	canMove   bool
	canShoot  bool // Gates starting a new pass

	removed   bool // Out of the simulation; collisions are ignored
	shrinking bool
	shrink    clock.Tween
	scale     float64
	gone      bool // Shrink finished
}

// NewPlayer creates a player and registers it for session lifecycle events.
func NewPlayer(cfg PlayerConfig, game Scorekeeper, bus *Bus, sound *Settings) *Player {
	p := &Player{
		cfg:   cfg,
		game:  game,
		bus:   bus,
		sound: sound,
	}
	p.reinit()
	p.sub = bus.Subscribe(p.handle)
	return p
}

// Close deregisters the player from the event bus.
func (p *Player) Close() {
	p.bus.Unsubscribe(p.sub)
}

// Position returns progress along the segment in [0, 1].
func (p *Player) Position() float64 {
	return p.position
}

// Direction returns +1 when the next pass heads to the end position, -1 when
// it heads back to the start.
func (p *Player) Direction() int {
	if p.moveSpeed < 0 {
		return -1
	}
	return 1
}

// IsMoving reports whether a pass is in progress.
func (p *Player) IsMoving() bool {
	return p.isMoving
}

// Scale returns the draw scale, 1 normally and shrinking to 0 after the run.
func (p *Player) Scale() float64 {
	return p.scale
}

// Removed reports whether the player has left the simulation.
func (p *Player) Removed() bool {
	return p.removed
}

// Gone reports whether the end-of-run shrink has finished.
func (p *Player) Gone() bool {
	return p.gone
}

// handle routes lifecycle events.
func (p *Player) handle(e Event) {
	switch ev := e.(type) {
	case SessionStarted:
		p.onSessionStarted()
	case SessionEnded:
		p.onSessionEnded()
	case PhaseChanged:
		if ev.To == PhaseIntro {
			p.reinit()
		}
	}
}

// reinit puts the player back at the start position, idle and full size.
func (p *Player) reinit() {
	p.position = 0
	p.moveSpeed = p.speed()
	p.isMoving = false
	p.canMove = false
	p.canShoot = false
	p.removed = false
	p.shrinking = false
	p.scale = 1
	p.gone = false
}

// speed returns the magnitude of moveSpeed: one segment per MoveTime.
func (p *Player) speed() float64 {
	return 1 / p.cfg.MoveTime.Seconds()
}

func (p *Player) onSessionStarted() {
	p.reinit()
	p.canMove = true
	p.canShoot = true
}

// onSessionEnded starts the shrink that ends with the player's removal.
func (p *Player) onSessionEnded() {
	p.canMove = false
	p.canShoot = false
	p.isMoving = false
	p.removed = true
	p.shrinking = true
	p.shrink = clock.NewTween(p.cfg.DestroyTime)
	if p.shrink.Done() {
		p.finishShrink()
	}
}

func (p *Player) finishShrink() {
	p.shrinking = false
	p.scale = 0
	p.gone = true
	p.bus.Emit(PlayerRemoved{})
}

// RequestMove starts a pass toward the other position. Ignored while a pass
// is already running, before the session starts and after it ends. Returns
// true if a pass was started.
func (p *Player) RequestMove() bool {
	if !p.canShoot || p.removed || p.game.Phase() != PhaseActive {
		return false
	}
	if p.isMoving {
		return false
	}
	p.isMoving = true
	p.cue(CueMove)
	return true
}

// Tick advances the player by dt of scaled game time.
func (p *Player) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}

	if p.shrinking {
		progress, done := p.shrink.Advance(dt)
		p.scale = clock.Lerp(1, 0, progress)
		if done {
			p.finishShrink()
		}
	}

	if !p.canMove || !p.isMoving || p.removed || p.game.Phase() != PhaseActive {
		return
	}

	p.position += p.moveSpeed * dt.Seconds()

	switch {
	case p.position >= 1:
		p.position = 1
		p.moveSpeed = -math.Abs(p.moveSpeed)
		p.isMoving = false
	case p.position <= 0:
		p.position = 0
		p.moveSpeed = math.Abs(p.moveSpeed)
		p.isMoving = false
	}
}

// OnCollision reacts to the host reporting contact with an entity.
// Collisions after the player has been removed are dropped.
func (p *Player) OnCollision(kind CollisionKind, entity EntityID) {
	if p.removed || p.game.Phase() != PhaseActive {
		return
	}

	switch kind {
	case CollisionScorePickup:
		p.game.RegisterScore()
		p.bus.Emit(PickupCollected{Entity: entity})
		p.cue(CueScore)

	case CollisionObstacle:
		// Mark first: EndSession re-enters through SessionEnded
		p.removed = true
		p.canMove = false
		p.canShoot = false
		p.isMoving = false
		p.bus.Emit(PlayerExploded{Position: p.position})
		p.cue(CueLose)
		p.game.EndSession()
	}
}

// cue emits a sound cue if sound is enabled.
func (p *Player) cue(c SoundCue) {
	if p.sound != nil && p.sound.SoundEnabled() {
		p.bus.Emit(SoundPlayed{Cue: c})
	}
}
