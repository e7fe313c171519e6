package session

// Event is something the session tells the outside world about.
type Event interface {
	sessionEvent()
}

// SessionStarted is emitted when the intro camera move completes and play begins.
type SessionStarted struct{}

func (SessionStarted) sessionEvent() {}

// SessionEnded is emitted once per session when the run ends.
type SessionEnded struct {
	Score int
}

func (SessionEnded) sessionEvent() {}

// PhaseChanged is emitted on every phase transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (PhaseChanged) sessionEvent() {}

// ScoreChanged is emitted for every registered point. Hosts play the score
// animation on it.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) sessionEvent() {}

// ColorChanged is emitted when the score moves the palette to a new entry.
type ColorChanged struct {
	Index int
	Color Color
}

func (ColorChanged) sessionEvent() {}

// HighScoreResult reports the end-of-run comparison against the stored best.
// Value is the new best when IsNewBest, otherwise the existing best.
type HighScoreResult struct {
	IsNewBest bool
	Value     int
}

func (HighScoreResult) sessionEvent() {}

// ResultsReady is emitted a short delay after the run ends, when the host
// should show the end panel.
type ResultsReady struct {
	Score     int
	Color     Color
	HighScore int
	IsNewBest bool
}

func (ResultsReady) sessionEvent() {}

// SpawnRequested asks the host to instantiate an entity.
type SpawnRequested struct {
	Request SpawnRequest
}

func (SpawnRequested) sessionEvent() {}

// PickupCollected tells the host to remove a collected pickup.
type PickupCollected struct {
	Entity EntityID
}

func (PickupCollected) sessionEvent() {}

// PlayerExploded is emitted when the player hits an obstacle.
type PlayerExploded struct {
	Position float64
}

func (PlayerExploded) sessionEvent() {}

// PlayerRemoved is emitted when the end-of-run shrink finishes.
type PlayerRemoved struct{}

func (PlayerRemoved) sessionEvent() {}

// SoundCue names a sound the host should play.
type SoundCue int

const (
	CueMove SoundCue = iota
	CueScore
	CueLose
)

// String returns a human-readable name for the cue.
func (c SoundCue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueScore:
		return "score"
	case CueLose:
		return "lose"
	default:
		return "unknown"
	}
}

// SoundPlayed is emitted for each cue while sound is enabled.
type SoundPlayed struct {
	Cue SoundCue
}

func (SoundPlayed) sessionEvent() {}

// Handler receives session events.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
	active  bool
}

// Bus is the session's observer registry. Handlers are called synchronously
// in registration order. A handler removed during dispatch is not called for
// the rest of that dispatch.
type Bus struct {
	next Subscription
	subs []*subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(h Handler) Subscription {
	b.next++
	b.subs = append(b.subs, &subscriber{id: b.next, handler: h, active: true})
	return b.next
}

// Unsubscribe removes a handler. Returns false if it was not registered.
func (b *Bus) Unsubscribe(id Subscription) bool {
	for i, s := range b.subs {
		if s.id == id {
			s.active = false
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Emit delivers e to every registered handler.
func (b *Bus) Emit(e Event) {
	// Snapshot so handlers may subscribe or unsubscribe while we iterate
	subs := append([]*subscriber(nil), b.subs...)
	for _, s := range subs {
		if s.active {
			s.handler(e)
		}
	}
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	return len(b.subs)
}
