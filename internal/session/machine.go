package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shuttle-run/internal/clock"
)

// MachineConfig configures the session state machine.
type MachineConfig struct {
	Palette        []Color
	CameraStart    float64       // Camera offset when the intro begins
	CameraEnd      float64       // Camera offset during play
	CameraMoveTime time.Duration // Intro camera move duration
	ResultsDelay   time.Duration // Game time between SessionEnded and ResultsReady
}

// Machine is the session state machine. It is the only writer of session
// state; other components go through its methods and observe it through the
// event bus.
type Machine struct {
	cfg    MachineConfig
	clock  clock.Clock
	sched  *clock.Scheduler
	store  PersistentStore
	bus    *Bus
	logger *log.Logger

	phase      Phase
	score      int
	colorIndex int
	highScore  int
	isNewBest  bool
	hasEnded   bool

	introRunning bool
	camera       clock.Tween
	cameraPos    float64

	resultsTimer *clock.Timer
}

// NewMachine creates a machine in the Intro phase. Call StartSession to begin
// the intro camera move.
func NewMachine(cfg MachineConfig, clk clock.Clock, store PersistentStore, logger *log.Logger) *Machine {
	return &Machine{
		cfg:       cfg,
		clock:     clk,
		sched:     clock.NewScheduler(),
		store:     store,
		bus:       NewBus(),
		logger:    logger,
		phase:     PhaseIntro,
		cameraPos: cfg.CameraStart,
	}
}

// Events returns the machine's observer registry.
func (m *Machine) Events() *Bus {
	return m.bus
}

// Scheduler returns the scaled-time scheduler shared by all session timers.
func (m *Machine) Scheduler() *clock.Scheduler {
	return m.sched
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Score returns the current score.
func (m *Machine) Score() int {
	return m.score
}

// ColorIndex returns the current palette index.
func (m *Machine) ColorIndex() int {
	return m.colorIndex
}

// Color returns the current palette entry, or "" with an empty palette.
func (m *Machine) Color() Color {
	if len(m.cfg.Palette) == 0 {
		return ""
	}
	return m.cfg.Palette[m.colorIndex]
}

// HighScore returns the best score as of the last ended session.
func (m *Machine) HighScore() int {
	return m.highScore
}

// HasEnded reports whether the current session has ended.
func (m *Machine) HasEnded() bool {
	return m.hasEnded
}

// CameraOffset returns the interpolated camera position.
func (m *Machine) CameraOffset() float64 {
	return m.cameraPos
}

// StartSession resets the score and begins the intro camera move. Only valid
// in the Intro phase before the move has started.
func (m *Machine) StartSession() {
	if m.phase != PhaseIntro || m.introRunning {
		m.ignored("start")
		return
	}

	m.score = 0
	m.colorIndex = 0
	m.hasEnded = false
	m.isNewBest = false
	m.camera = clock.NewTween(m.cfg.CameraMoveTime)
	m.cameraPos = m.cfg.CameraStart
	m.introRunning = true

	m.logger.Debug("session starting", "camera_time", m.cfg.CameraMoveTime)

	if m.camera.Done() {
		m.finishIntro()
	}
}

// Advance moves the session forward by dt of scaled game time: pending timers
// fire first, then the intro camera move progresses.
func (m *Machine) Advance(dt time.Duration) {
	m.sched.Advance(dt)

	if m.phase == PhaseIntro && m.introRunning {
		progress, done := m.camera.Advance(dt)
		m.cameraPos = clock.Lerp(m.cfg.CameraStart, m.cfg.CameraEnd, progress)
		if done {
			m.finishIntro()
		}
	}
}

// finishIntro enters Active and announces the session.
func (m *Machine) finishIntro() {
	m.introRunning = false
	m.cameraPos = m.cfg.CameraEnd
	m.setPhase(PhaseActive)
	m.bus.Emit(SessionStarted{})
}

// RegisterScore adds one point. The palette advances on every second point.
func (m *Machine) RegisterScore() {
	if m.phase != PhaseActive {
		m.ignored("score")
		return
	}

	m.score++
	m.bus.Emit(ScoreChanged{Score: m.score})

	if idx := ColorIndexFor(m.score, len(m.cfg.Palette)); idx != m.colorIndex {
		m.colorIndex = idx
		m.bus.Emit(ColorChanged{Index: idx, Color: m.Color()})
	}
}

// Pause freezes the game clock. Only valid while Active.
func (m *Machine) Pause() {
	if m.phase != PhaseActive {
		m.ignored("pause")
		return
	}
	m.clock.SetFrozen(true)
	m.setPhase(PhasePaused)
}

// Resume unfreezes the game clock. Only valid while Paused.
func (m *Machine) Resume() {
	if m.phase != PhasePaused {
		m.ignored("resume")
		return
	}
	m.clock.SetFrozen(false)
	m.setPhase(PhaseActive)
}

// EndSession ends the run and settles the high score. Only valid while
// Active, so a second call is a no-op.
func (m *Machine) EndSession() {
	if m.phase != PhaseActive || m.hasEnded {
		m.ignored("end")
		return
	}

	m.hasEnded = true
	m.setPhase(PhaseEnded)
	m.bus.Emit(SessionEnded{Score: m.score})

	best, raised := m.settleHighScore()
	m.isNewBest = raised
	m.highScore = best

	m.logger.Info("session ended", "score", m.score, "best", best, "new_best", m.isNewBest)
	m.bus.Emit(HighScoreResult{IsNewBest: m.isNewBest, Value: best})

	m.resultsTimer = m.sched.After(m.cfg.ResultsDelay, func() {
		m.resultsTimer = nil
		m.bus.Emit(ResultsReady{
			Score:     m.score,
			Color:     m.Color(),
			HighScore: m.highScore,
			IsNewBest: m.isNewBest,
		})
	})
}

// settleHighScore writes the score as the new best iff it beats the stored
// one and returns the stored best afterwards.
func (m *Machine) settleHighScore() (int, bool) {
	if ms, ok := m.store.(MaxStore); ok {
		return ms.RaiseInt(KeyHighScore, m.score, 0)
	}

	best := m.store.GetInt(KeyHighScore, 0)
	if m.score <= best {
		return best, false
	}
	m.store.SetInt(KeyHighScore, m.score)
	return m.score, true
}

// Reset tears down the ended session and returns to Intro. Every pending
// session timer is cancelled and the clock is unfrozen. Only valid when Ended.
func (m *Machine) Reset() {
	if m.phase != PhaseEnded {
		m.ignored("reset")
		return
	}

	m.sched.CancelAll()
	m.resultsTimer = nil
	m.clock.SetFrozen(false)

	m.score = 0
	m.colorIndex = 0
	m.hasEnded = false
	m.isNewBest = false
	m.introRunning = false
	m.cameraPos = m.cfg.CameraStart

	m.setPhase(PhaseIntro)
}

// setPhase records a transition and announces it.
func (m *Machine) setPhase(to Phase) {
	from := m.phase
	m.phase = to
	m.logger.Debug("phase change", "from", from, "to", to)
	m.bus.Emit(PhaseChanged{From: from, To: to})
}

// ignored logs an operation that is not valid in the current phase. These are
// expected races between late input and state changes, not errors.
func (m *Machine) ignored(op string) {
	m.logger.Debug("ignored transition", "op", op, "phase", m.phase)
}

// ColorIndexFor returns the palette index for a score: floor(score/2) mod n.
func ColorIndexFor(score, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	return (score / 2) % paletteSize
}
