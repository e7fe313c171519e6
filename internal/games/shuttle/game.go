// Package shuttle implements the Shuttle Run host world. The player's shuttle
// sits at a fixed column and shuttles between two lane rows on each move;
// obstacles and pickups requested by the session spawner scroll in from the
// right. The world turns overlaps into collision reports and draws itself to
// a core.Screen.
package shuttle

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shuttle-run/internal/config"
	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/session"
)

// Timings of host-side effects, in seconds of game time.
const (
	ExplosionTime  = 0.6
	ScorePulseTime = 0.3
	CueDisplayTime = 0.5
)

// Player sprite size.
const (
	PlayerWidth  = 2
	PlayerHeight = 1
)

// Game hosts one Shuttle Run session in a terminal-sized world.
type Game struct {
	cfg        config.ShuttleConfig
	rt         *session.Runtime
	sub        session.Subscription
	difficulty *config.DifficultyManager
	logger     *log.Logger

	world  *World
	lane   Lane
	config core.RuntimeConfig

	elapsed    float64 // Game seconds since SessionStarted
	explosion  float64 // Remaining explosion display time
	explodedAt [2]int
	scorePulse float64

	cues     []session.SoundCue
	lastCue  session.SoundCue
	cueShown float64

	highScore int
	newBest   bool
	results   *session.ResultsReady
	onResults func(session.ResultsReady, int)
}

// New creates a game and its session runtime. The session does not start
// until Reset is called.
func New(cfg config.ShuttleConfig, deps session.Deps) *Game {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:        cfg,
		rt:         session.NewRuntime(cfg.Session(), deps),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     deps.Logger.With("component", "world"),
		world:      NewWorld(core.DefaultConfig().ScreenW),
	}
	g.sub = g.rt.Subscribe(g.handle)
	return g
}

// OnResults registers a callback run when the end panel becomes ready. It
// receives the results and the final palette index.
func (g *Game) OnResults(fn func(session.ResultsReady, int)) {
	g.onResults = fn
}

// Reset sizes the world and starts a session. On an ended session it starts
// the next run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.config.TickRate = cfg.TickRate
	g.config.Seed = cfg.Seed

	switch g.rt.Phase() {
	case session.PhaseEnded:
		g.rt.RequestReset()
	case session.PhaseIntro:
		g.rt.Begin()
	}
}

// Resize adapts the world to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.config.ScreenW = w
	g.config.ScreenH = h
	g.world.Resize(w)

	top := core.Clamp(g.cfg.Player.LaneTop, 2, core.Max(2, h-3))
	bottom := core.Clamp(g.cfg.Player.LaneBottom, top, core.Max(top, h-3))
	g.lane = Lane{Top: top, Bottom: bottom}
}

// Close detaches the world from the session and stops all session timers.
func (g *Game) Close() {
	g.rt.Unsubscribe(g.sub)
	g.rt.Close()
}

// Step applies one frame of input and advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.rt.TogglePause()
	}
	if in.Has(core.ActionToggleSound) {
		g.rt.ToggleSound()
	}
	if in.Has(core.ActionRestart) && g.results != nil {
		g.rt.RequestReset()
	}
	if in.Has(core.ActionMove) {
		g.rt.RequestMove()
	}

	dt := g.rt.Step()
	g.update(dt)

	return core.StepResult{State: g.State()}
}

// update advances host-side effects and the scrolling world by dt.
func (g *Game) update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	secs := dt.Seconds()

	g.explosion = decay(g.explosion, secs)
	g.scorePulse = decay(g.scorePulse, secs)
	g.cueShown = decay(g.cueShown, secs)

	if g.rt.Phase() != session.PhaseActive {
		return
	}

	g.elapsed += secs
	speed := g.difficulty.Speed(g.cfg.World.ScrollSpeed, g.rt.Machine.Score(), g.elapsed)
	g.world.Scroll(speed * secs)

	g.checkCollisions()
}

// checkCollisions reports every entity under the player. The hit list is
// taken first because pickup handlers remove entities from the world.
func (g *Game) checkCollisions() {
	if g.rt.Player.Removed() {
		return
	}

	for _, e := range g.world.Hits(g.PlayerRect()) {
		kind := session.CollisionScorePickup
		if e.Category == session.CategoryObstacle {
			kind = session.CollisionObstacle
		}
		g.rt.ReportCollision(kind, e.ID)
	}
}

// PlayerRect returns the shuttle's collision rectangle in world coordinates.
func (g *Game) PlayerRect() core.Rect {
	row := g.lane.Row(g.rt.Player.Position())
	return core.NewRect(g.cfg.Player.X, row, PlayerWidth, PlayerHeight)
}

func (g *Game) handle(e session.Event) {
	switch ev := e.(type) {
	case session.SpawnRequested:
		g.spawn(ev.Request)

	case session.PickupCollected:
		g.world.Remove(ev.Entity)

	case session.ScoreChanged:
		g.scorePulse = ScorePulseTime

	case session.PlayerExploded:
		r := g.PlayerRect()
		g.explosion = ExplosionTime
		g.explodedAt = [2]int{r.X, r.Y}

	case session.SoundPlayed:
		g.cues = append(g.cues, ev.Cue)
		g.lastCue = ev.Cue
		g.cueShown = CueDisplayTime

	case session.HighScoreResult:
		g.highScore = ev.Value
		g.newBest = ev.IsNewBest

	case session.ResultsReady:
		g.results = &ev
		g.logger.Info("run finished", "score", ev.Score, "best", ev.HighScore, "new_best", ev.IsNewBest, "ticks", g.rt.Ticks())
		if g.onResults != nil {
			g.onResults(ev, g.rt.Machine.ColorIndex())
		}

	case session.PhaseChanged:
		g.logger.Debug("phase changed", "from", ev.From, "to", ev.To)
		if ev.To == session.PhaseIntro {
			g.clearRun()
		}
	}
}

func (g *Game) spawn(req session.SpawnRequest) {
	kind, ok := g.cfg.Kind(req.Kind)
	if !ok {
		g.logger.Warn("unknown spawn kind", "kind", req.Kind)
		return
	}
	g.world.Spawn(kind, req.Category, g.lane)
}

// clearRun drops everything left over from the previous run.
func (g *Game) clearRun() {
	g.world.Clear()
	g.elapsed = 0
	g.explosion = 0
	g.scorePulse = 0
	g.results = nil
	g.newBest = false
}

// TakeCues returns and clears the sound cues emitted since the last call.
func (g *Game) TakeCues() []session.SoundCue {
	cues := g.cues
	g.cues = nil
	return cues
}

// Entities returns the live world entities.
func (g *Game) Entities() []Entity {
	return g.world.Entities()
}

// AccentColor returns the current palette entry.
func (g *Game) AccentColor() string {
	return string(g.rt.Machine.Color())
}

// State returns the host-facing game state.
func (g *Game) State() core.GameState {
	phase := g.rt.Phase()
	return core.GameState{
		Score:     g.rt.Machine.Score(),
		HighScore: g.highScore,
		Phase:     phase.String(),
		GameOver:  phase == session.PhaseEnded,
		Paused:    phase == session.PhasePaused,
		NewBest:   g.newBest,
		Results:   g.results != nil,
		Sound:     g.rt.Settings.SoundEnabled(),
	}
}

func decay(v, secs float64) float64 {
	v -= secs
	if v < 0 {
		return 0
	}
	return v
}
