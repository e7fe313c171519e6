package shuttle

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/shuttle-run/internal/clock"
	"github.com/vovakirdan/shuttle-run/internal/config"
	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/session"
)

// scriptRandom returns queued draws, then the lowest value.
type scriptRandom struct {
	draws []int
}

func (r *scriptRandom) UniformInt(lo, hi int) int {
	if len(r.draws) == 0 {
		return lo
	}
	v := r.draws[0]
	r.draws = r.draws[1:]
	return v
}

// testConfig scrolls one column per 100ms tick with a single spawn wave.
func testConfig() config.ShuttleConfig {
	cfg := config.DefaultShuttleConfig()
	cfg.Camera.TimeToMove = 0
	cfg.Camera.StartOffset = 0
	cfg.World.ScrollSpeed = 10
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	cfg.Spawner.BaseInterval = 1000
	cfg.End.ResultsDelay = 1
	cfg.Player.MoveTime = 1
	cfg.Player.DestroyTime = 0.5
	cfg.Spawner.Obstacles = []config.KindConfig{
		{Name: "rock", Lane: 1, Width: 1, Height: 1, Glyph: "#", Color: "gray"},
	}
	cfg.Spawner.Pickups = []config.KindConfig{
		{Name: "star", Lane: 0, Width: 1, Height: 1, Glyph: "*", Color: "yellow"},
	}
	return cfg
}

func newTestGame(t *testing.T, cfg config.ShuttleConfig, draws ...int) *Game {
	t.Helper()
	g := New(cfg, session.Deps{
		Clock:  clock.NewFixed(100 * time.Millisecond),
		Random: &scriptRandom{draws: draws},
		Store:  session.NewMemoryStore(),
	})
	t.Cleanup(g.Close)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10})
	return g
}

func run(g *Game, n int, actions ...core.Action) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		if i == 0 {
			for _, a := range actions {
				in.Set(a)
			}
		}
		res = g.Step(in)
	}
	return res
}

func find(g *Game, kind string) (Entity, bool) {
	for _, e := range g.Entities() {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entity{}, false
}

func TestSpawnAtRightEdge(t *testing.T) {
	g := newTestGame(t, testConfig())

	if g.State().Phase != "Active" {
		t.Fatalf("Phase = %s after Reset, expected Active", g.State().Phase)
	}

	rock, ok := find(g, "rock")
	if !ok {
		t.Fatal("Obstacle was not spawned on session start")
	}
	if rock.X != 80 || rock.Y != 18 || rock.Category != session.CategoryObstacle {
		t.Errorf("rock = %+v, expected X=80 Y=18 obstacle", rock)
	}

	star, ok := find(g, "star")
	if !ok || star.Y != 3 || star.Color != core.ColorYellow {
		t.Errorf("star = %+v, expected on the top lane row in yellow", star)
	}
}

func TestWorldScrolls(t *testing.T) {
	g := newTestGame(t, testConfig())

	run(g, 5)
	rock, _ := find(g, "rock")
	if rock.X < 74.99 || rock.X > 75.01 {
		t.Errorf("rock.X = %v after 5 ticks, expected 75", rock.X)
	}
}

func TestPickupCollision(t *testing.T) {
	g := newTestGame(t, testConfig())

	res := run(g, 75)

	if res.State.Score != 1 {
		t.Errorf("Score = %d, expected 1 after flying into the star", res.State.Score)
	}
	if _, ok := find(g, "star"); ok {
		t.Error("Collected star should be removed from the world")
	}
	if res.State.GameOver {
		t.Error("Rock on the other lane should not end the run")
	}
}

func TestObstacleEndsRun(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.Obstacles[0].Lane = 0
	cfg.Spawner.Pickups[0].Lane = 1
	g := newTestGame(t, cfg)

	res := run(g, 90)
	if !res.State.GameOver {
		t.Fatal("Rock on the player's lane should end the run")
	}
	if res.State.Score != 0 {
		t.Errorf("Score = %d, expected 0", res.State.Score)
	}
	if g.explosion <= 0 && !g.rt.Player.Gone() {
		t.Error("Expected an explosion after the hit")
	}
}

func TestMoveAvoidsObstacle(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.Obstacles[0].Lane = 0
	cfg.Spawner.Pickups[0].Lane = 1
	g := newTestGame(t, cfg)

	// Pass to the bottom lane well before the rock arrives and pick up the star there
	res := run(g, 90, core.ActionMove)
	if res.State.GameOver {
		t.Fatal("Shuttle on the bottom lane should not hit the top rock")
	}
	if res.State.Score != 1 {
		t.Errorf("Score = %d, expected the bottom star to be collected", res.State.Score)
	}
}

func TestResultsAndRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.BaseInterval = 2
	cfg.Spawner.Obstacles = append(cfg.Spawner.Obstacles,
		config.KindConfig{Name: "boulder", Lane: 0, Width: 1, Height: 1, Glyph: "O"})

	// First wave: far rock and a star on the player's lane. Second wave, 2s
	// later: a boulder on the player's lane and no pickup.
	g := newTestGame(t, cfg, 0, 0, 0, 2, 1, 1, 2)

	var saved []int
	g.OnResults(func(r session.ResultsReady, colorIndex int) {
		saved = append(saved, r.Score)
	})

	run(g, 90)
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected the star before the crash", g.State().Score)
	}
	if !g.State().GameOver {
		t.Fatal("Expected the run to end")
	}

	// Restart is ignored until the results panel shows
	run(g, 1, core.ActionRestart)
	if !g.State().GameOver {
		t.Fatal("Restart before results should be ignored")
	}

	run(g, 10)
	st := g.State()
	if !st.Results || !st.NewBest || st.HighScore != st.Score {
		t.Errorf("State = %+v, expected results with a new best", st)
	}
	if len(saved) != 1 {
		t.Fatalf("OnResults called %d times, expected 1", len(saved))
	}

	run(g, 1, core.ActionRestart)
	st = g.State()
	if st.GameOver || st.Results || st.Score != 0 {
		t.Errorf("State after restart = %+v, expected a fresh run", st)
	}
	if len(g.Entities()) != 2 {
		t.Errorf("Expected only the new run's first wave, got %d entities", len(g.Entities()))
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(t, testConfig())
	run(g, 3)

	run(g, 1, core.ActionPause)
	rock, _ := find(g, "rock")
	before := rock.X

	res := run(g, 20)
	if !res.State.Paused {
		t.Fatal("Expected paused state")
	}
	rock, _ = find(g, "rock")
	if rock.X != before {
		t.Errorf("rock moved while paused: %v -> %v", before, rock.X)
	}

	run(g, 1, core.ActionPause)
	if g.State().Paused {
		t.Error("Second pause action should resume")
	}
}

func TestSoundToggleAndCues(t *testing.T) {
	g := newTestGame(t, testConfig())

	run(g, 1, core.ActionMove)
	cues := g.TakeCues()
	if len(cues) != 1 || cues[0] != session.CueMove {
		t.Errorf("TakeCues() = %v, expected [move]", cues)
	}
	if len(g.TakeCues()) != 0 {
		t.Error("TakeCues() should clear the queue")
	}

	res := run(g, 1, core.ActionToggleSound)
	if res.State.Sound {
		t.Error("Sound should be off after toggling")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
	head := screen.GetCell(13, 3)
	if head.Rune != '▶' || head.Color != core.ColorAccent {
		t.Errorf("Shuttle head = %+v, expected accent '▶' at (13, 3)", head)
	}
	if screen.GetCell(12, 10).Rune != LaneChar {
		t.Errorf("Lane guide missing at (12, 10), got %q", screen.GetCell(12, 10).Rune)
	}

	g.Step(func() core.InputFrame { in := core.NewInputFrame(); in.Set(core.ActionPause); return in }())
	g.Render(screen)
	if !strings.Contains(screenText(screen), "PAUSED") {
		t.Error("Paused screen should show PAUSED")
	}
}

func TestRenderResults(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.Obstacles[0].Lane = 0
	cfg.Spawner.Pickups[0].Lane = 1
	g := newTestGame(t, cfg)
	screen := core.NewScreen(80, 24)

	run(g, 90)
	g.Render(screen)

	if text := screenText(screen); !strings.Contains(text, "SCORE 0  BEST 0") {
		t.Errorf("Results panel missing:\n%s", text)
	}
}

func screenText(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
