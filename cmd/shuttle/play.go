package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shuttle-run/internal/clock"
	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/games/shuttle"
	"github.com/vovakirdan/shuttle-run/internal/platform/tui"
	"github.com/vovakirdan/shuttle-run/internal/session"
	"github.com/vovakirdan/shuttle-run/internal/storage"
)

var flagClock string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a Shuttle Run session.

Controls:
  Space/Up   - Move to the other lane
  P/Esc      - Pause
  R          - Restart (once results are shown)
  M/1        - Toggle sound
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Longer spawn interval, slower scroll
  normal - Config values as written
  hard   - Shorter spawn interval, faster scroll
  fixed  - No speed ramp, config values as written

Clock options:
  wall   - Game time follows real time (default)
  fixed  - Every tick advances by exactly 1/fps

Examples:
  shuttle play
  shuttle play --difficulty easy
  shuttle play --seed 42 --clock fixed
  shuttle play --config ./my-shuttle.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagClock, "clock", "wall", "Clock source: wall, fixed")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	var clk clock.Clock
	switch flagClock {
	case "wall":
		clk = clock.NewWall()
	case "fixed":
		clk = clock.NewFixedRate(flagFPS)
	default:
		return fmt.Errorf("unknown clock %q (valid: wall, fixed)", flagClock)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	// Open storage; the game still works without it
	var prefs session.PersistentStore = session.NewMemoryStore()
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
		prefs = storage.NewPrefs(store, logger)
	}

	game := shuttle.New(gameCfg, session.Deps{
		Clock:  clk,
		Random: session.NewSeededRandom(seed),
		Store:  prefs,
		Logger: logger,
	})
	defer game.Close()
	tui.RecordRuns(game, store, logger)

	logger.Info("starting run", "seed", seed, "difficulty", flagDifficulty, "clock", flagClock)
	if err := tui.Run(game, cfg, logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
