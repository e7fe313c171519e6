package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shuttle-run/internal/platform/tui"
	"github.com/vovakirdan/shuttle-run/internal/session"
	"github.com/vovakirdan/shuttle-run/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs.

Examples:
  shuttle scores
  shuttle scores --limit 25
  shuttle scores --tui
  shuttle scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the best score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Shuttle Run")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'shuttle play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-4s  %s\n", "Rank", "Score", "Color", "Best", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-4s  %s\n", "----", "-----", "-----", "----", "----")

	for i, r := range runs {
		best := ""
		if r.NewBest {
			best = "*"
		}
		fmt.Printf("  %-4d  %-8d  %-8s  %-4s  %s\n", i+1, r.Score, r.Color, best, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	// The high score pref survives cleared history
	fmt.Println()
	if best, ok, err := store.Pref(session.KeyHighScore); err == nil && ok {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
