// shuttle is a one-button lane runner for the terminal.
//
// Usage:
//
//	shuttle play             - Play a run
//	shuttle serve            - Start SSH server for remote play
//	shuttle scores           - Show the best runs
//	shuttle sound [on|off]   - Show or set the sound preference
//	shuttle config           - Print the effective game config
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.shuttle/shuttle.db)
//	--config <path>        - Use a custom game config YAML
//	--difficulty <preset>  - Difficulty preset: easy, normal, hard, fixed
//
// Each global flag also reads a SHUTTLE_* environment variable.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shuttle-run/internal/config"
	"github.com/vovakirdan/shuttle-run/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shuttle",
	Short: "Shuttle Run - dodge and collect in your terminal",
	Long: `Shuttle Run is a one-button game: your shuttle moves between two lanes
while obstacles and pickups scroll in from the right.

Available commands:
  play     - Play a run
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sound    - Show or set the sound preference
  config   - Print the effective game config

Examples:
  shuttle play
  shuttle play --difficulty hard
  shuttle serve --ssh :2222
  shuttle scores`,
	SilenceUsage: true,
}

func init() {
	e, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		e = config.Env{FPS: 60, Difficulty: string(config.DifficultyNormal)}
	}
	if e.DBPath == "" {
		e.DBPath = storage.DefaultPath
	}

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", e.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", e.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", e.DBPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", e.ConfigPath, "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", e.Difficulty, "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", e.LogPath, "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(soundCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig resolves the config file, applies the difficulty preset and
// validates the result.
func loadGameConfig() (config.ShuttleConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger returns a logger writing to the --log file, or a silent logger.
// The returned close function is never nil.
func newLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "shuttle",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
