package core

// RuntimeConfig contains the host parameters a game is reset with.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means seed from the current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the host-facing summary of a running game.
type GameState struct {
	Score     int    // Current score
	HighScore int    // Best score, known once the run has ended
	Phase     string // Session phase name
	GameOver  bool   // Whether the run has ended
	Paused    bool   // Whether the game clock is frozen
	NewBest   bool   // Whether the ended run set a new best
	Results   bool   // Whether the end panel is showing
	Sound     bool   // Whether sound cues are enabled
}

// StepResult is returned by a game after each host tick.
type StepResult struct {
	State GameState
}
