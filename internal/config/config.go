// Package config provides YAML-based configuration loading and difficulty
// management for Shuttle Run.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/shuttle-run/internal/clock"
)

// ErrInvalidConfig reports a configuration value the game cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// ShuttleConfig contains all configuration for Shuttle Run.
// Durations are in seconds of scaled game time.
type ShuttleConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Palette    []string         `yaml:"palette"` // lipgloss color strings
	World      WorldConfig      `yaml:"world"`
	End        EndConfig        `yaml:"end"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines the shuttle and the lane it moves along.
type PlayerConfig struct {
	MoveTime    float64 `yaml:"move_time"`    // One full pass
	DestroyTime float64 `yaml:"destroy_time"` // End-of-run shrink
	X           int     `yaml:"x"`            // Fixed column
	LaneTop     int     `yaml:"lane_top"`     // Row at position 0
	LaneBottom  int     `yaml:"lane_bottom"`  // Row at position 1
	Glyph       string  `yaml:"glyph"`
}

// CameraConfig defines the intro camera move.
type CameraConfig struct {
	TimeToMove  float64 `yaml:"time_to_move"`
	StartOffset float64 `yaml:"start_offset"` // Columns, negative is left of the play field
	EndOffset   float64 `yaml:"end_offset"`
}

// SpawnerConfig defines the spawn loop and the entity catalogs.
type SpawnerConfig struct {
	BaseInterval float64      `yaml:"base_interval"`
	Obstacles    []KindConfig `yaml:"obstacles"`
	Pickups      []KindConfig `yaml:"pickups"`
}

// KindConfig describes one spawnable entity kind.
type KindConfig struct {
	Name   string  `yaml:"name"`
	Lane   float64 `yaml:"lane"` // Position along the player's lane, 0 top to 1 bottom
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"` // Named screen color, empty for default
}

// WorldConfig defines how the world moves past the player.
type WorldConfig struct {
	ScrollSpeed float64 `yaml:"scroll_speed"` // Columns per second
}

// EndConfig defines the end-of-run panel timing.
type EndConfig struct {
	ResultsDelay float64 `yaml:"results_delay"`
}

// ObstacleNames returns the obstacle catalog as kind names.
func (c ShuttleConfig) ObstacleNames() []string {
	return kindNames(c.Spawner.Obstacles)
}

// PickupNames returns the pickup catalog as kind names.
func (c ShuttleConfig) PickupNames() []string {
	return kindNames(c.Spawner.Pickups)
}

// Kind looks up a kind by name in both catalogs.
func (c ShuttleConfig) Kind(name string) (KindConfig, bool) {
	for _, k := range c.Spawner.Obstacles {
		if k.Name == name {
			return k, true
		}
	}
	for _, k := range c.Spawner.Pickups {
		if k.Name == name {
			return k, true
		}
	}
	return KindConfig{}, false
}

func kindNames(kinds []KindConfig) []string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Name)
	}
	return names
}

// Validate checks values the session cannot run with. Empty catalogs pass:
// the spawner reports them when the session starts.
func (c ShuttleConfig) Validate() error {
	if c.World.ScrollSpeed <= 0 {
		return fmt.Errorf("%w: world.scroll_speed must be positive, got %v", ErrInvalidConfig, c.World.ScrollSpeed)
	}

	// Checked after conversion: a tiny positive value rounds to zero
	positive := []struct {
		name  string
		value float64
	}{
		{"player.move_time", c.Player.MoveTime},
		{"spawner.base_interval", c.Spawner.BaseInterval},
	}
	for _, p := range positive {
		if clock.Seconds(p.value) <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"player.destroy_time", c.Player.DestroyTime},
		{"camera.time_to_move", c.Camera.TimeToMove},
		{"end.results_delay", c.End.ResultsDelay},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	if c.Player.LaneBottom < c.Player.LaneTop {
		return fmt.Errorf("%w: player.lane_bottom %d is above lane_top %d",
			ErrInvalidConfig, c.Player.LaneBottom, c.Player.LaneTop)
	}

	for _, k := range append(append([]KindConfig(nil), c.Spawner.Obstacles...), c.Spawner.Pickups...) {
		if k.Name == "" {
			return fmt.Errorf("%w: spawn kind without a name", ErrInvalidConfig)
		}
		if k.Width <= 0 || k.Height <= 0 {
			return fmt.Errorf("%w: kind %q has size %dx%d", ErrInvalidConfig, k.Name, k.Width, k.Height)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
