package config

import (
	_ "embed"
)

//go:embed defaults/shuttle.yaml
var defaultShuttleYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultShuttleYAML
}

// DefaultShuttleConfig returns the hard-coded configuration used when the
// embedded document cannot be parsed. It matches defaults/shuttle.yaml.
func DefaultShuttleConfig() ShuttleConfig {
	return ShuttleConfig{
		Player: PlayerConfig{
			MoveTime:    0.6,
			DestroyTime: 0.5,
			X:           12,
			LaneTop:     3,
			LaneBottom:  18,
			Glyph:       "▶",
		},
		Camera: CameraConfig{
			TimeToMove:  1.0,
			StartOffset: -20,
			EndOffset:   0,
		},
		Spawner: SpawnerConfig{
			BaseInterval: 1.2,
			Obstacles: []KindConfig{
				{Name: "asteroid", Lane: 0.5, Width: 3, Height: 2, Glyph: "▓", Color: "gray"},
				{Name: "debris_top", Lane: 0.1, Width: 2, Height: 3, Glyph: "█", Color: "orange"},
				{Name: "debris_bottom", Lane: 0.9, Width: 2, Height: 3, Glyph: "█", Color: "orange"},
			},
			Pickups: []KindConfig{
				{Name: "star", Lane: 0.3, Width: 1, Height: 1, Glyph: "★", Color: "yellow"},
				{Name: "crystal", Lane: 0.7, Width: 1, Height: 1, Glyph: "◆", Color: "cyan"},
			},
		},
		Palette: []string{"#FF5F87", "#5FD7FF", "#AFFF5F", "#FFAF00", "#AF87FF"},
		World: WorldConfig{
			ScrollSpeed: 24,
		},
		End: EndConfig{
			ResultsDelay: 1.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
