package config

import (
	"github.com/vovakirdan/shuttle-run/internal/clock"
	"github.com/vovakirdan/shuttle-run/internal/session"
)

// Session converts the configuration into session component settings.
func (c ShuttleConfig) Session() session.Config {
	palette := make([]session.Color, 0, len(c.Palette))
	for _, p := range c.Palette {
		palette = append(palette, session.Color(p))
	}

	return session.Config{
		Machine: session.MachineConfig{
			Palette:        palette,
			CameraStart:    c.Camera.StartOffset,
			CameraEnd:      c.Camera.EndOffset,
			CameraMoveTime: clock.Seconds(c.Camera.TimeToMove),
			ResultsDelay:   clock.Seconds(c.End.ResultsDelay),
		},
		Player: session.PlayerConfig{
			MoveTime:    clock.Seconds(c.Player.MoveTime),
			DestroyTime: clock.Seconds(c.Player.DestroyTime),
		},
		Spawner: session.SpawnerConfig{
			BaseInterval: clock.Seconds(c.Spawner.BaseInterval),
			Obstacles:    c.ObstacleNames(),
			Pickups:      c.PickupNames(),
		},
	}
}
