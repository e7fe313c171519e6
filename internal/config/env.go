package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings that may come from the environment. Command-line
// flags take precedence over these.
type Env struct {
	DBPath     string `env:"SHUTTLE_DB"`
	ConfigPath string `env:"SHUTTLE_CONFIG"`
	FPS        int    `env:"SHUTTLE_FPS" envDefault:"60"`
	Seed       int64  `env:"SHUTTLE_SEED"`
	Difficulty string `env:"SHUTTLE_DIFFICULTY" envDefault:"normal"`
	LogPath    string `env:"SHUTTLE_LOG"`
}

// ParseEnv loads the environment settings.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
