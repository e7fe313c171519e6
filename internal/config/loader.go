package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the configuration file name looked up in the search path.
const ConfigFile = "shuttle.yaml"

// Load loads the Shuttle Run configuration.
// Search order: customPath -> ~/.shuttle/configs/shuttle.yaml ->
// ./configs/shuttle.yaml -> embedded default -> hard-coded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or malformed.
func Load(customPath string) (ShuttleConfig, error) {
	var cfg ShuttleConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		cfg = ShuttleConfig{}
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg = ShuttleConfig{}
	if err := yaml.Unmarshal(defaultShuttleYAML, &cfg); err != nil {
		return DefaultShuttleConfig(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shuttle", "configs", filename)
}

// ApplyPreset adjusts the spawn pace, the scroll speed and the difficulty
// ramp for a preset. Fixed keeps the configured values and disables the ramp.
func ApplyPreset(cfg *ShuttleConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Spawner.BaseInterval *= 1.25
		cfg.World.ScrollSpeed *= 0.8
	case DifficultyHard:
		cfg.Spawner.BaseInterval *= 0.75
		cfg.World.ScrollSpeed *= 1.25
	}
}

// Marshal renders a configuration as YAML.
func Marshal(cfg ShuttleConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
