package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/shuttle-run/internal/session"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultShuttleConfig()) {
		t.Errorf("Embedded defaults differ from DefaultShuttleConfig():\n%+v\n%+v", cfg, DefaultShuttleConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".shuttle", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	user := "world:\n  scroll_speed: 7\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(user), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.World.ScrollSpeed != 7 {
		t.Errorf("User config not used, scroll_speed = %v", cfg.World.ScrollSpeed)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("world:\n  scroll_speed: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load(custom) error = %v", err)
	}
	if cfg.World.ScrollSpeed != 9 {
		t.Errorf("Custom path should win, scroll_speed = %v", cfg.World.ScrollSpeed)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Load() of malformed YAML = %v, expected parse error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ShuttleConfig)
		valid  bool
	}{
		{"defaults", func(*ShuttleConfig) {}, true},
		{"zero move time", func(c *ShuttleConfig) { c.Player.MoveTime = 0 }, false},
		{"negative interval", func(c *ShuttleConfig) { c.Spawner.BaseInterval = -1 }, false},
		{"zero scroll speed", func(c *ShuttleConfig) { c.World.ScrollSpeed = 0 }, false},
		{"interval rounds to zero", func(c *ShuttleConfig) { c.Spawner.BaseInterval = 1e-10 }, false},
		{"move time rounds to zero", func(c *ShuttleConfig) { c.Player.MoveTime = 1e-12 }, false},
		{"one microsecond interval", func(c *ShuttleConfig) { c.Spawner.BaseInterval = 1e-6 }, true},
		{"negative results delay", func(c *ShuttleConfig) { c.End.ResultsDelay = -0.5 }, false},
		{"zero camera time", func(c *ShuttleConfig) { c.Camera.TimeToMove = 0 }, true},
		{"empty palette", func(c *ShuttleConfig) { c.Palette = nil }, false},
		{"inverted lane", func(c *ShuttleConfig) { c.Player.LaneTop, c.Player.LaneBottom = 10, 2 }, false},
		{"unnamed kind", func(c *ShuttleConfig) { c.Spawner.Pickups[0].Name = "" }, false},
		{"zero width kind", func(c *ShuttleConfig) { c.Spawner.Obstacles[0].Width = 0 }, false},
		{"empty catalogs", func(c *ShuttleConfig) {
			c.Spawner.Obstacles = nil
			c.Spawner.Pickups = nil
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultShuttleConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultShuttleConfig()
	base.Spawner.BaseInterval = 2
	base.World.ScrollSpeed = 20

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Spawner.BaseInterval != 2.5 || easy.World.ScrollSpeed != 16 {
		t.Errorf("Easy: interval=%v speed=%v, expected 2.5 and 16", easy.Spawner.BaseInterval, easy.World.ScrollSpeed)
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Spawner.BaseInterval != 1.5 || hard.World.ScrollSpeed != 25 {
		t.Errorf("Hard: interval=%v speed=%v, expected 1.5 and 25", hard.Spawner.BaseInterval, hard.World.ScrollSpeed)
	}
	if hard.Difficulty.InitialLevel != 0.7 {
		t.Errorf("Hard initial level = %v, expected 0.7", hard.Difficulty.InitialLevel)
	}

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("Fixed preset should disable progression")
	}
	if fixed.Spawner.BaseInterval != 2 {
		t.Error("Fixed preset should keep the configured interval")
	}
}

func TestSessionConversion(t *testing.T) {
	cfg := DefaultShuttleConfig()
	cfg.Player.MoveTime = 0.5
	cfg.Spawner.BaseInterval = 2
	cfg.End.ResultsDelay = 1

	s := cfg.Session()

	if s.Player.MoveTime != 500*time.Millisecond {
		t.Errorf("MoveTime = %v, expected 500ms", s.Player.MoveTime)
	}
	if s.Spawner.BaseInterval != 2*time.Second {
		t.Errorf("BaseInterval = %v, expected 2s", s.Spawner.BaseInterval)
	}
	if s.Machine.ResultsDelay != time.Second {
		t.Errorf("ResultsDelay = %v, expected 1s", s.Machine.ResultsDelay)
	}
	if !reflect.DeepEqual(s.Spawner.Obstacles, []string{"asteroid", "debris_top", "debris_bottom"}) {
		t.Errorf("Obstacles = %v", s.Spawner.Obstacles)
	}
	if !reflect.DeepEqual(s.Spawner.Pickups, []string{"star", "crystal"}) {
		t.Errorf("Pickups = %v", s.Spawner.Pickups)
	}
	if len(s.Machine.Palette) != 5 || s.Machine.Palette[0] != session.Color("#FF5F87") {
		t.Errorf("Palette = %v", s.Machine.Palette)
	}
}

func TestKindLookup(t *testing.T) {
	cfg := DefaultShuttleConfig()

	k, ok := cfg.Kind("crystal")
	if !ok || k.Glyph != "◆" {
		t.Errorf("Kind(crystal) = %+v, %v", k, ok)
	}
	if _, ok := cfg.Kind("nope"); ok {
		t.Error("Kind() of an unknown name should fail")
	}
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := DefaultShuttleConfig()
	cfg.World.ScrollSpeed = 11

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Loaded config differs from the marshalled one")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SHUTTLE_DB", "/tmp/s.db")
	t.Setenv("SHUTTLE_SEED", "42")

	e, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if e.DBPath != "/tmp/s.db" || e.Seed != 42 {
		t.Errorf("ParseEnv() = %+v", e)
	}
	if e.FPS != 60 || e.Difficulty != "normal" {
		t.Errorf("Defaults not applied: fps=%d difficulty=%q", e.FPS, e.Difficulty)
	}

	t.Setenv("SHUTTLE_FPS", "fast")
	if _, err := ParseEnv(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("ParseEnv() with bad FPS = %v, expected parse env error", err)
	}
}
