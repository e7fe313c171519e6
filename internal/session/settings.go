package session

// Settings holds player preferences that outlive a session. The sound flag is
// read from the store once at construction and written back on every toggle.
type Settings struct {
	store PersistentStore
	sound bool
}

// NewSettings loads settings from the store. Sound defaults to on.
func NewSettings(store PersistentStore) *Settings {
	return &Settings{
		store: store,
		sound: store.GetInt(KeySoundEnabled, 1) == 1,
	}
}

// SoundEnabled reports whether sound cues should be emitted.
func (s *Settings) SoundEnabled() bool {
	return s.sound
}

// ToggleSound flips the sound flag, persists it and returns the new value.
func (s *Settings) ToggleSound() bool {
	s.SetSound(!s.sound)
	return s.sound
}

// SetSound sets and persists the sound flag.
func (s *Settings) SetSound(enabled bool) {
	s.sound = enabled
	v := 0
	if enabled {
		v = 1
	}
	s.store.SetInt(KeySoundEnabled, v)
}
