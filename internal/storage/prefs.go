package storage

import (
	"github.com/charmbracelet/log"
)

// Prefs exposes the prefs table as the session's persistent store. Read and
// write failures are logged and the game carries on: a failed read yields the
// default, a failed write is dropped.
type Prefs struct {
	store  *Store
	logger *log.Logger
}

// NewPrefs wraps a store.
func NewPrefs(store *Store, logger *log.Logger) *Prefs {
	return &Prefs{store: store, logger: logger}
}

// GetInt returns the stored value for key, or def if it is absent or unreadable.
func (p *Prefs) GetInt(key string, def int) int {
	v, ok, err := p.store.Pref(key)
	if err != nil {
		p.logger.Warn("pref read failed, using default", "key", key, "default", def, "error", err)
		return def
	}
	if !ok {
		return def
	}
	return v
}

// RaiseInt implements session.MaxStore. On failure the value counts as not
// raised and def is reported.
func (p *Prefs) RaiseInt(key string, value, def int) (int, bool) {
	stored, raised, err := p.store.RaisePref(key, value, def)
	if err != nil {
		p.logger.Warn("pref raise failed", "key", key, "value", value, "error", err)
		return def, false
	}
	return stored, raised
}

// SetInt stores value under key.
func (p *Prefs) SetInt(key string, value int) {
	if err := p.store.SetPref(key, value); err != nil {
		p.logger.Warn("pref write failed", "key", key, "value", value, "error", err)
	}
}
