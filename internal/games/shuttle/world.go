package shuttle

import (
	"unicode/utf8"

	"github.com/vovakirdan/shuttle-run/internal/clock"
	"github.com/vovakirdan/shuttle-run/internal/config"
	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/session"
)

// Entity is a spawned obstacle or pickup scrolling toward the player.
type Entity struct {
	ID       session.EntityID
	Kind     string
	Category session.Category
	X        float64 // Left edge in world columns
	Y        int     // Top row
	W, H     int
	Glyph    rune
	Color    core.Color
}

// Rect returns the entity's collision rectangle.
func (e Entity) Rect() core.Rect {
	return core.NewRect(core.Round(e.X), e.Y, e.W, e.H)
}

// World owns the scrolling entities of one session.
type World struct {
	entities []Entity
	nextID   session.EntityID
	width    int
}

// NewWorld creates an empty world whose right edge is at width.
func NewWorld(width int) *World {
	return &World{width: width}
}

// Resize moves the spawn edge.
func (w *World) Resize(width int) {
	w.width = width
}

// Spawn places a kind at the right edge, centered on its lane row.
func (w *World) Spawn(kind config.KindConfig, category session.Category, lane Lane) Entity {
	w.nextID++
	row := lane.Row(kind.Lane)
	e := Entity{
		ID:       w.nextID,
		Kind:     kind.Name,
		Category: category,
		X:        float64(w.width),
		Y:        row - kind.Height/2,
		W:        kind.Width,
		H:        kind.Height,
		Glyph:    glyph(kind.Glyph, '#'),
		Color:    ColorByName(kind.Color),
	}
	w.entities = append(w.entities, e)
	return e
}

// Scroll moves every entity left by dx columns and drops the ones that have
// fully left the screen.
func (w *World) Scroll(dx float64) {
	kept := w.entities[:0]
	for _, e := range w.entities {
		e.X -= dx
		if e.X+float64(e.W) > 0 {
			kept = append(kept, e)
		}
	}
	w.entities = kept
}

// Remove deletes an entity by ID. Returns false if it was not present.
func (w *World) Remove(id session.EntityID) bool {
	for i, e := range w.entities {
		if e.ID == id {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Hits returns the entities overlapping r, in spawn order.
func (w *World) Hits(r core.Rect) []Entity {
	var hits []Entity
	for _, e := range w.entities {
		if r.Intersects(e.Rect()) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Entities returns the live entities.
func (w *World) Entities() []Entity {
	return w.entities
}

// Clear removes every entity.
func (w *World) Clear() {
	w.entities = w.entities[:0]
}

// Lane maps player positions in [0, 1] to screen rows.
type Lane struct {
	Top, Bottom int
}

// Row returns the row for a lane position.
func (l Lane) Row(pos float64) int {
	return core.Round(clock.Lerp(float64(l.Top), float64(l.Bottom), pos))
}

// ColorByName maps configuration color names to screen colors.
func ColorByName(name string) core.Color {
	switch name {
	case "red":
		return core.ColorRed
	case "green":
		return core.ColorGreen
	case "yellow":
		return core.ColorYellow
	case "blue":
		return core.ColorBlue
	case "magenta":
		return core.ColorMagenta
	case "cyan":
		return core.ColorCyan
	case "white":
		return core.ColorWhite
	case "orange":
		return core.ColorOrange
	case "gray", "grey":
		return core.ColorGray
	case "accent":
		return core.ColorAccent
	default:
		return core.ColorDefault
	}
}

func glyph(s string, def rune) rune {
	if r, _ := utf8.DecodeRuneInString(s); r != utf8.RuneError {
		return r
	}
	return def
}
