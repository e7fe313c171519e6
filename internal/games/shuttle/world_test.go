package shuttle

import (
	"testing"

	"github.com/vovakirdan/shuttle-run/internal/config"
	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/session"
)

func TestLaneRow(t *testing.T) {
	l := Lane{Top: 2, Bottom: 12}

	tests := []struct {
		pos      float64
		expected int
	}{
		{0, 2},
		{0.5, 7},
		{1, 12},
		{0.26, 5},
		{1.5, 12},
	}

	for _, tc := range tests {
		if got := l.Row(tc.pos); got != tc.expected {
			t.Errorf("Row(%v) = %d, expected %d", tc.pos, got, tc.expected)
		}
	}
}

func TestWorldSpawnScrollCull(t *testing.T) {
	w := NewWorld(20)
	lane := Lane{Top: 0, Bottom: 10}
	kind := config.KindConfig{Name: "wall", Lane: 0.5, Width: 2, Height: 3, Glyph: "█"}

	e := w.Spawn(kind, session.CategoryObstacle, lane)
	if e.X != 20 || e.Y != 4 || e.Glyph != '█' {
		t.Errorf("Spawn() = %+v, expected X=20 Y=4 glyph █", e)
	}

	w.Scroll(19)
	if len(w.Entities()) != 1 {
		t.Fatal("Entity partly on screen should be kept")
	}
	w.Scroll(2)
	if len(w.Entities()) != 0 {
		t.Error("Entity past the left edge should be culled")
	}
}

func TestWorldHitsAndRemove(t *testing.T) {
	w := NewWorld(10)
	lane := Lane{Top: 0, Bottom: 0}
	a := w.Spawn(config.KindConfig{Name: "a", Width: 1, Height: 1}, session.CategoryPickup, lane)
	b := w.Spawn(config.KindConfig{Name: "b", Width: 1, Height: 1}, session.CategoryObstacle, lane)

	if a.ID == b.ID {
		t.Fatal("Entity IDs should be unique")
	}
	if a.Glyph != '#' {
		t.Errorf("Default glyph = %q, expected '#'", a.Glyph)
	}

	hits := w.Hits(core.NewRect(10, 0, 1, 1))
	if len(hits) != 2 || hits[0].ID != a.ID {
		t.Errorf("Hits() = %v, expected both in spawn order", hits)
	}

	if !w.Remove(a.ID) || w.Remove(a.ID) {
		t.Error("Remove() should succeed once")
	}
	if len(w.Entities()) != 1 {
		t.Errorf("Entities() = %d after remove, expected 1", len(w.Entities()))
	}

	w.Clear()
	if len(w.Entities()) != 0 {
		t.Error("Clear() should empty the world")
	}
}

func TestColorByName(t *testing.T) {
	tests := []struct {
		name     string
		expected core.Color
	}{
		{"gray", core.ColorGray},
		{"grey", core.ColorGray},
		{"orange", core.ColorOrange},
		{"accent", core.ColorAccent},
		{"", core.ColorDefault},
		{"chartreuse", core.ColorDefault},
	}

	for _, tc := range tests {
		if got := ColorByName(tc.name); got != tc.expected {
			t.Errorf("ColorByName(%q) = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}
