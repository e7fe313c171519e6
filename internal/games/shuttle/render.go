package shuttle

import (
	"fmt"

	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/session"
)

// Visual characters for rendering
const (
	LaneChar      = '┊'
	BorderChar    = '═'
	ExplosionChar = '*'
	ShrunkChar    = '·'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	offset := core.Round(g.rt.Machine.CameraOffset())

	// Play field borders
	dst.DrawHLine(0, g.lane.Top-1, dst.Width(), BorderChar, core.ColorGray)
	dst.DrawHLine(0, g.lane.Bottom+PlayerHeight, dst.Width(), BorderChar, core.ColorGray)

	// Lane guide at the shuttle column
	for y := g.lane.Top; y <= g.lane.Bottom; y++ {
		dst.SetColored(g.cfg.Player.X+offset, y, LaneChar, core.ColorGray)
	}

	for _, e := range g.world.Entities() {
		r := e.Rect().Translate(offset, 0)
		dst.FillRect(r, e.Glyph, e.Color)
	}

	g.drawPlayer(dst, offset)

	if g.explosion > 0 {
		g.drawExplosion(dst, offset)
	}

	g.drawHUD(dst)

	switch {
	case g.results != nil:
		g.drawResults(dst)
	case g.rt.Phase() == session.PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.rt.Phase() == session.PhaseIntro:
		dst.DrawTextCenteredColored(g.lane.Top+(g.lane.Bottom-g.lane.Top)/2, "GET READY", core.ColorAccent)
	}
}

// drawPlayer draws the shuttle, shrinking it as its scale drops.
func (g *Game) drawPlayer(dst *core.Screen, offset int) {
	p := g.rt.Player
	if p.Gone() {
		return
	}

	r := g.PlayerRect().Translate(offset, 0)
	switch scale := p.Scale(); {
	case scale >= 0.5:
		head := glyph(g.cfg.Player.Glyph, '▶')
		dst.SetColored(r.X, r.Y, '=', core.ColorAccent)
		dst.SetColored(r.X+1, r.Y, head, core.ColorAccent)
	case scale > 0:
		dst.SetColored(r.X+1, r.Y, ShrunkChar, core.ColorAccent)
	}
}

// drawExplosion draws a burst that contracts as it fades.
func (g *Game) drawExplosion(dst *core.Screen, offset int) {
	x, y := g.explodedAt[0]+offset, g.explodedAt[1]
	radius := 1
	if g.explosion > ExplosionTime/2 {
		radius = 2
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius * 2; dx <= radius*2; dx += 2 {
			if (dx+dy)%2 == 0 {
				dst.SetColored(x+dx, y+dy, ExplosionChar, core.ColorOrange)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	scoreColor := core.ColorAccent
	if g.scorePulse > 0 {
		scoreColor = core.ColorWhite
	}
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.rt.Machine.Score()), scoreColor)

	sound := "♪ off"
	if g.rt.Settings.SoundEnabled() {
		sound = "♪ on"
		if g.cueShown > 0 {
			sound = "♪ " + g.lastCue.String()
		}
	}
	dst.DrawTextColored(dst.Width()-len([]rune(sound))-2, 0, sound, core.ColorGray)
}

// drawResults shows the end panel.
func (g *Game) drawResults(dst *core.Screen) {
	best := fmt.Sprintf("BEST %d", g.results.HighScore)
	if g.results.IsNewBest {
		best = "NEW BEST"
	}
	drawCenteredMessage(dst,
		fmt.Sprintf("SCORE %d  %s", g.results.Score, best),
		"Press R to restart  |  Q to quit")
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))

	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorAccent)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
