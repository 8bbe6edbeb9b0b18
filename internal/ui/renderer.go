package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/gamedata"
	"github.com/samdwyer/undercroft/internal/geom"
	"github.com/samdwyer/undercroft/internal/world"
)

// fogStyle dims everything remembered but not currently lit.
var fogStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the map one cell per tile and a status line below it.
// Things never seen are skipped and remembered things are drawn dim.
func (r *Renderer) Render(m *world.Map, status string) {
	r.screen.Clear()

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := topmost(m.At(geom.Pt(x, y)))
			if t == nil {
				continue
			}
			style := thingStyle(t)
			if t.Visibility == entity.VisibilityFog {
				style = fogStyle
			}
			r.screen.SetContent(x, y, t.Symbol(), style)
		}
	}

	r.screen.DrawText(0, m.Height, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.Show()
}

// topmost picks the thing to draw from a cell. Map.At lists fixture, tile,
// container, monster, player; the later ones stand on top of the earlier
// ones, except that fixtures cover the floor they sit on.
func topmost(things []*entity.Thing) *entity.Thing {
	var top *entity.Thing
	for _, t := range things {
		if t.Visibility == entity.VisibilityNone {
			continue
		}
		if top != nil && top.Kind.IsFixture() && t.Kind.IsTile() {
			continue
		}
		top = t
	}
	return top
}

// thingStyle returns the lit style for a thing.
func thingStyle(t *entity.Thing) tcell.Style {
	switch t.Kind {
	case entity.KindWall:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case entity.KindFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case entity.KindDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	case entity.KindStairsUp, entity.KindStairsDown:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case entity.KindPlayer:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case entity.KindMonster:
		if t.Monster != nil {
			return tcell.StyleDefault.Foreground(gamedata.ColorOr(t.Monster.Color, tcell.ColorRed))
		}
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case entity.KindContainer:
		if t.Container != nil {
			return tcell.StyleDefault.Foreground(gamedata.ColorOr(t.Container.Color, tcell.ColorOlive))
		}
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	default:
		return tcell.StyleDefault
	}
}
