package world

import (
	"fmt"

	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
)

// Octant maps a local offset in the canonical slice (x >= 0, y >= 0, y >= x)
// to a world offset for octant i. It panics if i is outside [0, 8).
func Octant(i, x, y int) geom.Point {
	switch i {
	case 0:
		return geom.Pt(x, y)
	case 1:
		return geom.Pt(y, x)
	case 2:
		return geom.Pt(y, -x)
	case 3:
		return geom.Pt(x, -y)
	case 4:
		return geom.Pt(-x, -y)
	case 5:
		return geom.Pt(-y, -x)
	case 6:
		return geom.Pt(-y, x)
	case 7:
		return geom.Pt(-x, y)
	default:
		panic(fmt.Sprintf("world: octant %d out of range", i))
	}
}

// shadow is an opaque cell at local offset (x, y) within one octant.
type shadow struct {
	x, y int
}

// covers reports whether the cell at local (x, y) lies behind s. The shadow
// projects the blocker's cell edges onto later rows using the plain x/y ratio.
func (s shadow) covers(x, y int) bool {
	if y <= s.y {
		return false
	}
	if s.x == 0 && x == 0 {
		return true
	}
	left := (float64(s.x) - 0.5) / (float64(s.y) + 0.5) * float64(y)
	right := (float64(s.x) + 0.5) / (float64(s.y) - 0.5) * float64(y)
	return float64(x) > left && float64(x) < right
}

// UpdateVisibility recomputes what the player sees this turn. Visible things
// fade to fog, monsters are forgotten, then everything lit within radius
// (Manhattan distance) of the player is made visible again. Shadows use
// true x/y ratios, so their edges are not radial under the Manhattan cutoff.
func UpdateVisibility(m *Map, radius int) {
	for _, t := range m.Things() {
		switch {
		case t.Kind == entity.KindMonster:
			t.Visibility = entity.VisibilityNone
		case t.Visibility == entity.VisibilityVisible:
			t.Visibility = entity.VisibilityFog
		}
	}
	if m.Player == nil {
		return
	}
	m.Player.Visibility = entity.VisibilityVisible
	eye := m.Player.Pos

	for oct := 0; oct < 8; oct++ {
		var shadows []shadow
		for y := 1; y <= radius; y++ {
			for x := 0; x <= y; x++ {
				p := eye.Add(Octant(oct, x, y))
				if !m.InBounds(p) || shadowed(shadows, x, y) {
					continue
				}
				if m.IsOpaque(p) {
					shadows = append(shadows, shadow{x, y})
				}
				if x+y <= radius {
					light(m, p)
				}
			}
		}
	}

	light(m, eye)
}

func shadowed(shadows []shadow, x, y int) bool {
	for _, s := range shadows {
		if s.covers(x, y) {
			return true
		}
	}
	return false
}

func light(m *Map, p geom.Point) {
	for _, t := range m.At(p) {
		t.Visibility = entity.VisibilityVisible
	}
}

// VisibleCount returns how many things are currently visible.
func VisibleCount(m *Map) int {
	n := 0
	for _, t := range m.Things() {
		if t.Visibility == entity.VisibilityVisible {
			n++
		}
	}
	return n
}
