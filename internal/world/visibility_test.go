package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
)

func tileAt(t *testing.T, m *Map, p geom.Point) *entity.Thing {
	t.Helper()
	tile, ok := m.Tiles.At(p)
	require.True(t, ok, "no tile at %v", p)
	return tile
}

func TestVisibilityOpenFloorUsesManhattanRadius(t *testing.T) {
	eye := geom.Pt(5, 5)
	m := openMap(11, 11, eye)

	UpdateVisibility(m, 3)

	for _, p := range m.Bounds().Scan() {
		want := entity.VisibilityNone
		if p.Manhattan(eye) <= 3 {
			want = entity.VisibilityVisible
		}
		assert.Equal(t, want, tileAt(t, m, p).Visibility, "tile %v", p)
	}
	assert.Equal(t, entity.VisibilityVisible, m.Player.Visibility)
}

func TestVisibilityWallCastsShadow(t *testing.T) {
	eye := geom.Pt(5, 5)
	m := openMap(11, 11, eye)
	wallPos := geom.Pt(5, 4)
	m.Tiles.Delete(tileAt(t, m, wallPos))
	wall := entity.Wall(wallPos)
	m.Place(wall, wallPos)

	UpdateVisibility(m, 4)

	assert.Equal(t, entity.VisibilityVisible, wall.Visibility, "the wall itself is seen")
	assert.Equal(t, entity.VisibilityNone, tileAt(t, m, geom.Pt(5, 3)).Visibility)
	assert.Equal(t, entity.VisibilityNone, tileAt(t, m, geom.Pt(5, 2)).Visibility)
	assert.Equal(t, entity.VisibilityVisible, tileAt(t, m, geom.Pt(5, 7)).Visibility)
	assert.Equal(t, entity.VisibilityVisible, tileAt(t, m, geom.Pt(3, 5)).Visibility)
}

func TestVisibilityResetPass(t *testing.T) {
	eye := geom.Pt(5, 5)
	m := openMap(11, 11, eye)
	far := tileAt(t, m, geom.Pt(0, 0))
	far.Visibility = entity.VisibilityVisible
	unseen := tileAt(t, m, geom.Pt(10, 10))

	farRat := entity.NewMonster(geom.Pt(10, 0), entity.Monster{})
	farRat.Visibility = entity.VisibilityVisible
	m.Place(farRat, farRat.Pos)
	nearRat := entity.NewMonster(geom.Pt(6, 5), entity.Monster{})
	m.Place(nearRat, nearRat.Pos)

	UpdateVisibility(m, 2)

	assert.Equal(t, entity.VisibilityFog, far.Visibility, "seen things fade to fog")
	assert.Equal(t, entity.VisibilityNone, unseen.Visibility)
	assert.Equal(t, entity.VisibilityNone, farRat.Visibility, "monsters are not remembered")
	assert.Equal(t, entity.VisibilityVisible, nearRat.Visibility)

	// A second turn from further away leaves the near tile fogged.
	m.Place(m.Player, geom.Pt(1, 1))
	near := tileAt(t, m, geom.Pt(6, 5))
	UpdateVisibility(m, 1)
	assert.Equal(t, entity.VisibilityFog, near.Visibility)
	assert.Equal(t, entity.VisibilityNone, nearRat.Visibility)
}

func TestVisibilityEyeAlwaysLit(t *testing.T) {
	eye := geom.Pt(2, 2)
	m := openMap(5, 5, eye)
	stairs := entity.NewAt(entity.KindStairsUp, eye)
	m.Place(stairs, eye)

	UpdateVisibility(m, 0)

	assert.Equal(t, entity.VisibilityVisible, stairs.Visibility)
	assert.Equal(t, entity.VisibilityVisible, m.Player.Visibility)
	assert.Equal(t, 3, VisibleCount(m), "stairs, floor and player")
}

func TestVisibilityOnlyLightsWithinRadius(t *testing.T) {
	l := generate(t, 11, DefaultWidth, DefaultHeight)
	m := Load(l, 1)
	rng := rand.New(rand.NewSource(11))
	const radius = 6

	for turn := 0; turn < 20; turn++ {
		before := make(map[*entity.Thing]entity.Visibility)
		for _, th := range m.Things() {
			before[th] = th.Visibility
		}

		UpdateVisibility(m, radius)

		eye := m.Player.Pos
		for _, th := range m.Things() {
			if before[th] == entity.VisibilityNone && th.Visibility == entity.VisibilityVisible {
				require.LessOrEqual(t, th.Pos.Manhattan(eye), radius, "%v lit at %v", th.Kind, th.Pos)
			}
		}

		// Wander one passable step.
		for _, i := range rng.Perm(4) {
			next := eye.Add(geom.Cardinals[i])
			if m.IsPassable(next) {
				m.Place(m.Player, next)
				break
			}
		}
	}
}

func TestOctantMappings(t *testing.T) {
	seen := make(map[geom.Point]bool)
	for i := 0; i < 8; i++ {
		seen[Octant(i, 1, 2)] = true
	}
	assert.Len(t, seen, 8, "octants cover distinct directions")

	assert.Panics(t, func() { Octant(8, 0, 1) })
	assert.Panics(t, func() { Octant(-1, 0, 1) })
}

func TestShadowCovers(t *testing.T) {
	column := shadow{0, 2}
	assert.True(t, column.covers(0, 3))
	assert.True(t, column.covers(0, 9))
	assert.False(t, column.covers(0, 2), "a shadow never covers its own row")

	s := shadow{2, 2}
	assert.True(t, s.covers(3, 4))
	assert.False(t, s.covers(1, 4))
	assert.False(t, s.covers(2, 1))
}
