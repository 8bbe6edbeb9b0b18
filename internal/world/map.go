package world

import (
	"fmt"

	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
	"github.com/samdwyer/undercroft/internal/layer"
)

// Lighting is the lighting mode of a level.
type Lighting int

const (
	// LightingDark limits sight to the player's light radius.
	LightingDark Lighting = iota
	// LightingLit lets the player see as far as line of sight allows.
	LightingLit
)

// Map is one finalized dungeon level. Tiles use a dense layer; fixtures,
// monsters and containers use sparse layers. The Map is mutated in place
// one turn at a time and is not safe for concurrent use.
type Map struct {
	Width    int
	Height   int
	Depth    int // level index, 1 is the first floor
	Lighting Lighting

	Tiles      *layer.Dense[*entity.Thing]
	Fixtures   *layer.Sparse[*entity.Thing]
	Monsters   *layer.Sparse[*entity.Thing]
	Containers *layer.Sparse[*entity.Thing]
	Player     *entity.Thing
}

// NewMap creates an empty map.
func NewMap(width, height, depth int) *Map {
	return &Map{
		Width:      width,
		Height:     height,
		Depth:      depth,
		Tiles:      layer.NewDense[*entity.Thing](width, height),
		Fixtures:   layer.NewSparse[*entity.Thing](),
		Monsters:   layer.NewSparse[*entity.Thing](),
		Containers: layer.NewSparse[*entity.Thing](),
	}
}

// Load builds the map for a generated layout.
func Load(l *Layout, depth int) *Map {
	m := NewMap(l.Width, l.Height, depth)
	layer.Fill[*entity.Thing](m.Tiles, placements(l.Tiles))
	layer.Fill[*entity.Thing](m.Fixtures, placements(l.Fixtures))
	if l.Player != nil {
		m.Place(l.Player, l.Player.Pos)
	}
	return m
}

func placements(things []*entity.Thing) []layer.Placement[*entity.Thing] {
	out := make([]layer.Placement[*entity.Thing], len(things))
	for i, t := range things {
		out[i] = layer.Placement[*entity.Thing]{Thing: t, At: t.Pos}
	}
	return out
}

// Bounds returns the area covered by the map.
func (m *Map) Bounds() geom.AABB {
	return geom.Box(0, 0, m.Width, m.Height)
}

// InBounds reports whether p lies on the map.
func (m *Map) InBounds(p geom.Point) bool {
	return m.Bounds().Contains(p)
}

// layerFor returns the layer that stores things of kind k.
func (m *Map) layerFor(k entity.Kind) layer.Layer[*entity.Thing] {
	switch {
	case k.IsTile():
		return m.Tiles
	case k.IsFixture():
		return m.Fixtures
	case k == entity.KindMonster:
		return m.Monsters
	case k == entity.KindContainer:
		return m.Containers
	default:
		panic(fmt.Sprintf("world: no layer for kind %v", k))
	}
}

// Place puts t at p in the layer for its kind, moving it if it was already
// on the map. The player is held outside the layers.
func (m *Map) Place(t *entity.Thing, p geom.Point) {
	t.Pos = p
	if t.Kind == entity.KindPlayer {
		m.Player = t
		return
	}
	m.layerFor(t.Kind).Set(p, t)
}

// Remove takes t off the map.
func (m *Map) Remove(t *entity.Thing) {
	if t.Kind == entity.KindPlayer {
		if m.Player == t {
			m.Player = nil
		}
		return
	}
	m.layerFor(t.Kind).Delete(t)
}

// At returns everything at p in fixed order: fixture, tile, container,
// monster, then the player when standing there.
func (m *Map) At(p geom.Point) []*entity.Thing {
	var out []*entity.Thing
	if f, ok := m.Fixtures.At(p); ok {
		out = append(out, f)
	}
	if t, ok := m.Tiles.At(p); ok {
		out = append(out, t)
	}
	if c, ok := m.Containers.At(p); ok {
		out = append(out, c)
	}
	if mon, ok := m.Monsters.At(p); ok {
		out = append(out, mon)
	}
	if m.Player != nil && m.Player.Pos == p {
		out = append(out, m.Player)
	}
	return out
}

// IsPassable reports whether p is on the map and everything there can be
// walked through. An empty in-bounds cell is passable.
func (m *Map) IsPassable(p geom.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	for _, t := range m.At(p) {
		if !t.Passable {
			return false
		}
	}
	return true
}

// IsOpaque reports whether nothing at p lets light through. Empty cells are opaque.
func (m *Map) IsOpaque(p geom.Point) bool {
	for _, t := range m.At(p) {
		if t.Transparent {
			return false
		}
	}
	return true
}

// Things returns every entity on the map, the player last.
func (m *Map) Things() []*entity.Thing {
	out := make([]*entity.Thing, 0, m.Tiles.Len()+m.Fixtures.Len()+m.Monsters.Len()+m.Containers.Len()+1)
	out = append(out, m.Tiles.Things()...)
	out = append(out, m.Fixtures.Things()...)
	out = append(out, m.Containers.Things()...)
	out = append(out, m.Monsters.Things()...)
	if m.Player != nil {
		out = append(out, m.Player)
	}
	return out
}

// PlayerPos returns the player's position.
func (m *Map) PlayerPos() (geom.Point, bool) {
	if m.Player == nil {
		return geom.Point{}, false
	}
	return m.Player.Pos, true
}
