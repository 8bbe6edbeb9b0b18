package world

import (
	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
)

// RoomType separates rooms from the hallways that join them.
type RoomType int

const (
	RoomTypeHallway RoomType = iota
	RoomTypeRoom
)

// String returns the room type name.
func (t RoomType) String() string {
	switch t {
	case RoomTypeHallway:
		return "hallway"
	case RoomTypeRoom:
		return "room"
	default:
		return "unknown"
	}
}

// Axis is the run direction of a hallway. Rooms have no axis.
type Axis int

const (
	AxisNone Axis = iota
	AxisVertical
	AxisHorizontal
)

// Template is an origin-relative room or hallway prototype. Translate moves
// tiles in place, so always Clone a template before placing it.
type Template struct {
	Type   RoomType
	Axis   Axis
	Bounds geom.AABB
	Tiles  []*entity.Thing
}

// NewTemplate builds a width×height template at the origin: floor inside,
// a one-cell wall ring around it.
func NewTemplate(typ RoomType, axis Axis, width, height int) *Template {
	bounds := geom.Box(0, 0, width, height)
	t := &Template{Type: typ, Axis: axis, Bounds: bounds}
	for _, p := range bounds.Scan() {
		if bounds.IsBorder(p) {
			t.Tiles = append(t.Tiles, entity.Wall(p))
		} else {
			t.Tiles = append(t.Tiles, entity.Floor(p))
		}
	}
	return t
}

// Clone returns a deep copy; every tile is copied.
func (t *Template) Clone() *Template {
	c := &Template{Type: t.Type, Axis: t.Axis, Bounds: t.Bounds}
	c.Tiles = make([]*entity.Thing, len(t.Tiles))
	for i, tile := range t.Tiles {
		c.Tiles[i] = tile.Clone()
	}
	return c
}

// Translate moves the template and all its tiles by d, in place.
func (t *Template) Translate(d geom.Point) {
	t.Bounds = t.Bounds.Translate(d)
	for _, tile := range t.Tiles {
		tile.Pos = tile.Pos.Add(d)
	}
}

// Accepts reports whether the template may hang off a border cell facing dir.
// Hallways only attach along their run direction.
func (t *Template) Accepts(dir geom.Point) bool {
	switch t.Axis {
	case AxisVertical:
		return dir == geom.North || dir == geom.South
	case AxisHorizontal:
		return dir == geom.East || dir == geom.West
	default:
		return true
	}
}

// EdgeFacing returns the non-corner border cells whose outward direction is dir.
func (t *Template) EdgeFacing(dir geom.Point) []geom.Point {
	var out []geom.Point
	for _, p := range t.Bounds.ScanEdge() {
		if d, _ := t.Bounds.Outward(p); d == dir {
			out = append(out, p)
		}
	}
	return out
}

// TileAt returns the tile at p, or nil.
func (t *Template) TileAt(p geom.Point) *entity.Thing {
	for _, tile := range t.Tiles {
		if tile.Pos == p {
			return tile
		}
	}
	return nil
}

// RemoveTileAt deletes any tile at p.
func (t *Template) RemoveTileAt(p geom.Point) {
	kept := t.Tiles[:0]
	for _, tile := range t.Tiles {
		if tile.Pos != p {
			kept = append(kept, tile)
		}
	}
	for i := len(kept); i < len(t.Tiles); i++ {
		t.Tiles[i] = nil
	}
	t.Tiles = kept
}

// Room is a template placed in world space.
type Room struct {
	Template
	// Depth is the number of tunnels between this room and the seed room.
	Depth int
}

// Center returns the center cell of the room.
func (r *Room) Center() geom.Point {
	return r.Bounds.Center()
}

// Contains returns true if the given point is inside the room, walls included.
func (r *Room) Contains(p geom.Point) bool {
	return r.Bounds.Contains(p)
}

// Interior returns the floor area of the room.
func (r *Room) Interior() geom.AABB {
	return r.Bounds.Shrink(1)
}

// Palette is the set of templates the generator draws from.
type Palette struct {
	Rooms    []*Template
	Hallways []*Template
}

// templateSizes are the side lengths of rooms and the run lengths of hallways.
var templateSizes = []int{5, 7, 9, 11}

// DefaultPalette builds square rooms and 3-wide hallways in both orientations.
func DefaultPalette() Palette {
	var p Palette
	for _, n := range templateSizes {
		p.Rooms = append(p.Rooms, NewTemplate(RoomTypeRoom, AxisNone, n, n))
	}
	for _, n := range templateSizes {
		p.Hallways = append(p.Hallways,
			NewTemplate(RoomTypeHallway, AxisVertical, 3, n),
			NewTemplate(RoomTypeHallway, AxisHorizontal, n, 3),
		)
	}
	return p
}

// attachable returns the templates that may be tunnelled from a room of type t.
// Rooms attach hallways and hallways attach rooms.
func (p Palette) attachable(t RoomType) []*Template {
	if t == RoomTypeRoom {
		return p.Hallways
	}
	return p.Rooms
}
