package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
	"github.com/samdwyer/undercroft/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 40
)

// Layout is the output of a generation run: everything needed to load a Map.
type Layout struct {
	Width, Height int
	Tiles         []*entity.Thing
	Fixtures      []*entity.Thing // doors and both stairs
	StairsUp      *entity.Thing
	StairsDown    *entity.Thing
	Player        *entity.Thing
	Rooms         []*Room
}

// Generator assembles dungeons from template rooms by randomized
// depth-first tunnelling.
type Generator struct {
	rng     *rand.Rand
	palette Palette
	log     *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithPalette replaces the default templates.
func WithPalette(p Palette) Option {
	return func(g *Generator) { g.palette = p }
}

// WithLogger sets the logger used for generation summaries.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGenerator creates a generator drawing all randomness from rng.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:     rng,
		palette: DefaultPalette(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// generation holds the state of a single Generate call.
type generation struct {
	bounds   geom.AABB
	rooms    []*Room
	doors    mapset.Set[geom.Point]
	fixtures []*entity.Thing
}

// Generate builds a connected layout of the given size and places the player,
// cloned from the given template, on the up stairs. It never fails: rooms that
// cannot branch simply stop. It panics if no room template fits the map.
func (g *Generator) Generate(ctx context.Context, player *entity.Thing, width, height int) *Layout {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	gen := &generation{
		bounds: geom.Box(0, 0, width, height),
		doors:  mapset.New[geom.Point](),
	}

	seed := g.seedRoom(gen)
	stack := []*Room{seed}
	for len(stack) > 0 {
		room := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if next := g.tunnel(gen, room); next != nil {
			stack = append(stack, room, next)
		}
	}

	layout := g.finish(gen, player)

	maxDepth := 0
	for _, r := range gen.rooms {
		maxDepth = max(maxDepth, r.Depth)
	}

	// Record telemetry
	span.SetAttributes(
		attribute.Int("dungeon.width", width),
		attribute.Int("dungeon.height", height),
		attribute.Int("dungeon.room_count", len(gen.rooms)),
		attribute.Int("dungeon.door_count", gen.doors.Size()),
		attribute.Int("dungeon.max_depth", maxDepth),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	g.log.Debug("dungeon generated",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("rooms", len(gen.rooms)),
		zap.Int("doors", gen.doors.Size()),
		zap.Int("max_depth", maxDepth),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return layout
}

// seedRoom places a random room template somewhere fully inside the map.
func (g *Generator) seedRoom(gen *generation) *Room {
	var fitting []*Template
	for _, t := range g.palette.Rooms {
		if t.Bounds.Width() <= gen.bounds.Width() && t.Bounds.Height() <= gen.bounds.Height() {
			fitting = append(fitting, t)
		}
	}
	if len(fitting) == 0 {
		panic(fmt.Sprintf("world: no room template fits a %dx%d map", gen.bounds.Width(), gen.bounds.Height()))
	}

	tmpl := choose(g.rng, fitting).Clone()
	tmpl.Translate(geom.Pt(
		g.rng.Intn(gen.bounds.Width()-tmpl.Bounds.Width()+1),
		g.rng.Intn(gen.bounds.Height()-tmpl.Bounds.Height()+1),
	))

	room := &Room{Template: *tmpl}
	gen.rooms = append(gen.rooms, room)
	return room
}

// tunnel tries to attach one template of the opposite type to room. It returns
// the new room, or nil once room has no legal attachment left.
func (g *Generator) tunnel(gen *generation, room *Room) *Room {
	candidates := append([]*Template(nil), g.palette.attachable(room.Type)...)
	if len(candidates) == 0 {
		return nil
	}

	var edges []geom.Point
	for _, p := range room.Bounds.ScanEdge() {
		if !gen.doors.Has(p) {
			edges = append(edges, p)
		}
	}
	shuffle(g.rng, edges)
	shuffle(g.rng, candidates)

	for _, cell := range edges {
		dir, _ := room.Bounds.Outward(cell)
		back := geom.Pt(-dir.X, -dir.Y)

		for _, tmpl := range candidates {
			if !tmpl.Accepts(dir) {
				continue
			}
			anchors := tmpl.EdgeFacing(back)
			shuffle(g.rng, anchors)

			for _, anchor := range anchors {
				offset := cell.Sub(anchor)
				box := tmpl.Bounds.Translate(offset)
				if !gen.bounds.ContainsBox(box) || !gen.fits(box) {
					continue
				}

				placed := tmpl.Clone()
				placed.Translate(offset)
				next := &Room{Template: *placed, Depth: room.Depth + 1}
				gen.connect(room, next, cell)
				gen.rooms = append(gen.rooms, next)
				return next
			}
		}
	}
	return nil
}

// fits reports whether a room with the given bounds can join the layout.
// Only interiors must stay disjoint; walls may overlap anything.
func (gen *generation) fits(box geom.AABB) bool {
	inner := box.Shrink(1)
	for _, r := range gen.rooms {
		if inner.Overlaps(r.Interior()) {
			return false
		}
	}
	return true
}

// connect opens a door between two rooms at their shared border cell.
func (gen *generation) connect(a, b *Room, cell geom.Point) {
	a.RemoveTileAt(cell)
	b.RemoveTileAt(cell)
	gen.doors.Put(cell)
	gen.fixtures = append(gen.fixtures, entity.Door(cell))
}

// finish places stairs and the player and flattens the tile lists.
func (g *Generator) finish(gen *generation, player *entity.Thing) *Layout {
	shallowest, deepest := gen.rooms[0], gen.rooms[0]
	for _, r := range gen.rooms[1:] {
		if r.Depth < shallowest.Depth {
			shallowest = r
		}
		if r.Depth > deepest.Depth {
			deepest = r
		}
	}

	taken := mapset.New[geom.Point]()
	up := g.placeStairs(gen, shallowest, entity.KindStairsUp, taken)
	down := g.placeStairs(gen, deepest, entity.KindStairsDown, taken)

	placed := player.Clone()
	placed.Pos = up.Pos

	layout := &Layout{
		Width:      gen.bounds.Width(),
		Height:     gen.bounds.Height(),
		Fixtures:   append(gen.fixtures, up, down),
		StairsUp:   up,
		StairsDown: down,
		Player:     placed,
		Rooms:      gen.rooms,
	}

	// Overlapping rooms leave several tiles on one cell. Floor beats wall so
	// every room keeps its whole interior; door and stairs cells get no tile.
	index := make(map[geom.Point]int)
	for _, r := range gen.rooms {
		for _, tile := range r.Tiles {
			if gen.doors.Has(tile.Pos) || taken.Has(tile.Pos) {
				continue
			}
			i, ok := index[tile.Pos]
			switch {
			case !ok:
				index[tile.Pos] = len(layout.Tiles)
				layout.Tiles = append(layout.Tiles, tile)
			case tile.Passable && !layout.Tiles[i].Passable:
				layout.Tiles[i] = tile
			}
		}
	}
	return layout
}

// placeStairs puts stairs on a random non-corner edge cell of room that is
// not a door, stepped one cell inward so they never sit on the wall line.
// The floor tile underneath is removed.
func (g *Generator) placeStairs(gen *generation, room *Room, kind entity.Kind, taken mapset.Set[geom.Point]) *entity.Thing {
	var spots []geom.Point
	for _, p := range room.Bounds.ScanEdge() {
		if gen.doors.Has(p) {
			continue
		}
		dir, _ := room.Bounds.Outward(p)
		inner := p.Sub(dir)
		if !taken.Has(inner) && !gen.doors.Has(inner) {
			spots = append(spots, inner)
		}
	}

	at := room.Center()
	if len(spots) > 0 {
		at = choose(g.rng, spots)
	}
	taken.Put(at)

	room.RemoveTileAt(at)
	return entity.NewAt(kind, at)
}

func choose[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
