package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
	"github.com/samdwyer/undercroft/internal/telemetry"
	"github.com/samdwyer/undercroft/internal/world"
)

// NewLevel generates and enters the level at depth. The first floor is lit;
// deeper floors are dark and limited to the light radius.
func (g *Game) NewLevel(ctx context.Context, depth int) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.level")
	defer span.End()

	startTime := time.Now()

	g.layout = g.gen.Generate(ctx, g.player, g.cfg.Width, g.cfg.Height)
	g.level = world.Load(g.layout, depth)
	g.player = g.level.Player
	if depth == 1 {
		g.level.Lighting = world.LightingLit
	}

	monsters, containers := g.populate()
	g.state = StateExplore
	g.message = ""
	world.UpdateVisibility(g.level, g.sightRadius())

	span.SetAttributes(
		attribute.Int("level.depth", depth),
		attribute.Int("level.rooms", len(g.layout.Rooms)),
		attribute.Int("level.monsters", monsters),
		attribute.Int("level.containers", containers),
	)
	g.log.Info("entered level",
		zap.Int("depth", depth),
		zap.Int("rooms", len(g.layout.Rooms)),
		zap.Int("monsters", monsters),
		zap.Int("containers", containers),
		zap.Duration("elapsed", time.Since(startTime)),
	)
}

// populate scatters monsters and containers over the open floor of every room
// except the one holding the up stairs. Hallways stay clear, and a spawn that
// would cut the up stairs off from the down stairs is skipped, since nothing
// on a level ever moves out of the way. It returns how many of each it placed.
func (g *Game) populate() (monsters, containers int) {
	var open []geom.Point
	for _, r := range g.layout.Rooms {
		if r.Type == world.RoomTypeHallway || r.Interior().Contains(g.layout.StairsUp.Pos) {
			continue
		}
		for _, p := range r.Interior().Scan() {
			if g.vacant(p) {
				open = append(open, p)
			}
		}
	}
	g.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })

	depth := g.level.Depth
	for i := 0; i < g.cfg.Monsters; i++ {
		def := g.monsters.SpawnRandom(g.rng, depth)
		if def == nil {
			break
		}
		m := entity.NewMonster(geom.Point{}, entity.Monster{
			DefID: def.ID,
			Name:  def.Name,
			Glyph: def.GlyphRune(),
			Color: def.Color,
		})
		var ok bool
		if open, ok = g.spawn(m, open); !ok {
			break
		}
		monsters++
	}

	for i := 0; i < g.cfg.Containers; i++ {
		def := g.containers.SpawnRandom(g.rng, depth)
		if def == nil {
			break
		}
		c := entity.NewContainer(geom.Point{}, entity.Container{
			DefID: def.ID,
			Name:  def.Name,
			Glyph: def.GlyphRune(),
			Color: def.Color,
			Items: append([]string(nil), def.Loot...),
		})
		var ok bool
		if open, ok = g.spawn(c, open); !ok {
			break
		}
		containers++
	}
	return monsters, containers
}

// spawn places t on the first cell of open that keeps the stairs connected
// and returns the cells left after it. ok is false when no cell works.
func (g *Game) spawn(t *entity.Thing, open []geom.Point) (rest []geom.Point, ok bool) {
	for i, p := range open {
		g.level.Place(t, p)
		if g.stairsConnected() {
			return open[i+1:], true
		}
		g.level.Remove(t)
	}
	return nil, false
}

// stairsConnected reports whether the down stairs can be reached from the up stairs.
func (g *Game) stairsConnected() bool {
	return len(world.FindPath(g.level, g.layout.StairsUp.Pos, g.layout.StairsDown.Pos)) > 0
}

// vacant reports whether p is plain floor with nothing standing on it.
func (g *Game) vacant(p geom.Point) bool {
	things := g.level.At(p)
	return len(things) == 1 && things[0].Kind == entity.KindFloor
}
