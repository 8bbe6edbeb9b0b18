package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/samdwyer/undercroft/internal/config"
	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/gamedata"
	"github.com/samdwyer/undercroft/internal/geom"
	"github.com/samdwyer/undercroft/internal/ui"
	"github.com/samdwyer/undercroft/internal/world"
)

// Game holds the entire game state. Turns are processed strictly one at a
// time on the goroutine that calls Run.
type Game struct {
	cfg      config.GameConfig
	log      *zap.Logger
	seed     int64
	rng      *rand.Rand
	gen      *world.Generator
	screen   *ui.Screen
	renderer *ui.Renderer
	metrics  instruments

	monsters   *gamedata.Registry[gamedata.MonsterDef]
	containers *gamedata.Registry[gamedata.ContainerDef]

	player  *entity.Thing
	level   *world.Map
	layout  *world.Layout
	state   State
	turn    int
	message string
	running bool
}

// New creates a new game instance drawing on screen. A nil screen runs
// headless, which is how tests drive turns.
func New(cfg config.GameConfig, log *zap.Logger, screen *ui.Screen) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}

	monsters, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		return nil, fmt.Errorf("load monsters: %w", err)
	}
	containers, err := gamedata.LoadContainerRegistry()
	if err != nil {
		return nil, fmt.Errorf("load containers: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:        cfg,
		log:        log.With(zap.Int64("seed", seed)),
		seed:       seed,
		rng:        rng,
		screen:     screen,
		metrics:    newInstruments(log),
		monsters:   monsters,
		containers: containers,
		player:     entity.NewPlayer(),
		state:      StateExplore,
		running:    true,
	}
	g.gen = world.NewGenerator(rng, world.WithLogger(g.log))
	if screen != nil {
		g.renderer = ui.NewRenderer(screen)
	}
	return g, nil
}

// Seed returns the seed the dungeon is generated from.
func (g *Game) Seed() int64 { return g.seed }

// Level returns the current map.
func (g *Game) Level() *world.Map { return g.level }

// Layout returns the generated layout of the current level.
func (g *Game) Layout() *world.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() State { return g.state }

// Turn returns the number of turns taken so far.
func (g *Game) Turn() int { return g.turn }

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	if g.screen == nil {
		return fmt.Errorf("run: no screen")
	}
	defer g.screen.Close()

	g.NewLevel(ctx, 1)

	// Main game loop
	for g.running {
		g.render()

		if g.state == StateAutorun {
			g.Autorun(ctx)
			continue
		}

		// Handle input (blocking)
		g.handleInput(ctx)
	}
	g.log.Info("game over", zap.Int("turns", g.turn), zap.Int("depth", g.level.Depth))
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.Step(ctx, geom.North)
	case tcell.KeyDown:
		g.Step(ctx, geom.South)
	case tcell.KeyLeft:
		g.Step(ctx, geom.West)
	case tcell.KeyRight:
		g.Step(ctx, geom.East)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'k':
			g.Step(ctx, geom.North)
		case 'j':
			g.Step(ctx, geom.South)
		case 'h':
			g.Step(ctx, geom.West)
		case 'l':
			g.Step(ctx, geom.East)
		case '>':
			g.Descend(ctx)
		}
	}
}

// Step moves the player one cell when the target is passable, then ends the turn.
func (g *Game) Step(ctx context.Context, dir geom.Point) bool {
	next := g.player.Pos.Add(dir)
	if !g.level.IsPassable(next) {
		g.message = "Something blocks the way."
		return false
	}
	g.level.Place(g.player, next)
	g.message = ""
	g.endTurn(ctx)
	return true
}

// Descend takes the down stairs when standing on them, or starts walking
// toward them otherwise.
func (g *Game) Descend(ctx context.Context) {
	if g.player.Pos == g.layout.StairsDown.Pos {
		g.NewLevel(ctx, g.level.Depth+1)
		return
	}
	g.state = StateAutorun
}

// Autorun takes one step along the shortest route to the down stairs. It
// drops back to explore mode on arrival, when no route exists, or when a
// monster comes into view.
func (g *Game) Autorun(ctx context.Context) {
	path := world.FindPath(g.level, g.player.Pos, g.layout.StairsDown.Pos)
	g.metrics.pathSearches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("found", len(path) > 0)))

	if len(path) == 0 {
		g.state = StateExplore
		g.message = "You see no way down."
		return
	}
	if !g.Step(ctx, path[0].Sub(g.player.Pos)) {
		g.state = StateExplore
		return
	}
	if g.player.Pos == g.layout.StairsDown.Pos {
		g.state = StateExplore
		g.message = "You stand on the stairs down."
		return
	}
	if m := g.spotted(); m != nil {
		g.state = StateExplore
		g.message = fmt.Sprintf("You spot a %s.", m.Monster.Name)
	}
}

// spotted returns the closest visible monster, breaking ties by row then
// column, or nil when none is in view.
func (g *Game) spotted() *entity.Thing {
	var best *entity.Thing
	bestDist := 0
	for _, m := range g.level.Monsters.Things() {
		if m.Visibility != entity.VisibilityVisible {
			continue
		}
		d := m.Pos.Manhattan(g.player.Pos)
		switch {
		case best == nil, d < bestDist:
		case d == bestDist && (m.Pos.Y < best.Pos.Y || m.Pos.Y == best.Pos.Y && m.Pos.X < best.Pos.X):
		default:
			continue
		}
		best, bestDist = m, d
	}
	return best
}

// endTurn recomputes what the player sees once all moves are applied.
func (g *Game) endTurn(ctx context.Context) {
	g.turn++
	world.UpdateVisibility(g.level, g.sightRadius())
	g.metrics.turns.Add(ctx, 1)
	g.metrics.visible.Record(ctx, int64(world.VisibleCount(g.level)))
}

// sightRadius is the light radius on dark levels and unbounded on lit ones.
func (g *Game) sightRadius() int {
	if g.level.Lighting == world.LightingLit {
		return g.level.Width + g.level.Height
	}
	return g.cfg.LightRadius
}

func (g *Game) render() {
	if g.renderer == nil {
		return
	}
	status := fmt.Sprintf("Depth %d  Turn %d  Seed %d  [%s]  %s",
		g.level.Depth, g.turn, g.seed, g.state, g.message)
	g.renderer.Render(g.level, status)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
