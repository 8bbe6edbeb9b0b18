package game

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/undercroft/internal/config"
	"github.com/samdwyer/undercroft/internal/entity"
	"github.com/samdwyer/undercroft/internal/geom"
	"github.com/samdwyer/undercroft/internal/ui"
	"github.com/samdwyer/undercroft/internal/world"
)

func testConfig(seed int64) config.GameConfig {
	return config.GameConfig{
		Seed:        seed,
		Width:       60,
		Height:      30,
		LightRadius: 6,
	}
}

func newTestGame(t *testing.T, cfg config.GameConfig) *Game {
	t.Helper()
	g, err := New(cfg, nil, nil)
	require.NoError(t, err)
	g.NewLevel(context.Background(), 1)
	return g
}

func TestNewLevelPlacesPlayerOnUpStairs(t *testing.T) {
	g := newTestGame(t, testConfig(7))

	require.NotNil(t, g.Level().Player)
	assert.Equal(t, g.Layout().StairsUp.Pos, g.Level().Player.Pos)
	assert.Equal(t, world.LightingLit, g.Level().Lighting)
	assert.Equal(t, entity.VisibilityVisible, g.Level().Player.Visibility)
	assert.Equal(t, StateExplore, g.State())
}

func TestSameSeedSameLevel(t *testing.T) {
	a := newTestGame(t, testConfig(42))
	b := newTestGame(t, testConfig(42))

	require.Equal(t, len(a.Layout().Tiles), len(b.Layout().Tiles))
	for i := range a.Layout().Tiles {
		assert.Equal(t, a.Layout().Tiles[i].Pos, b.Layout().Tiles[i].Pos)
		assert.Equal(t, a.Layout().Tiles[i].Kind, b.Layout().Tiles[i].Kind)
	}
	assert.Equal(t, a.Layout().StairsDown.Pos, b.Layout().StairsDown.Pos)
}

func TestAutorunReachesDownStairs(t *testing.T) {
	g := newTestGame(t, testConfig(3))
	ctx := context.Background()
	goal := g.Layout().StairsDown.Pos
	steps := len(world.FindPath(g.Level(), g.Level().Player.Pos, goal))
	require.NotZero(t, steps)

	g.Descend(ctx)
	require.Equal(t, StateAutorun, g.State())

	for i := 0; i < g.cfg.Width*g.cfg.Height && g.State() == StateAutorun; i++ {
		g.Autorun(ctx)
	}

	assert.Equal(t, StateExplore, g.State())
	assert.Equal(t, goal, g.Level().Player.Pos)
	assert.Equal(t, steps, g.Turn())
}

func TestDescendOnStairsEntersDarkLevel(t *testing.T) {
	g := newTestGame(t, testConfig(11))
	ctx := context.Background()

	g.Descend(ctx)
	for g.State() == StateAutorun {
		g.Autorun(ctx)
	}
	require.Equal(t, g.Layout().StairsDown.Pos, g.Level().Player.Pos)

	g.Descend(ctx)

	assert.Equal(t, 2, g.Level().Depth)
	assert.Equal(t, world.LightingDark, g.Level().Lighting)
	assert.Equal(t, g.Layout().StairsUp.Pos, g.Level().Player.Pos)
	for _, th := range g.Level().Things() {
		if th.Visibility == entity.VisibilityVisible {
			assert.LessOrEqual(t, th.Pos.Manhattan(g.Level().Player.Pos), g.cfg.LightRadius)
		}
	}
}

func TestStepIntoWallIsNotATurn(t *testing.T) {
	g := newTestGame(t, testConfig(5))
	ctx := context.Background()

	var blocked *geom.Point
	for _, d := range geom.Cardinals {
		p := g.Level().Player.Pos.Add(d)
		if !g.Level().IsPassable(p) {
			blocked = &d
			break
		}
	}
	if blocked == nil {
		t.Skip("no wall next to the up stairs")
	}

	start := g.Level().Player.Pos
	assert.False(t, g.Step(ctx, *blocked))
	assert.Equal(t, 0, g.Turn())
	assert.Equal(t, start, g.Level().Player.Pos)
}

func TestPopulateAvoidsStartRoom(t *testing.T) {
	cfg := testConfig(9)
	cfg.Monsters = 5
	cfg.Containers = 3
	g := newTestGame(t, cfg)

	assert.LessOrEqual(t, g.Level().Monsters.Len(), cfg.Monsters)
	assert.LessOrEqual(t, g.Level().Containers.Len(), cfg.Containers)

	var start *world.Room
	for _, r := range g.Layout().Rooms {
		if r.Interior().Contains(g.Layout().StairsUp.Pos) {
			start = r
		}
	}
	require.NotNil(t, start)

	for _, th := range append(g.Level().Monsters.Things(), g.Level().Containers.Things()...) {
		assert.False(t, start.Interior().Contains(th.Pos), "%v spawned in the start room", th.Kind)
		for _, r := range g.Layout().Rooms {
			if r.Type == world.RoomTypeHallway {
				assert.False(t, r.Interior().Contains(th.Pos), "%v spawned in a hallway", th.Kind)
			}
		}
		tile, ok := g.Level().Tiles.At(th.Pos)
		require.True(t, ok)
		assert.Equal(t, entity.KindFloor, tile.Kind)
	}
	for _, c := range g.Level().Containers.Things() {
		require.NotNil(t, c.Container)
		assert.NotEmpty(t, c.Container.Name)
	}
}

func TestPopulatedLevelsCanBeFinished(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 30; seed++ {
		cfg := testConfig(seed)
		cfg.Width, cfg.Height = world.DefaultWidth, world.DefaultHeight
		cfg.Monsters = 6
		cfg.Containers = 4
		g := newTestGame(t, cfg)
		goal := g.Layout().StairsDown.Pos

		require.NotEmpty(t, world.FindPath(g.Level(), g.Level().Player.Pos, goal), "seed %d: stairs cut off", seed)

		// Autorun halts whenever a monster is in view, so keep asking.
		for i := 0; i < cfg.Width*cfg.Height && g.Level().Player.Pos != goal; i++ {
			g.Descend(ctx)
			g.Autorun(ctx)
		}
		require.Equal(t, goal, g.Level().Player.Pos, "seed %d: autorun did not arrive", seed)

		g.Descend(ctx)
		require.Equal(t, 2, g.Level().Depth, "seed %d", seed)
		assert.NotEmpty(t, world.FindPath(g.Level(), g.Level().Player.Pos, g.Layout().StairsDown.Pos),
			"seed %d: stairs cut off on depth 2", seed)
	}
}

func TestSpottedPicksNearestMonster(t *testing.T) {
	g := newTestGame(t, testConfig(4))
	lvl := g.Level()
	for _, m := range lvl.Monsters.Things() {
		lvl.Remove(m)
	}
	at := lvl.Player.Pos

	far := entity.NewMonster(at, entity.Monster{Name: "Orc"})
	left := entity.NewMonster(at, entity.Monster{Name: "Rat"})
	right := entity.NewMonster(at, entity.Monster{Name: "Goblin"})
	lvl.Place(far, at.Add(geom.Pt(0, 3)))
	lvl.Place(right, at.Add(geom.Pt(1, 0)))
	lvl.Place(left, at.Add(geom.Pt(-1, 0)))

	assert.Nil(t, g.spotted(), "nothing visible yet")

	for _, m := range []*entity.Thing{far, left, right} {
		m.Visibility = entity.VisibilityVisible
	}
	for i := 0; i < 10; i++ {
		assert.Same(t, left, g.spotted())
	}

	left.Visibility = entity.VisibilityFog
	assert.Same(t, right, g.spotted())
}

func TestRunQuitsOnKey(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(80, 45)

	g, err := New(testConfig(1), nil, screen)
	require.NoError(t, err)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 1, g.Level().Depth)
}

func TestRunWithoutScreen(t *testing.T) {
	g, err := New(testConfig(1), nil, nil)
	require.NoError(t, err)
	assert.Error(t, g.Run(context.Background()))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "explore", StateExplore.String())
	assert.Equal(t, "autorun", StateAutorun.String())
	assert.Equal(t, "unknown", State(9).String())
}
