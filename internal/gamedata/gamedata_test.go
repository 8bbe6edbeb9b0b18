package gamedata

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMonsters(t *testing.T) {
	monsters, err := LoadMonsters()
	require.NoError(t, err)

	ids := make([]string, 0, len(monsters))
	for _, m := range monsters {
		ids = append(ids, m.ID)
		assert.Positive(t, m.SpawnWeight, m.ID)
		assert.Positive(t, m.MinDepth, m.ID)
	}
	assert.ElementsMatch(t, []string{"rat", "goblin", "skeleton", "orc"}, ids)
}

func TestLoadContainers(t *testing.T) {
	containers, err := LoadContainers()
	require.NoError(t, err)
	require.NotEmpty(t, containers)

	for _, c := range containers {
		assert.NotEmpty(t, c.Loot, c.ID)
	}
}

func TestMonsterRegistry(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	require.NoError(t, err)
	assert.Equal(t, 4, registry.Count())

	goblin := registry.GetByID("goblin")
	require.NotNil(t, goblin)
	assert.Equal(t, "Goblin", goblin.Name)
	assert.Nil(t, registry.GetByID("dragon"))

	// Test weighted spawning is deterministic with same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 20; i++ {
		a, b := registry.SpawnRandom(rng1, 3), registry.SpawnRandom(rng2, 3)
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, a.ID, b.ID, "spawn %d", i)
	}
}

func TestSpawnRespectsDepth(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		def := registry.SpawnRandom(rng, 1)
		require.NotNil(t, def)
		assert.LessOrEqual(t, def.MinDepth, 1, "%s spawned too shallow", def.ID)
	}
	assert.Nil(t, registry.SpawnRandom(rng, 0))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid {
			assert.NoError(t, err, tt.input)
		} else {
			assert.Error(t, err, tt.input)
		}
	}
}

func TestDefMethods(t *testing.T) {
	def := MonsterDef{ID: "test", Name: "Test", Glyph: "T", Color: "#FF0000", SpawnWeight: 5, MinDepth: 1}

	assert.Equal(t, 'T', def.GlyphRune())
	assert.NotZero(t, def.TCellColor())
	assert.Equal(t, '?', (&ContainerDef{}).GlyphRune())
}

func TestParseHexColorValue(t *testing.T) {
	c, err := ParseHexColor("#8b4513")
	require.NoError(t, err)
	r, g, b := c.RGB()
	assert.Equal(t, []int32{0x8b, 0x45, 0x13}, []int32{r, g, b})

	assert.Equal(t, tcell.ColorWhite, ColorOr("nope", tcell.ColorWhite))
}

func TestLoadRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"monsters": [{"id": "rat", "spawnWeigth": 3}]}`},
		{"duplicate id", `{"monsters": [{"id": "rat"}, {"id": "rat"}]}`},
		{"missing id", `{"monsters": [{"name": "Rat"}]}`},
		{"negative weight", `{"monsters": [{"id": "rat", "spawnWeight": -1}]}`},
		{"not json", `monsters:`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"monsters.json": {Data: []byte(tt.body)}}
			_, err := LoadMonstersFS(fsys)
			assert.Error(t, err)
		})
	}

	_, err := LoadContainersFS(fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{"containers.json": {Data: []byte(
		`{"containers": [{"id": "crate", "name": "Crate", "glyph": "#", "spawnWeight": 2, "loot": ["nails"]}]}`,
	)}}

	containers, err := LoadContainersFS(fsys)
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, []string{"nails"}, containers[0].Loot)
	assert.Equal(t, '#', containers[0].GlyphRune())
}
