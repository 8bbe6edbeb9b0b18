package gamedata

import (
	"io/fs"

	"github.com/gdamore/tcell/v2"
)

// MonsterDef defines a monster kind loaded from JSON.
type MonsterDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "g")
	Color       string `json:"color"`       // Hex color code (e.g., "#00FF00")
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
	MinDepth    int    `json:"minDepth"`    // Shallowest level the kind appears on
}

// ContainerDef defines a container kind loaded from JSON.
type ContainerDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Glyph       string   `json:"glyph"`
	Color       string   `json:"color"`
	SpawnWeight int      `json:"spawnWeight"`
	MinDepth    int      `json:"minDepth"`
	Loot        []string `json:"loot"` // Item ids a container may hold
}

func (d MonsterDef) key() string   { return d.ID }
func (d MonsterDef) weight() int   { return d.SpawnWeight }
func (d MonsterDef) depth() int    { return d.MinDepth }
func (d ContainerDef) key() string { return d.ID }
func (d ContainerDef) weight() int { return d.SpawnWeight }
func (d ContainerDef) depth() int  { return d.MinDepth }

// GlyphRune returns the glyph as a rune for rendering.
func (d *MonsterDef) GlyphRune() rune { return glyphRune(d.Glyph) }

// GlyphRune returns the glyph as a rune for rendering.
func (d *ContainerDef) GlyphRune() rune { return glyphRune(d.Glyph) }

// TCellColor returns the color as a tcell.Color.
func (d *MonsterDef) TCellColor() tcell.Color { return ColorOr(d.Color, tcell.ColorWhite) }

// TCellColor returns the color as a tcell.Color.
func (d *ContainerDef) TCellColor() tcell.Color { return ColorOr(d.Color, tcell.ColorWhite) }

func glyphRune(glyph string) rune {
	for _, r := range glyph {
		return r
	}
	return '?'
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// ContainersFile represents the structure of containers.json.
type ContainersFile struct {
	Containers []ContainerDef `json:"containers"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	return LoadMonstersFS(dataFS)
}

// LoadMonstersFS loads and validates monsters.json from fsys.
func LoadMonstersFS(fsys fs.FS) ([]MonsterDef, error) {
	file, err := decode[MonstersFile](fsys, "monsters.json")
	if err != nil {
		return nil, err
	}
	if err := validate("monsters.json", file.Monsters); err != nil {
		return nil, err
	}
	return file.Monsters, nil
}

// LoadContainers loads container definitions from the embedded containers.json file.
func LoadContainers() ([]ContainerDef, error) {
	return LoadContainersFS(dataFS)
}

// LoadContainersFS loads and validates containers.json from fsys.
func LoadContainersFS(fsys fs.FS) ([]ContainerDef, error) {
	file, err := decode[ContainersFile](fsys, "containers.json")
	if err != nil {
		return nil, err
	}
	if err := validate("containers.json", file.Containers); err != nil {
		return nil, err
	}
	return file.Containers, nil
}
