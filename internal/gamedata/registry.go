package gamedata

import (
	"errors"
	"math/rand"
)

// Def is implemented by every kind table entry.
type Def interface {
	MonsterDef | ContainerDef
	key() string
	weight() int
	depth() int
}

// Registry holds loaded definitions and provides spawning utilities.
type Registry[T Def] struct {
	defs []T
}

// NewRegistry creates a registry from loaded definitions.
func NewRegistry[T Def](defs []T) *Registry[T] {
	return &Registry[T]{defs: defs}
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*Registry[MonsterDef], error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewRegistry(monsters), nil
}

// LoadContainerRegistry loads and creates a registry from the embedded containers.json.
func LoadContainerRegistry() (*Registry[ContainerDef], error) {
	containers, err := LoadContainers()
	if err != nil {
		return nil, err
	}
	if len(containers) == 0 {
		return nil, errors.New("no containers loaded from containers.json")
	}
	return NewRegistry(containers), nil
}

// SpawnRandom selects a random definition allowed at depth using weighted
// probability. Entries with higher spawnWeight are more likely to be
// selected. It returns nil when nothing may spawn at depth.
func (r *Registry[T]) SpawnRandom(rng *rand.Rand, depth int) *T {
	totalWeight := 0
	for _, d := range r.defs {
		if d.depth() <= depth {
			totalWeight += d.weight()
		}
	}
	if totalWeight <= 0 {
		return nil
	}

	// Pick a random value in the total weight range
	roll := rng.Intn(totalWeight)

	// Find which entry this roll corresponds to
	cumulative := 0
	for i := range r.defs {
		if r.defs[i].depth() > depth {
			continue
		}
		cumulative += r.defs[i].weight()
		if roll < cumulative {
			return &r.defs[i]
		}
	}
	return nil
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	for i := range r.defs {
		if r.defs[i].key() == id {
			return &r.defs[i]
		}
	}
	return nil
}

// All returns all definitions.
func (r *Registry[T]) All() []T {
	return r.defs
}

// Count returns the number of kinds in the registry.
func (r *Registry[T]) Count() int {
	return len(r.defs)
}
