// Package layer indexes placed entities by position and by identity.
//
// Both implementations keep the two directions consistent: an entity is
// recorded at one position at most, and a position reports only an entity
// that reports that position back. Setting onto an occupied cell evicts the
// previous occupant. Layers are not safe for concurrent mutation.
package layer

import (
	"fmt"

	"github.com/samdwyer/undercroft/internal/geom"
)

// Placement pairs an entity with its position.
type Placement[T comparable] struct {
	Thing T
	At    geom.Point
}

// Layer is a position-indexed store of one entity category.
type Layer[T comparable] interface {
	// Set places v at p, vacating v's previous position and evicting any
	// other entity at p.
	Set(p geom.Point, v T)
	// Delete removes v. It is a no-op when v is absent.
	Delete(v T)
	Has(v T) bool
	At(p geom.Point) (T, bool)
	Where(v T) (geom.Point, bool)
	// Within returns the placements whose position lies inside box.
	Within(box geom.AABB) []Placement[T]
	Things() []T
	All() []Placement[T]
	Len() int
}

// Fill inserts placements into l. Each identity may appear only once; a
// duplicate is a construction bug and panics.
func Fill[T comparable](l Layer[T], placements []Placement[T]) {
	for _, pl := range placements {
		if l.Has(pl.Thing) {
			panic(fmt.Sprintf("layer: duplicate identity %v", pl.Thing))
		}
		l.Set(pl.At, pl.Thing)
	}
}
