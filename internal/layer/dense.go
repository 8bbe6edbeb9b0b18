package layer

import (
	"fmt"

	"github.com/samdwyer/undercroft/internal/geom"
)

type slot[T comparable] struct {
	v  T
	ok bool
}

// Dense is backed by a width×height grid plus an identity map for reverse
// lookup. At is O(1). Writing outside the grid panics.
type Dense[T comparable] struct {
	width, height int
	cells         []slot[T]
	where         map[T]geom.Point
}

// NewDense creates an empty dense layer of the given size.
func NewDense[T comparable](width, height int) *Dense[T] {
	return &Dense[T]{
		width:  width,
		height: height,
		cells:  make([]slot[T], width*height),
		where:  make(map[T]geom.Point),
	}
}

// Bounds returns the area the grid covers.
func (d *Dense[T]) Bounds() geom.AABB {
	return geom.Box(0, 0, d.width, d.height)
}

func (d *Dense[T]) index(p geom.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= d.width || p.Y >= d.height {
		return 0, false
	}
	return p.Y*d.width + p.X, true
}

func (d *Dense[T]) Set(p geom.Point, v T) {
	i, ok := d.index(p)
	if !ok {
		panic(fmt.Sprintf("layer: set %v outside %dx%d grid", p, d.width, d.height))
	}
	if old, ok := d.where[v]; ok {
		j, _ := d.index(old)
		d.cells[j] = slot[T]{}
	}
	if prev := d.cells[i]; prev.ok && prev.v != v {
		delete(d.where, prev.v)
	}
	d.cells[i] = slot[T]{v: v, ok: true}
	d.where[v] = p
}

func (d *Dense[T]) Delete(v T) {
	p, ok := d.where[v]
	if !ok {
		return
	}
	i, _ := d.index(p)
	d.cells[i] = slot[T]{}
	delete(d.where, v)
}

func (d *Dense[T]) Has(v T) bool {
	_, ok := d.where[v]
	return ok
}

func (d *Dense[T]) At(p geom.Point) (T, bool) {
	i, ok := d.index(p)
	if !ok {
		var zero T
		return zero, false
	}
	s := d.cells[i]
	return s.v, s.ok
}

func (d *Dense[T]) Where(v T) (geom.Point, bool) {
	p, ok := d.where[v]
	return p, ok
}

// Within walks the grid cells inside box, so results come back in row-major order.
func (d *Dense[T]) Within(box geom.AABB) []Placement[T] {
	var out []Placement[T]
	for y := max(box.Min.Y, 0); y < min(box.Max.Y, d.height); y++ {
		for x := max(box.Min.X, 0); x < min(box.Max.X, d.width); x++ {
			if s := d.cells[y*d.width+x]; s.ok {
				out = append(out, Placement[T]{Thing: s.v, At: geom.Pt(x, y)})
			}
		}
	}
	return out
}

func (d *Dense[T]) Things() []T {
	out := make([]T, 0, len(d.where))
	for _, s := range d.cells {
		if s.ok {
			out = append(out, s.v)
		}
	}
	return out
}

func (d *Dense[T]) All() []Placement[T] {
	return d.Within(d.Bounds())
}

func (d *Dense[T]) Len() int {
	return len(d.where)
}

var _ Layer[int] = (*Dense[int])(nil)
