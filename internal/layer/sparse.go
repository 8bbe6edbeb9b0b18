package layer

import "github.com/samdwyer/undercroft/internal/geom"

// Sparse is backed by an identity-keyed map. At is a linear scan, which is
// fine for layers with few occupied cells.
type Sparse[T comparable] struct {
	where map[T]geom.Point
}

// NewSparse creates an empty sparse layer.
func NewSparse[T comparable]() *Sparse[T] {
	return &Sparse[T]{where: make(map[T]geom.Point)}
}

func (s *Sparse[T]) Set(p geom.Point, v T) {
	if other, ok := s.At(p); ok && other != v {
		delete(s.where, other)
	}
	s.where[v] = p
}

func (s *Sparse[T]) Delete(v T) {
	delete(s.where, v)
}

func (s *Sparse[T]) Has(v T) bool {
	_, ok := s.where[v]
	return ok
}

func (s *Sparse[T]) At(p geom.Point) (T, bool) {
	for v, at := range s.where {
		if at == p {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (s *Sparse[T]) Where(v T) (geom.Point, bool) {
	p, ok := s.where[v]
	return p, ok
}

func (s *Sparse[T]) Within(box geom.AABB) []Placement[T] {
	var out []Placement[T]
	for v, p := range s.where {
		if box.Contains(p) {
			out = append(out, Placement[T]{Thing: v, At: p})
		}
	}
	return out
}

func (s *Sparse[T]) Things() []T {
	out := make([]T, 0, len(s.where))
	for v := range s.where {
		out = append(out, v)
	}
	return out
}

func (s *Sparse[T]) All() []Placement[T] {
	out := make([]Placement[T], 0, len(s.where))
	for v, p := range s.where {
		out = append(out, Placement[T]{Thing: v, At: p})
	}
	return out
}

func (s *Sparse[T]) Len() int {
	return len(s.where)
}

var _ Layer[int] = (*Sparse[int])(nil)
