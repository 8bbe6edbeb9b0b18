package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/undercroft/internal/geom"
)

// node is a search cell. It only lives for one FindPath call.
type node struct {
	f, g, h int
	parent  *node
	at      geom.Point
}

// FindPath returns the 4-connected steps from start to goal, goal included
// and start excluded. The goal is always enterable, so a path may end on a
// monster or stairs. An unreachable or off-map goal yields an empty path,
// which callers treat as "hold position". An off-map start panics.
func FindPath(m *Map, start, goal geom.Point) []geom.Point {
	if !m.InBounds(start) {
		panic(fmt.Sprintf("world: path start %v outside %dx%d map", start, m.Width, m.Height))
	}
	if !m.InBounds(goal) {
		return nil
	}

	h := start.Manhattan(goal)
	open := []*node{{f: h, h: h, at: start}}
	inOpen := map[geom.Point]*node{start: open[0]}
	closed := mapset.New[geom.Point]()

	for len(open) > 0 {
		best := 0
		for i, n := range open[1:] {
			if n.f < open[best].f {
				best = i + 1
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)
		delete(inOpen, cur.at)

		if cur.at == goal {
			return reconstruct(cur)
		}
		closed.Put(cur.at)

		for _, dir := range geom.Cardinals {
			next := cur.at.Add(dir)
			if next != goal && !m.IsPassable(next) {
				continue
			}
			if closed.Has(next) {
				continue
			}
			g := cur.g + 1
			if n, ok := inOpen[next]; ok {
				if n.g <= g {
					continue
				}
				n.g, n.f, n.parent = g, g+n.h, cur
				continue
			}
			h := next.Manhattan(goal)
			n := &node{f: g + h, g: g, h: h, parent: cur, at: next}
			open = append(open, n)
			inOpen[next] = n
		}
	}
	return nil
}

func reconstruct(n *node) []geom.Point {
	var path []geom.Point
	for ; n.parent != nil; n = n.parent {
		path = append(path, n.at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
