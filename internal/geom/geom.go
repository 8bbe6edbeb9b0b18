// Package geom provides integer grid points, half-open bounding boxes and
// region scans over them.
package geom

import "fmt"

// Point is a grid coordinate. It is a value type; copy it before storing.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns the 4-connected grid distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Adjacent reports whether q is one orthogonal step away from p.
func (p Point) Adjacent(q Point) bool {
	return p.Manhattan(q) == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cardinal directions in N, S, E, W order.
var (
	North = Point{0, -1}
	South = Point{0, 1}
	East  = Point{1, 0}
	West  = Point{-1, 0}

	Cardinals = [4]Point{North, South, East, West}
)

// AABB is an axis-aligned box. Min is inclusive and Max is exclusive, so a
// cell at Max is not inside the box.
type AABB struct {
	Min, Max Point
}

// Box returns the box with its top-left corner at (x, y) and the given size.
func Box(x, y, width, height int) AABB {
	return AABB{Min: Point{x, y}, Max: Point{x + width, y + height}}
}

// Width returns the number of columns covered.
func (b AABB) Width() int { return b.Max.X - b.Min.X }

// Height returns the number of rows covered.
func (b AABB) Height() int { return b.Max.Y - b.Min.Y }

// Center returns the middle cell, rounding toward Min.
func (b AABB) Center() Point {
	return Point{X: b.Min.X + (b.Width()-1)/2, Y: b.Min.Y + (b.Height()-1)/2}
}

// Empty reports whether the box covers no cells.
func (b AABB) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

// Translate returns the box moved by d.
func (b AABB) Translate(d Point) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Shrink returns the box with n cells removed from every side.
func (b AABB) Shrink(n int) AABB {
	return AABB{
		Min: Point{b.Min.X + n, b.Min.Y + n},
		Max: Point{b.Max.X - n, b.Max.Y - n},
	}
}

// Contains reports whether p lies inside the box.
func (b AABB) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// ContainsBox reports whether o lies entirely inside b.
func (b AABB) ContainsBox(o AABB) bool {
	return o.Min.X >= b.Min.X && o.Min.Y >= b.Min.Y && o.Max.X <= b.Max.X && o.Max.Y <= b.Max.Y
}

// Overlaps reports whether the two boxes share at least one cell.
func (b AABB) Overlaps(o AABB) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

func (b AABB) String() string {
	return fmt.Sprintf("[%v-%v)", b.Min, b.Max)
}

// IsCorner reports whether p is one of the four corner cells of b.
func (b AABB) IsCorner(p Point) bool {
	return (p.X == b.Min.X || p.X == b.Max.X-1) && (p.Y == b.Min.Y || p.Y == b.Max.Y-1)
}

// IsBorder reports whether p lies on the outermost ring of b.
func (b AABB) IsBorder(p Point) bool {
	if !b.Contains(p) {
		return false
	}
	return p.X == b.Min.X || p.X == b.Max.X-1 || p.Y == b.Min.Y || p.Y == b.Max.Y-1
}

// Outward returns the direction pointing away from b for a non-corner border
// cell. ok is false for corners and for cells not on the border.
func (b AABB) Outward(p Point) (dir Point, ok bool) {
	if !b.IsBorder(p) || b.IsCorner(p) {
		return Point{}, false
	}
	switch {
	case p.Y == b.Min.Y:
		return North, true
	case p.Y == b.Max.Y-1:
		return South, true
	case p.X == b.Min.X:
		return West, true
	default:
		return East, true
	}
}

// Scan returns every cell of b in row-major order.
func (b AABB) Scan() []Point {
	if b.Empty() {
		return nil
	}
	points := make([]Point, 0, b.Width()*b.Height())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			points = append(points, Point{x, y})
		}
	}
	return points
}

// ScanBorder returns the outermost ring of b, corners included, in row-major order.
func (b AABB) ScanBorder() []Point {
	var points []Point
	for _, p := range b.Scan() {
		if b.IsBorder(p) {
			points = append(points, p)
		}
	}
	return points
}

// ScanEdge returns the border cells of b that are not corners.
func (b AABB) ScanEdge() []Point {
	var points []Point
	for _, p := range b.ScanBorder() {
		if !b.IsCorner(p) {
			points = append(points, p)
		}
	}
	return points
}

// Corners returns the four corner cells of b.
func (b AABB) Corners() [4]Point {
	return [4]Point{
		b.Min,
		{b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1},
		{b.Max.X - 1, b.Max.Y - 1},
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
