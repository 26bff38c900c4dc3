// Package geometry provides the vector math used by the layout engine.
package geometry

import (
	"math"

	"metromap/core"
)

// Epsilon is the tolerance used when comparing near-zero quantities.
const Epsilon = 1e-9

// Add returns a + b.
func Add(a, b core.Point) core.Point {
	return core.Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func Sub(a, b core.Point) core.Point {
	return core.Point{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns v scaled by s.
func Scale(v core.Point, s float64) core.Point {
	return core.Point{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of a and b.
func Dot(a, b core.Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the 2D cross product (z component) of a and b.
func Cross(a, b core.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Length returns the magnitude of v.
func Length(v core.Point) float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b core.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Normalize returns v scaled to unit length, or the zero vector when v
// is shorter than Epsilon.
func Normalize(v core.Point) core.Point {
	l := Length(v)
	if l < Epsilon {
		return core.Point{}
	}
	return core.Point{X: v.X / l, Y: v.Y / l}
}

// Normal returns the unit normal of v, rotated 90 degrees
// counter-clockwise in screen coordinates. Zero vectors map to zero.
func Normal(v core.Point) core.Point {
	n := Normalize(v)
	return core.Point{X: -n.Y, Y: n.X}
}

// LineIntersection intersects the infinite line through p1 with
// direction d1 and the infinite line through p2 with direction d2.
// The second return value is false when the lines are parallel or a
// direction is degenerate.
func LineIntersection(p1, d1, p2, d2 core.Point) (core.Point, bool) {
	denom := Cross(d1, d2)
	if math.Abs(denom) < Epsilon {
		return core.Point{}, false
	}
	t := Cross(Sub(p2, p1), d2) / denom
	return Add(p1, Scale(d1, t)), true
}

// IsHorizontal reports whether v is horizontal within tol.
func IsHorizontal(v core.Point, tol float64) bool {
	return math.Abs(v.Y) <= tol
}

// IsVertical reports whether v is vertical within tol.
func IsVertical(v core.Point, tol float64) bool {
	return math.Abs(v.X) <= tol
}

// IsDiagonal reports whether v lies on a 45-degree diagonal within tol.
func IsDiagonal(v core.Point, tol float64) bool {
	return math.Abs(math.Abs(v.X)-math.Abs(v.Y)) <= tol
}

// IsOctolinear reports whether v is horizontal, vertical or diagonal
// within tol.
func IsOctolinear(v core.Point, tol float64) bool {
	return IsHorizontal(v, tol) || IsVertical(v, tol) || IsDiagonal(v, tol)
}
