// Package geom holds the float geometry shared by the simulation: points,
// velocities and axis-aligned entity rects.
package geom

import (
	"math"
	"math/rand"
)

// Vec2 is a 2D point or vector in world units.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector of v. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Toward returns a vector of length speed pointing from 'from' to 'to'.
func Toward(from, to Vec2, speed float64) Vec2 {
	return to.Sub(from).Normalize().Scale(speed)
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Pos  Vec2
	Size Vec2
}

func R(x, y, w, h float64) Rect { return Rect{Pos: Vec2{x, y}, Size: Vec2{w, h}} }

func (r Rect) Left() float64   { return r.Pos.X }
func (r Rect) Top() float64    { return r.Pos.Y }
func (r Rect) Right() float64  { return r.Pos.X + r.Size.X }
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Y }

func (r Rect) Center() Vec2 {
	return Vec2{r.Pos.X + r.Size.X/2, r.Pos.Y + r.Size.Y/2}
}

// Overlaps reports whether the interiors of r and o intersect.
// Rects that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// RandomPoint returns a uniformly distributed point inside r.
func (r Rect) RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{
		X: r.Pos.X + rng.Float64()*r.Size.X,
		Y: r.Pos.Y + rng.Float64()*r.Size.Y,
	}
}

// CenteredAt returns a rect of the given size whose center is c.
func CenteredAt(c Vec2, size Vec2) Rect {
	return Rect{Pos: Vec2{c.X - size.X/2, c.Y - size.Y/2}, Size: size}
}
