// Package geom provides the planar geometry model for mask layouts.
//
// Coordinates are float64 pairs in a shared planar system with the origin at
// the chip center; the unit is the micrometer. The package provides:
//
//   - [Point], [Ring], and [Polygon] vertex containers
//   - [Transform], a rigid/reflective map built from translation,
//     quarter-turn rotation, and x-axis mirroring
//   - [Combine], boolean polygon combination backed by polyclip-go
//   - [FromPathElements], flattening of curve paths into polygon rings
//
// Every function returns new geometry; vertex slices are never shared between
// inputs and outputs.
package geom

import "math"

// Point is a coordinate pair in the chip plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{x, y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Ring is a closed contour. The edge from the last vertex back to the first
// is implicit; rings do not repeat their first vertex.
type Ring []Point

// Polygon is a set of rings. Ring orientation encodes solidity the way the
// boolean engine emits it: outer boundaries and holes are distinguished by
// winding. The zero value is the empty polygon.
type Polygon []Ring

// Rect returns a rectangular ring spanning [x0,x1] x [y0,y1].
// The corners are emitted counterclockwise. Reversed extents are normalized.
func Rect(x0, y0, x1, y1 float64) Ring {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// RectCentered returns a w-by-h rectangular ring centered on c.
func RectCentered(c Point, w, h float64) Ring {
	return Rect(c.X-w/2, c.Y-h/2, c.X+w/2, c.Y+h/2)
}

// Area returns the signed area of the ring (positive for counterclockwise
// winding), computed with the shoelace formula.
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	var sum float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the net signed area of the polygon: the sum of its rings'
// signed areas. For boolean-engine output, holes wind opposite to their
// outer boundary, so the net area is the covered area up to sign.
func (p Polygon) Area() float64 {
	var sum float64
	for _, r := range p {
		sum += r.Area()
	}
	return sum
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	for i, r := range p {
		out[i] = append(Ring(nil), r...)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the polygon.
// It returns zero points for an empty polygon.
func (p Polygon) Bounds() (min, max Point) {
	first := true
	for _, r := range p {
		for _, pt := range r {
			if first {
				min, max = pt, pt
				first = false
				continue
			}
			min.X = math.Min(min.X, pt.X)
			min.Y = math.Min(min.Y, pt.Y)
			max.X = math.Max(max.X, pt.X)
			max.Y = math.Max(max.Y, pt.Y)
		}
	}
	return min, max
}
