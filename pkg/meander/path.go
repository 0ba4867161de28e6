package meander

import (
	"iter"
	"math"

	"honnef.co/go/curve"

	"github.com/quantafab/maskgen/pkg/geom"
)

// kappa is the control-point distance factor that makes a single cubic
// Bézier the best approximation of a quarter circle.
const kappa = 0.5519150244935105707435627

// SegKind discriminates centerline segments.
type SegKind int

const (
	SegLine SegKind = iota
	SegArc
)

// Segment is one leg of a centerline: a straight line to To, or a
// quarter-circle bend represented by a single cubic Bézier.
type Segment struct {
	Kind   SegKind
	To     geom.Point
	C1, C2 geom.Point // cubic control points, arcs only
	Radius float64    // arcs only
	Sweep  float64    // signed sweep in radians, arcs only
}

// Path is an open centerline polyline with circular-bend corners. It owns
// its segment slice; callers must not mutate it after synthesis.
type Path struct {
	Start geom.Point
	Segs  []Segment
}

// End returns the terminal point of the path.
func (p *Path) End() geom.Point {
	if len(p.Segs) == 0 {
		return p.Start
	}
	return p.Segs[len(p.Segs)-1].To
}

// Length returns the exact rectified length of the centerline: straight
// segments contribute their Euclidean length, bends their analytic arc
// length |sweep|*radius. The Bézier approximation used for rendering does
// not enter the length accounting.
func (p *Path) Length() float64 {
	var sum float64
	prev := p.Start
	for _, s := range p.Segs {
		switch s.Kind {
		case SegLine:
			sum += prev.Dist(s.To)
		case SegArc:
			sum += math.Abs(s.Sweep) * s.Radius
		}
		prev = s.To
	}
	return sum
}

// Elements yields the centerline as curve path elements: a MoveTo followed
// by LineTo and CubicTo commands.
func (p *Path) Elements() iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		if !yield(curve.PathElement{Kind: curve.MoveToKind, P0: cpt(p.Start)}) {
			return
		}
		for _, s := range p.Segs {
			var el curve.PathElement
			switch s.Kind {
			case SegLine:
				el = curve.PathElement{Kind: curve.LineToKind, P0: cpt(s.To)}
			case SegArc:
				el = curve.PathElement{
					Kind: curve.CubicToKind,
					P0:   cpt(s.C1),
					P1:   cpt(s.C2),
					P2:   cpt(s.To),
				}
			}
			if !yield(el) {
				return
			}
		}
	}
}

func cpt(p geom.Point) curve.Point {
	return curve.Point{X: p.X, Y: p.Y}
}

// tracer emits a path with a position/heading pen. Headings are restricted
// to the four axis directions, which is all a meander needs.
type tracer struct {
	path Path
	pos  geom.Point
	dir  geom.Point // unit axis vector
}

func newTracer(start, dir geom.Point) *tracer {
	return &tracer{path: Path{Start: start}, pos: start, dir: dir}
}

// line advances the pen by d along the current heading.
func (t *tracer) line(d float64) {
	t.pos = t.pos.Add(t.dir.Mul(d))
	t.path.Segs = append(t.path.Segs, Segment{Kind: SegLine, To: t.pos})
}

// quarter emits a quarter-circle bend of radius r. turn is +1 for a
// counterclockwise bend, -1 for clockwise; the heading rotates with it.
func (t *tracer) quarter(turn int, r float64) {
	next := geom.Point{X: -float64(turn) * t.dir.Y, Y: float64(turn) * t.dir.X}
	end := t.pos.Add(t.dir.Mul(r)).Add(next.Mul(r))
	t.path.Segs = append(t.path.Segs, Segment{
		Kind:   SegArc,
		To:     end,
		C1:     t.pos.Add(t.dir.Mul(kappa * r)),
		C2:     end.Sub(next.Mul(kappa * r)),
		Radius: r,
		Sweep:  float64(turn) * math.Pi / 2,
	})
	t.pos = end
	t.dir = next
}
