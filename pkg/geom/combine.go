package geom

import (
	polyclip "github.com/ctessum/polyclip-go"

	"github.com/quantafab/maskgen/pkg/errors"
)

// Op selects a boolean polygon combination.
type Op int

const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
	OpXOR
)

// String returns the lowercase operation name.
func (op Op) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	case OpXOR:
		return "xor"
	default:
		return "unknown"
	}
}

// degenerateArea is the threshold below which a result ring is considered
// a numerical sliver and dropped.
const degenerateArea = 1e-9

// Combine computes the boolean combination of two polygons using the
// polyclip Vatti engine. Slivers with effectively zero area are removed
// from the result.
//
// A union of non-empty inputs that produces an empty or zero-area result
// indicates degenerate input geometry and is reported as a
// COMPOSITION_FAILED error; an empty difference or intersection is a valid
// outcome and returns the empty polygon.
func Combine(a, b Polygon, op Op) (Polygon, error) {
	// The clipper treats the empty polygon correctly for union and
	// difference, but skipping the call keeps those paths exact.
	switch {
	case len(a) == 0 && op == OpUnion:
		return b.Clone(), nil
	case len(b) == 0 && (op == OpUnion || op == OpDifference):
		return a.Clone(), nil
	}

	res := toClip(a).Construct(clipOp(op), toClip(b))
	out := fromClip(res)

	if op == OpUnion && len(a) > 0 && len(b) > 0 && len(out) == 0 {
		return nil, errors.New(errors.ErrCodeComposition,
			"union of non-empty polygons produced empty output")
	}
	return out, nil
}

// Union folds a list of polygons into their combined union.
// The fold is a balanced binary reduction, which keeps intermediate
// polygon sizes small for long negative lists.
func Union(polys []Polygon) (Polygon, error) {
	switch len(polys) {
	case 0:
		return nil, nil
	case 1:
		return polys[0].Clone(), nil
	}
	mid := len(polys) / 2
	left, err := Union(polys[:mid])
	if err != nil {
		return nil, err
	}
	right, err := Union(polys[mid:])
	if err != nil {
		return nil, err
	}
	return Combine(left, right, OpUnion)
}

func clipOp(op Op) polyclip.Op {
	switch op {
	case OpIntersection:
		return polyclip.INTERSECTION
	case OpDifference:
		return polyclip.DIFFERENCE
	case OpXOR:
		return polyclip.XOR
	default:
		return polyclip.UNION
	}
}

func toClip(p Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, len(p))
	for i, r := range p {
		c := make(polyclip.Contour, len(r))
		for j, pt := range r {
			c[j] = polyclip.Point{X: pt.X, Y: pt.Y}
		}
		out[i] = c
	}
	return out
}

func fromClip(p polyclip.Polygon) Polygon {
	var out Polygon
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		r := make(Ring, len(c))
		for j, pt := range c {
			r[j] = Point{pt.X, pt.Y}
		}
		if a := r.Area(); a < degenerateArea && a > -degenerateArea {
			continue
		}
		out = append(out, r)
	}
	return out
}
