package geom

import (
	"iter"

	"honnef.co/go/curve"
)

// StrokeOutline expands a centerline path into the closed outline of a
// stroke of the given width, with butt caps and round joins, and flattens
// it into polygon rings. The tolerance bounds the deviation of the
// flattened outline from the true curve, in plane units.
func StrokeOutline(elements iter.Seq[curve.PathElement], width, tolerance float64) Polygon {
	stroked := curve.StrokePath(elements, curve.Stroke{
		Width:      width,
		Join:       curve.RoundJoin,
		StartCap:   curve.ButtCap,
		EndCap:     curve.ButtCap,
		MiterLimit: 4,
	}, curve.StrokeOpts{}, tolerance)
	return FromPathElements(stroked, tolerance)
}

// FromPathElements flattens a path-element sequence into polygon rings.
// Curved elements are subdivided to the given tolerance; each MoveTo starts
// a new ring and open trailing subpaths are closed implicitly. Rings with
// fewer than three distinct vertices are discarded.
func FromPathElements(seq iter.Seq[curve.PathElement], tolerance float64) Polygon {
	var poly Polygon
	var ring Ring

	flush := func() {
		// Drop an explicit closing vertex; rings close implicitly.
		if n := len(ring); n > 1 && ring[0] == ring[n-1] {
			ring = ring[:n-1]
		}
		if len(ring) >= 3 {
			poly = append(poly, ring)
		}
		ring = nil
	}

	for el := range curve.Flatten(seq, tolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			ring = Ring{Pt(el.P0.X, el.P0.Y)}
		case curve.LineToKind:
			ring = append(ring, Pt(el.P0.X, el.P0.Y))
		case curve.ClosePathKind:
			flush()
		}
	}
	flush()
	return poly
}
