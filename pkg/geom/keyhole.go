package geom

import (
	"cmp"
	"math"
	"slices"
)

// Keyhole rewrites a polygon into simply connected rings. Each hole is
// joined to the ring that encloses it through a zero-width slit, the way
// mask formats without fill rules expect filled shapes to carry their
// holes. Outer rings stay counterclockwise; islands nested inside holes
// come out as rings of their own.
func Keyhole(p Polygon) []Ring {
	var outers []Ring
	var holes []Ring
	for _, r := range p {
		if len(r) < 3 {
			continue
		}
		if r.Area() >= 0 {
			outers = append(outers, slices.Clone(r))
		} else {
			holes = append(holes, r)
		}
	}
	if len(holes) == 0 {
		return outers
	}

	// Attach each hole to the smallest ring containing it, so that an
	// island-in-hole nesting pairs holes with their immediate enclosure.
	attached := make([][]Ring, len(outers))
	for _, h := range holes {
		best, bestArea := -1, math.Inf(1)
		for i, o := range outers {
			if a := o.Area(); a < bestArea && ringContains(o, h[0]) {
				best, bestArea = i, a
			}
		}
		if best >= 0 {
			attached[best] = append(attached[best], h)
		}
	}

	out := make([]Ring, len(outers))
	for i, o := range outers {
		// Rightmost holes merge first, so later slits terminate on
		// already-merged boundary when holes shadow each other.
		slices.SortFunc(attached[i], func(a, b Ring) int {
			return cmp.Compare(maxX(b), maxX(a))
		})
		for _, h := range attached[i] {
			o = slit(o, h)
		}
		out[i] = o
	}
	return out
}

// slit splices a clockwise hole into a counterclockwise ring through a
// doubled horizontal bridge from the hole's rightmost vertex to the
// nearest boundary point due east of it.
func slit(outer, hole Ring) Ring {
	hi := 0
	for i, p := range hole {
		if p.X > hole[hi].X {
			hi = i
		}
	}
	h := hole[hi]

	ei, bx := -1, math.Inf(1)
	for i, a := range outer {
		c := outer[(i+1)%len(outer)]
		if (a.Y > h.Y) == (c.Y > h.Y) {
			continue
		}
		x := a.X + (h.Y-a.Y)*(c.X-a.X)/(c.Y-a.Y)
		if x >= h.X && x < bx {
			ei, bx = i, x
		}
	}
	if ei < 0 {
		// Not enclosed by this ring after all; keep the ring as is.
		return outer
	}
	b := Point{bx, h.Y}

	merged := make(Ring, 0, len(outer)+len(hole)+3)
	merged = append(merged, outer[:ei+1]...)
	merged = append(merged, b)
	merged = append(merged, hole[hi:]...)
	merged = append(merged, hole[:hi+1]...)
	merged = append(merged, b)
	merged = append(merged, outer[ei+1:]...)
	return merged
}

// ringContains reports whether p lies inside r, by ray-casting parity.
func ringContains(r Ring, p Point) bool {
	in := false
	for i, a := range r {
		c := r[(i+1)%len(r)]
		if (a.Y > p.Y) == (c.Y > p.Y) {
			continue
		}
		if x := a.X + (p.Y-a.Y)*(c.X-a.X)/(c.Y-a.Y); x > p.X {
			in = !in
		}
	}
	return in
}

func maxX(r Ring) float64 {
	m := math.Inf(-1)
	for _, p := range r {
		m = math.Max(m, p.X)
	}
	return m
}
