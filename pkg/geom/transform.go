package geom

// Transform is a rigid or reflective map of the chip plane: an optional
// mirror across the x axis, followed by a counterclockwise rotation by
// quarter turns, followed by a translation. This is the exact set of
// placements the layout needs (device mirroring across the feedline axis
// and 180-degree launcher rotation), and restricting rotation to quarter
// turns keeps coordinates exact under composition and inversion.
type Transform struct {
	Dx, Dy float64 // translation, applied last
	Rot    int     // counterclockwise quarter turns, normalized to 0..3
	Mirror bool    // reflect across the x axis (y negated), applied first
}

// Identity is the do-nothing transform.
var Identity = Transform{}

// Translate returns a pure translation by (dx, dy).
func Translate(dx, dy float64) Transform { return Transform{Dx: dx, Dy: dy} }

// Rotate returns a pure rotation by the given number of counterclockwise
// quarter turns. Negative counts rotate clockwise.
func Rotate(quarters int) Transform { return Transform{Rot: modq(quarters)} }

// MirrorX returns a pure reflection across the x axis.
func MirrorX() Transform { return Transform{Mirror: true} }

// modq normalizes a quarter-turn count to 0..3.
func modq(k int) int { return ((k % 4) + 4) % 4 }

// rotq rotates p counterclockwise by k quarter turns.
func rotq(k int, p Point) Point {
	switch modq(k) {
	case 1:
		return Point{-p.Y, p.X}
	case 2:
		return Point{-p.X, -p.Y}
	case 3:
		return Point{p.Y, -p.X}
	default:
		return p
	}
}

// Apply maps a point through the transform: mirror, rotate, translate.
func (t Transform) Apply(p Point) Point {
	if t.Mirror {
		p.Y = -p.Y
	}
	p = rotq(t.Rot, p)
	return Point{p.X + t.Dx, p.Y + t.Dy}
}

// ApplyRing maps every vertex of a ring, returning a new ring. A mirror
// reverses the vertex order so that orientation is preserved: outer rings
// stay counterclockwise and holes stay clockwise.
func (t Transform) ApplyRing(r Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		j := i
		if t.Mirror {
			j = len(r) - 1 - i
		}
		out[j] = t.Apply(p)
	}
	return out
}

// ApplyPolygon maps every ring of a polygon, returning a new polygon.
func (t Transform) ApplyPolygon(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, r := range p {
		out[i] = t.ApplyRing(r)
	}
	return out
}

// Then returns the composition "t, then u": applying the result equals
// applying t first and u second.
func (t Transform) Then(u Transform) Transform {
	a := t.Rot
	if u.Mirror {
		a = -a
	}
	d := u.Apply(Point{t.Dx, t.Dy})
	return Transform{
		Dx:     d.X,
		Dy:     d.Y,
		Rot:    modq(u.Rot + a),
		Mirror: t.Mirror != u.Mirror,
	}
}

// Invert returns the inverse transform, such that
// t.Invert().Apply(t.Apply(p)) == p exactly.
func (t Transform) Invert() Transform {
	// (R_a M_m)^-1 = M_m R_-a = R_c M_m with c = a when mirrored, -a otherwise.
	c := -t.Rot
	if t.Mirror {
		c = t.Rot
	}
	inv := Transform{Rot: modq(c), Mirror: t.Mirror}
	d := inv.Apply(Point{t.Dx, t.Dy})
	inv.Dx, inv.Dy = -d.X, -d.Y
	return inv
}

// IsIdentity reports whether the transform maps every point to itself.
func (t Transform) IsIdentity() bool {
	return t == Transform{}
}
