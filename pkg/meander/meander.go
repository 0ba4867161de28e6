// Package meander synthesizes coplanar-waveguide resonator geometry.
//
// Given a target electrical length, a fixed bend radius, and a fixed turn
// count, the synthesizer solves in closed form for the one free dimension
// (the uniform horizontal run length), traces the resulting serpentine
// centerline, and expands it into the dielectric cut region of a CPW trace:
// the outline of a wide stroke minus the outline of the center conductor.
//
// The length equation is
//
//	L = C + (T + 1/2)·π·r + (T - 1/2)·S
//
// where C is the straight coupling lead-in, T the turn count, r the bend
// radius, and S the solved run length. All T turns are U-turns (two quarter
// bends); one extra quarter bend after a half-length run terminates the path
// perpendicular to the feedline, where the end capacitor and the coupled
// element attach.
//
// The synthesis is deterministic: identical inputs yield identical vertex
// sequences.
package meander

import (
	"math"

	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// DefaultTolerance is the flattening tolerance, in micrometers, used when a
// Spec does not set one.
const DefaultTolerance = 0.01

// Spec holds the per-device parameters of one resonator.
type Spec struct {
	Length    float64 // target electrical length
	Lead      float64 // straight coupling lead-in along the feedline
	Radius    float64 // bend radius
	Turns     int     // number of U-turns (fixed across a chip)
	Width     float64 // center conductor width
	Gap       float64 // gap to the ground plane on each side
	CapLength float64 // end capacitor pad length
	Tolerance float64 // flattening tolerance; 0 selects DefaultTolerance
}

// Result is the synthesized resonator geometry, in the device-local frame:
// the lead-in starts at the origin heading in -x, the meander descends in
// -y, and the feedline runs parallel to the x axis above the origin.
type Result struct {
	Centerline *Path        // the meander centerline
	Segment    float64      // solved horizontal run length
	Dielectric geom.Polygon // region to subtract from the ground plane
	Anchor     geom.Point   // attachment point for the coupled element
}

// MinLength returns the minimum achievable target length for the given
// lead, radius, and turn count: the length at which the solved run length
// reaches zero.
func MinLength(lead, radius float64, turns int) float64 {
	return lead + (float64(turns)+0.5)*math.Pi*radius
}

// SolveSegment inverts the length equation for the uniform run length S.
// It returns an INFEASIBLE_GEOMETRY error when the target length does not
// admit a positive solution.
func SolveSegment(length, lead, radius float64, turns int) (float64, error) {
	if turns < 1 {
		return 0, errors.New(errors.ErrCodeInvalidConfig,
			"turn count must be at least 1, got %d", turns)
	}
	s := (length - lead - (float64(turns)+0.5)*math.Pi*radius) / (float64(turns) - 0.5)
	if s <= 0 {
		return 0, errors.New(errors.ErrCodeInfeasible,
			"target length %.4f is below the minimum %.4f for radius %.4f and %d turns (segment %.4f)",
			length, MinLength(lead, radius, turns), radius, turns, s)
	}
	return s, nil
}

// Trace builds the meander centerline for a solved run length. The path
// starts at the origin heading -x, alternates run direction every U-turn,
// and ends heading -y after a half-length final run.
func Trace(lead, radius, segment float64, turns int) *Path {
	tr := newTracer(geom.Pt(0, 0), geom.Pt(-1, 0))
	tr.line(lead)
	for i := 0; i < turns; i++ {
		turn := turnFor(tr.dir)
		tr.quarter(turn, radius)
		tr.quarter(turn, radius)
		if i < turns-1 {
			tr.line(segment)
		}
	}
	tr.line(segment / 2)
	tr.quarter(turnFor(tr.dir), radius)
	return &tr.path
}

// turnFor picks the bend direction that moves the serpentine toward -y from
// a horizontal heading: counterclockwise when heading -x, clockwise when
// heading +x.
func turnFor(dir geom.Point) int {
	if dir.X < 0 {
		return 1
	}
	return -1
}

// Synthesize solves, traces, and expands one resonator.
func Synthesize(s Spec) (*Result, error) {
	if s.Width <= 0 || s.Gap <= 0 || s.Radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"meander width, gap and radius must be positive (w=%v g=%v r=%v)",
			s.Width, s.Gap, s.Radius)
	}
	if s.Radius < s.Width/2+s.Gap {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"bend radius %v is smaller than the half stroke width %v",
			s.Radius, s.Width/2+s.Gap)
	}
	seg, err := SolveSegment(s.Length, s.Lead, s.Radius, s.Turns)
	if err != nil {
		return nil, err
	}
	tol := s.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	path := Trace(s.Lead, s.Radius, seg, s.Turns)

	outer := geom.StrokeOutline(path.Elements(), s.Width+2*s.Gap, tol)
	inner := geom.StrokeOutline(path.Elements(), s.Width, tol)
	diel, err := geom.Combine(outer, inner, geom.OpDifference)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "expanding meander stroke")
	}

	endDiel, err := endCapacitor(path.End(), s.Width, s.Gap, s.CapLength)
	if err != nil {
		return nil, err
	}
	diel, err = geom.Combine(diel, endDiel, geom.OpUnion)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "attaching end capacitor")
	}

	anchor := path.End().Add(geom.Pt(0, -(s.Width/2 + s.Gap)))
	return &Result{
		Centerline: path,
		Segment:    seg,
		Dielectric: diel,
		Anchor:     anchor,
	}, nil
}

// endCapacitor builds the open-end capacitor dielectric at the terminal
// point of a centerline that ends heading -y: an outer clearance rectangle
// minus the conductor pad, minus a correction rectangle that keeps the
// incoming trace channel open where the stroke's butt end meets the
// rectangle.
func endCapacitor(end geom.Point, w, g, capLen float64) (geom.Polygon, error) {
	if capLen < w {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"end capacitor length %v must be at least the conductor width %v", capLen, w)
	}
	outer := geom.Polygon{geom.Rect(
		end.X-capLen/2-g, end.Y-w-g,
		end.X+capLen/2+g, end.Y+g,
	)}
	pad := geom.Polygon{geom.Rect(
		end.X-capLen/2, end.Y-w,
		end.X+capLen/2, end.Y,
	)}
	// The stroke dielectric stops at the butt cap; without this cut the
	// outer rectangle would sever the conductor where it enters the pad.
	channel := geom.Polygon{geom.Rect(
		end.X-w/2, end.Y,
		end.X+w/2, end.Y+g,
	)}

	diel, err := geom.Combine(outer, pad, geom.OpDifference)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "end capacitor pad cut")
	}
	diel, err = geom.Combine(diel, channel, geom.OpDifference)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "end capacitor channel cut")
	}
	return diel, nil
}
