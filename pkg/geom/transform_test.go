package geom

import (
	"math"
	"testing"
)

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   Point
		want Point
	}{
		{
			name: "identity",
			tr:   Identity,
			in:   Pt(3, 4),
			want: Pt(3, 4),
		},
		{
			name: "translate",
			tr:   Translate(10, -2),
			in:   Pt(1, 1),
			want: Pt(11, -1),
		},
		{
			name: "quarter turn",
			tr:   Rotate(1),
			in:   Pt(1, 0),
			want: Pt(0, 1),
		},
		{
			name: "half turn",
			tr:   Rotate(2),
			in:   Pt(2, 3),
			want: Pt(-2, -3),
		},
		{
			name: "negative quarter turn",
			tr:   Rotate(-1),
			in:   Pt(1, 0),
			want: Pt(0, -1),
		},
		{
			name: "mirror across x axis",
			tr:   MirrorX(),
			in:   Pt(5, 7),
			want: Pt(5, -7),
		},
		{
			name: "mirror then translate",
			tr:   Transform{Dx: 1, Dy: 2, Mirror: true},
			in:   Pt(0, 3),
			want: Pt(1, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// someTransforms is a representative sample of the placement group.
func someTransforms() []Transform {
	return []Transform{
		Identity,
		Translate(12.5, -3),
		Rotate(1),
		Rotate(2),
		Rotate(3),
		MirrorX(),
		{Dx: -700, Dy: 40, Mirror: true},
		{Dx: 3.25, Dy: 9, Rot: 2},
		{Dx: 1, Dy: 1, Rot: 3, Mirror: true},
	}
}

func TestTransformThenMatchesSequentialApply(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(-3, 7.5), Pt(2.25, -4)}
	for _, a := range someTransforms() {
		for _, b := range someTransforms() {
			c := a.Then(b)
			for _, p := range pts {
				want := b.Apply(a.Apply(p))
				got := c.Apply(p)
				if got != want {
					t.Fatalf("(%+v).Then(%+v).Apply(%v) = %v, want %v", a, b, p, got, want)
				}
			}
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 2), Pt(-6.5, 3), Pt(100, -41.75)}
	for _, tr := range someTransforms() {
		inv := tr.Invert()
		for _, p := range pts {
			got := inv.Apply(tr.Apply(p))
			if math.Abs(got.X-p.X) > 1e-12 || math.Abs(got.Y-p.Y) > 1e-12 {
				t.Errorf("%+v: round trip of %v gave %v", tr, p, got)
			}
		}
		// The composition must also reduce to the identity exactly.
		if id := tr.Then(inv); !id.IsIdentity() {
			t.Errorf("%+v.Then(inverse) = %+v, want identity", tr, id)
		}
	}
}

func TestMirrorIsInvolution(t *testing.T) {
	m := MirrorX()
	if got := m.Then(m); !got.IsIdentity() {
		t.Errorf("MirrorX twice = %+v, want identity", got)
	}
}

func TestApplyRingPreservesOrientation(t *testing.T) {
	// A 10x10 outer with a 2x2 hole; the hole ring runs clockwise.
	shape := Polygon{
		Rect(0, 0, 10, 10),
		{Pt(4, 4), Pt(4, 6), Pt(6, 6), Pt(6, 4)},
	}

	for _, tr := range someTransforms() {
		out := tr.ApplyPolygon(shape)
		if got := out[0].Area(); math.Abs(got-100) > 1e-9 {
			t.Errorf("%+v: outer area = %g, want 100", tr, got)
		}
		if got := out[1].Area(); math.Abs(got-(-4)) > 1e-9 {
			t.Errorf("%+v: hole area = %g, want -4", tr, got)
		}
	}
}

func TestMirroredCutSubtractsHoleCorrectly(t *testing.T) {
	cut := Polygon{
		Rect(0, 0, 10, 10),
		{Pt(4, 4), Pt(4, 6), Pt(6, 6), Pt(6, 4)},
	}
	background := Polygon{Rect(-20, -20, 20, 20)}

	metal, err := Combine(background, MirrorX().ApplyPolygon(cut), OpDifference)
	if err != nil {
		t.Fatal(err)
	}
	// 1600 minus the 96 actually covered by the cut; the hole stays metal.
	if got := metal.Area(); math.Abs(got-1504) > 1e-6 {
		t.Errorf("difference area = %g, want 1504", got)
	}
}

func TestApplyPolygonDoesNotAlias(t *testing.T) {
	in := Polygon{Rect(0, 0, 1, 1)}
	out := Translate(5, 5).ApplyPolygon(in)
	out[0][0] = Pt(99, 99)
	if in[0][0] != Pt(0, 0) {
		t.Error("ApplyPolygon must not share vertex storage with its input")
	}
}
