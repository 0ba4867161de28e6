package geom

import (
	"math"
	"testing"
)

func TestKeyholeNoHoles(t *testing.T) {
	p := Polygon{Rect(0, 0, 10, 10), Rect(20, 0, 25, 5)}
	rings := Keyhole(p)
	if len(rings) != 2 {
		t.Fatalf("ring count = %d, want 2", len(rings))
	}
	for i, r := range rings {
		if r.Area() != p[i].Area() {
			t.Errorf("ring %d area = %g, want %g", i, r.Area(), p[i].Area())
		}
	}
}

func TestKeyholeSquareWithHole(t *testing.T) {
	p := Polygon{
		Rect(0, 0, 10, 10),
		{Pt(4, 4), Pt(4, 6), Pt(6, 6), Pt(6, 4)},
	}

	rings := Keyhole(p)
	if len(rings) != 1 {
		t.Fatalf("ring count = %d, want 1", len(rings))
	}
	merged := rings[0]
	if got := merged.Area(); math.Abs(got-96) > 1e-9 {
		t.Errorf("merged area = %g, want 96", got)
	}
	// The slit must carve the hole out of the filled interior.
	if ringContains(merged, Pt(5, 5)) {
		t.Error("hole interior still inside the merged ring")
	}
	if !ringContains(merged, Pt(1, 1)) {
		t.Error("solid interior no longer inside the merged ring")
	}
}

func TestKeyholeIslandInsideHole(t *testing.T) {
	p := Polygon{
		Rect(0, 0, 30, 30),
		{Pt(10, 10), Pt(10, 20), Pt(20, 20), Pt(20, 10)},
		Rect(13, 13, 17, 17),
	}

	rings := Keyhole(p)
	if len(rings) != 2 {
		t.Fatalf("ring count = %d, want 2", len(rings))
	}
	if got := rings[0].Area(); math.Abs(got-800) > 1e-9 {
		t.Errorf("enclosing ring area = %g, want 800", got)
	}
	if got := rings[1].Area(); math.Abs(got-16) > 1e-9 {
		t.Errorf("island area = %g, want 16", got)
	}
}
