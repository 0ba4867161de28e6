package geom

import (
	"math"
	"testing"
)

func absArea(p Polygon) float64 {
	return math.Abs(p.Area())
}

func TestCombineRectangles(t *testing.T) {
	a := Polygon{Rect(0, 0, 10, 10)}
	b := Polygon{Rect(5, 0, 15, 10)}

	tests := []struct {
		name     string
		op       Op
		wantArea float64
	}{
		{name: "union", op: OpUnion, wantArea: 150},
		{name: "intersection", op: OpIntersection, wantArea: 50},
		{name: "difference", op: OpDifference, wantArea: 50},
		{name: "xor", op: OpXOR, wantArea: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Combine(a, b, tt.op)
			if err != nil {
				t.Fatalf("Combine: %v", err)
			}
			if area := absArea(got); math.Abs(area-tt.wantArea) > 1e-6 {
				t.Errorf("area = %v, want %v", area, tt.wantArea)
			}
		})
	}
}

func TestCombineDifferenceWithHole(t *testing.T) {
	outer := Polygon{Rect(0, 0, 100, 100)}
	inner := Polygon{Rect(40, 40, 60, 60)}

	got, err := Combine(outer, inner, OpDifference)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected outer boundary plus hole, got %d rings", len(got))
	}
	if area := absArea(got); math.Abs(area-9600) > 1e-6 {
		t.Errorf("net area = %v, want 9600", area)
	}
}

func TestCombineEmptyOperands(t *testing.T) {
	a := Polygon{Rect(0, 0, 4, 4)}

	got, err := Combine(a, nil, OpUnion)
	if err != nil {
		t.Fatalf("union with empty: %v", err)
	}
	if math.Abs(absArea(got)-16) > 1e-9 {
		t.Errorf("union with empty changed area: %v", absArea(got))
	}

	got, err = Combine(nil, a, OpUnion)
	if err != nil {
		t.Fatalf("union with empty lhs: %v", err)
	}
	if math.Abs(absArea(got)-16) > 1e-9 {
		t.Errorf("union with empty lhs changed area: %v", absArea(got))
	}

	got, err = Combine(a, nil, OpDifference)
	if err != nil {
		t.Fatalf("difference with empty: %v", err)
	}
	if math.Abs(absArea(got)-16) > 1e-9 {
		t.Errorf("difference with empty changed area: %v", absArea(got))
	}
}

func TestCombineDisjointDifferenceIsNoop(t *testing.T) {
	a := Polygon{Rect(0, 0, 2, 2)}
	b := Polygon{Rect(10, 10, 12, 12)}
	got, err := Combine(a, b, OpDifference)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if math.Abs(absArea(got)-4) > 1e-9 {
		t.Errorf("area = %v, want 4", absArea(got))
	}
}

func TestUnionReduction(t *testing.T) {
	// Five unit squares in a disjoint row plus one overlapping square.
	var polys []Polygon
	for i := 0; i < 5; i++ {
		x := float64(i * 3)
		polys = append(polys, Polygon{Rect(x, 0, x+1, 1)})
	}
	polys = append(polys, Polygon{Rect(0.5, 0, 1.5, 1)})

	got, err := Union(polys)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	// 5 disjoint squares + half a square of new coverage.
	if area := absArea(got); math.Abs(area-5.5) > 1e-6 {
		t.Errorf("union area = %v, want 5.5", area)
	}
}

func TestUnionOfNothing(t *testing.T) {
	got, err := Union(nil)
	if err != nil {
		t.Fatalf("Union(nil): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Union(nil) = %v, want empty", got)
	}
}

func TestRingArea(t *testing.T) {
	ccw := Rect(0, 0, 2, 3)
	if got := ccw.Area(); math.Abs(got-6) > 1e-12 {
		t.Errorf("ccw area = %v, want 6", got)
	}
	cw := Ring{{0, 0}, {0, 3}, {2, 3}, {2, 0}}
	if got := cw.Area(); math.Abs(got+6) > 1e-12 {
		t.Errorf("cw area = %v, want -6", got)
	}
}
