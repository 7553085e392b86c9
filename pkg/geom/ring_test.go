package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func ccwSquare() orb.Ring {
	return orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
}

func TestRingAreaSigned(t *testing.T) {
	if a := RingArea(ccwSquare()); !almostEqual(a, 4, AreaEps) {
		t.Errorf("ccw area = %v, want 4", a)
	}
	cw := orb.Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	if a := RingArea(cw); !almostEqual(a, -4, AreaEps) {
		t.Errorf("cw area = %v, want -4", a)
	}
	if a := RingArea(orb.Ring{{0, 0}, {1, 1}}); a != 0 {
		t.Errorf("degenerate area = %v, want 0", a)
	}
}

func TestPointInRing(t *testing.T) {
	r := ccwSquare()
	if !PointInRing(orb.Point{1, 1}, r) {
		t.Error("expected center inside")
	}
	if PointInRing(orb.Point{3, 1}, r) {
		t.Error("expected outside point not inside")
	}
	if PointInRing(orb.Point{-0.1, 1}, r) {
		t.Error("expected outside point not inside")
	}
}

func TestRingCentroid(t *testing.T) {
	c := RingCentroid(ccwSquare())
	if !almostEqual(c[0], 1, CoordEps) || !almostEqual(c[1], 1, CoordEps) {
		t.Errorf("centroid = %v, want (1,1)", c)
	}

	// L shape of area 7: a 4x1 bar at (2, 0.5) plus a 1x3 bar at
	// (0.5, 2.5) give an area-weighted centroid of (9.5/7, 9.5/7).
	l := orb.Ring{{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 4}, {0, 4}}
	c = RingCentroid(l)
	if !almostEqual(c[0], 9.5/7, CoordEps) || !almostEqual(c[1], 9.5/7, CoordEps) {
		t.Errorf("L centroid = %v, want (%v, %v)", c, 9.5/7, 9.5/7)
	}
}

func TestSimpleRing(t *testing.T) {
	if !SimpleRing(ccwSquare()) {
		t.Error("square should be simple")
	}
	bowtie := orb.Ring{{0, 0}, {2, 2}, {2, 0}, {0, 2}}
	if SimpleRing(bowtie) {
		t.Error("bowtie should not be simple")
	}
	if SimpleRing(orb.Ring{{0, 0}, {1, 1}}) {
		t.Error("two points should not be simple")
	}
	concave := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {2, 1}, {0, 4}}
	if !SimpleRing(concave) {
		t.Error("concave ring should be simple")
	}
}
