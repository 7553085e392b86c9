package geom

import "github.com/paulmach/orb"

// RingArea returns the signed shoelace area of an open 2D ring.
// Counterclockwise rings have positive area.
func RingArea(r orb.Ring) float64 {
	if len(r) < 3 {
		return 0
	}
	total := 0.0
	prev := r[len(r)-1]
	for _, pt := range r {
		total += prev[0]*pt[1] - prev[1]*pt[0]
		prev = pt
	}
	return total / 2
}

// PointInRing reports whether a point lies inside a ring, by ray casting.
// Points on the boundary may report either way; callers needing boundary
// semantics should test with an epsilon offset.
func PointInRing(pt orb.Point, r orb.Ring) bool {
	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		pi, pj := r[i], r[j]
		if (pi[1] > pt[1]) != (pj[1] > pt[1]) {
			x := (pj[0]-pi[0])*(pt[1]-pi[1])/(pj[1]-pi[1]) + pi[0]
			if pt[0] < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// RingCentroid returns the area-weighted centroid of a ring.
func RingCentroid(r orb.Ring) orb.Point {
	a := RingArea(r)
	if a == 0 {
		// Degenerate ring; fall back to the vertex mean.
		var c orb.Point
		for _, pt := range r {
			c[0] += pt[0]
			c[1] += pt[1]
		}
		n := float64(len(r))
		return orb.Point{c[0] / n, c[1] / n}
	}
	var cx, cy float64
	prev := r[len(r)-1]
	for _, pt := range r {
		cross := prev[0]*pt[1] - prev[1]*pt[0]
		cx += (prev[0] + pt[0]) * cross
		cy += (prev[1] + pt[1]) * cross
		prev = pt
	}
	return orb.Point{cx / (6 * a), cy / (6 * a)}
}

// SimpleRing reports whether an open ring is simple: no two non-adjacent
// edges intersect, and adjacent edges meet only at their shared vertex.
func SimpleRing(r orb.Ring) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := r[i], r[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (shared endpoint).
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := r[j], r[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// segmentsIntersect reports whether two closed segments share a point.
func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := cross2(q1, q2, p1)
	d2 := cross2(q1, q2, p2)
	d3 := cross2(p1, p2, q1)
	d4 := cross2(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if d2 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	return false
}

// cross2 returns the z component of (b-a) x (c-a).
func cross2(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment reports whether c, known collinear with a-b, lies on a-b.
func onSegment(a, b, c orb.Point) bool {
	return min2(a[0], b[0])-CoordEps <= c[0] && c[0] <= max2(a[0], b[0])+CoordEps &&
		min2(a[1], b[1])-CoordEps <= c[1] && c[1] <= max2(a[1], b[1])+CoordEps
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
