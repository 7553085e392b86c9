// Package polyclip implements the clip.Clipper interface using the
// github.com/ctessum/polyclip-go boolean clipping library.
package polyclip

import (
	"math"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"

	"github.com/chazu/zonal/pkg/clip"
	"github.com/chazu/zonal/pkg/geom"
)

// Compile-time interface check.
var _ clip.Clipper = (*Backend)(nil)

// maxCutDepth bounds the recursive hole-splitting passes. Alternating cut
// axes clear any realistic hole arrangement well before this.
const maxCutDepth = 16

// Backend implements clip.Clipper with polyclip-go.
type Backend struct{}

// New returns a new polyclip backend.
func New() *Backend {
	return &Backend{}
}

// Intersect returns the area common to a and b.
func (c *Backend) Intersect(a, b orb.Ring) []orb.Ring {
	return c.construct(polyclip.INTERSECTION, a, b)
}

// Difference returns the area of a not covered by b.
func (c *Backend) Difference(a, b orb.Ring) []orb.Ring {
	return c.construct(polyclip.DIFFERENCE, a, b)
}

// Union returns the combined area of a and b.
func (c *Backend) Union(a, b orb.Ring) []orb.Ring {
	return c.construct(polyclip.UNION, a, b)
}

func (c *Backend) construct(op polyclip.Op, a, b orb.Ring) []orb.Ring {
	result := toPolyclip(a).Construct(op, toPolyclip(b))
	return simplify(result, 0)
}

// toPolyclip converts an open orb ring to a single-contour polyclip
// polygon, normalized to counterclockwise winding.
func toPolyclip(r orb.Ring) polyclip.Polygon {
	contour := make(polyclip.Contour, len(r))
	if geom.RingArea(r) < 0 {
		for i, pt := range r {
			contour[len(r)-1-i] = polyclip.Point{X: pt[0], Y: pt[1]}
		}
	} else {
		for i, pt := range r {
			contour[i] = polyclip.Point{X: pt[0], Y: pt[1]}
		}
	}
	return polyclip.Polygon{contour}
}

func toRing(c polyclip.Contour) orb.Ring {
	ring := make(orb.Ring, len(c))
	for i, pt := range c {
		ring[i] = orb.Point{pt.X, pt.Y}
	}
	return ring
}

// simplify turns a raw clipping result into simple counterclockwise rings:
// slivers below the area epsilon are dropped, and contours nested inside
// another contour (holes) are eliminated by cutting the enclosing piece in
// two through the hole.
func simplify(p polyclip.Polygon, depth int) []orb.Ring {
	var rings []orb.Ring
	for _, contour := range p {
		r := toRing(contour)
		if math.Abs(geom.RingArea(r)) < geom.AreaEps {
			continue
		}
		rings = append(rings, r)
	}
	if len(rings) < 2 {
		return orientCCW(rings)
	}

	// Group rings into outers and the holes they enclose.
	holeOf := make([]int, len(rings)) // index of enclosing ring, or -1
	for i := range rings {
		holeOf[i] = -1
		for j := range rings {
			if i == j {
				continue
			}
			if math.Abs(geom.RingArea(rings[j])) <= math.Abs(geom.RingArea(rings[i])) {
				continue
			}
			if geom.PointInRing(geom.RingCentroid(rings[i]), rings[j]) {
				holeOf[i] = j
				break
			}
		}
	}

	var out []orb.Ring
	for j, outer := range rings {
		if holeOf[j] != -1 {
			continue // emitted as part of its enclosing piece
		}
		var holes []orb.Ring
		for i, r := range rings {
			if holeOf[i] == j {
				holes = append(holes, r)
			}
		}
		if len(holes) == 0 || depth >= maxCutDepth {
			out = append(out, outer)
			continue
		}
		out = append(out, cutThroughHole(outer, holes, depth)...)
	}
	return orientCCW(out)
}

// cutThroughHole splits a holed piece into two by clipping against
// half-planes through the first hole's centroid. The cut axis alternates
// with depth so non-convex holes cannot stall the recursion.
func cutThroughHole(outer orb.Ring, holes []orb.Ring, depth int) []orb.Ring {
	piece := make(polyclip.Polygon, 0, 1+len(holes))
	piece = append(piece, toPolyclip(outer)[0])
	for _, h := range holes {
		piece = append(piece, toPolyclip(h)[0])
	}

	c := geom.RingCentroid(holes[0])
	bound := outer.Bound()
	pad := 1.0 + bound.Max[0] - bound.Min[0] + bound.Max[1] - bound.Min[1]

	var lo, hi orb.Ring
	if depth%2 == 0 {
		// Vertical cut at x = c[0].
		lo = boxRing(bound.Min[0]-pad, bound.Min[1]-pad, c[0], bound.Max[1]+pad)
		hi = boxRing(c[0], bound.Min[1]-pad, bound.Max[0]+pad, bound.Max[1]+pad)
	} else {
		// Horizontal cut at y = c[1].
		lo = boxRing(bound.Min[0]-pad, bound.Min[1]-pad, bound.Max[0]+pad, c[1])
		hi = boxRing(bound.Min[0]-pad, c[1], bound.Max[0]+pad, bound.Max[1]+pad)
	}

	var out []orb.Ring
	out = append(out, simplify(piece.Construct(polyclip.INTERSECTION, toPolyclip(lo)), depth+1)...)
	out = append(out, simplify(piece.Construct(polyclip.INTERSECTION, toPolyclip(hi)), depth+1)...)
	return out
}

func boxRing(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY},
	}
}

func orientCCW(rings []orb.Ring) []orb.Ring {
	for i, r := range rings {
		if geom.RingArea(r) < 0 {
			rev := make(orb.Ring, len(r))
			for j, pt := range r {
				rev[len(r)-1-j] = pt
			}
			rings[i] = rev
		}
	}
	return rings
}
