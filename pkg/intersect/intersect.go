package intersect

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/chazu/zonal/pkg/clip"
	"github.com/chazu/zonal/pkg/geom"
	"github.com/chazu/zonal/pkg/model"
)

// MaxGenerations bounds the split passes. Each pass only processes pairs
// made of surfaces that existed when the pass started, so a child surface
// created in pass N is first paired in pass N+1. Chains longer than this
// are reported rather than silently dropped.
const MaxGenerations = 10

// Intersect eliminates overlapping area between surfaces of different
// zones by splitting both members of each overlapping pair into
// coincident-boundary pieces. Children inherit the parent's zone and type
// and are re-indexed for further pairing; boundary conditions are left
// unresolved for Match. The surface set in m is rewritten in place.
func Intersect(m *model.Model, clipper clip.Clipper) []Diagnostic {
	return resolveOverlaps(m, clipper, MaxGenerations)
}

func resolveOverlaps(m *model.Model, clipper clip.Clipper, maxGenerations int) []Diagnostic {
	coll, diags := newCollection(m.Surfaces())

	// A skipped pair stays in the candidate set for every later pass;
	// its diagnostic is emitted once.
	seen := make(map[pair]bool)

	for gen := 0; gen < maxGenerations; gen++ {
		changed := false
		for _, p := range coll.candidatePairs() {
			a := m.Surface(p.a)
			b := m.Surface(p.b)
			if a == nil || b == nil {
				// Split away earlier in this pass.
				continue
			}
			split, diag := resolvePair(m, coll, clipper, a, b)
			if diag != nil && !seen[p] {
				seen[p] = true
				diags = append(diags, *diag)
			}
			if split {
				changed = true
			}
		}
		if !changed {
			return diags
		}
	}

	// Out of passes: report whatever would still split. Pairs whose
	// overlap covers both surfaces entirely are equal geometry, which is
	// matching's business, not an unresolved split.
	for _, p := range coll.candidatePairs() {
		a := m.Surface(p.a)
		b := m.Surface(p.b)
		if a == nil || b == nil {
			continue
		}
		area := overlapArea(clipper, a, b)
		if area <= geom.AreaEps {
			continue
		}
		if area >= a.Polygon.Area()-geom.AreaEps && area >= b.Polygon.Area()-geom.AreaEps {
			continue
		}
		diags = append(diags, Diagnostic{
			Kind:    MaxGenerationsExceeded,
			Surface: a.Name,
			Other:   b.Name,
			Message: fmt.Sprintf("overlap unresolved after %d passes", maxGenerations),
		})
	}
	return diags
}

// resolvePair intersects one candidate pair and splits either surface
// whose area is only partially covered by the overlap. Reports whether
// any split happened.
func resolvePair(m *model.Model, coll *collection, clipper clip.Clipper, a, b *model.Surface) (bool, *Diagnostic) {
	if !a.Polygon.CoplanarWith(b.Polygon) {
		return false, &Diagnostic{
			Kind:    NonCoplanarPairSkipped,
			Surface: a.Name,
			Other:   b.Name,
			Message: "surfaces are not coplanar within tolerance",
		}
	}

	// Work in A's plane. B is coplanar within tolerance, so projecting it
	// onto A's plane loses at most DistEps of offset.
	plane, err := geom.FitPlane(a.Polygon)
	if err != nil {
		return false, nil // excluded from the index already
	}
	ringA := plane.Project(a.Polygon)
	ringB := plane.Project(b.Polygon)

	overlap := clipper.Intersect(ringA, ringB)
	total := ringsArea(overlap)
	if total < geom.AreaEps {
		return false, nil // edge-only adjacency or no contact
	}

	splitA := splitIntoPieces(m, coll, clipper, a, plane, ringA, ringB, overlap)
	splitB := splitIntoPieces(m, coll, clipper, b, plane, ringB, ringA, overlap)
	return splitA || splitB, nil
}

// splitIntoPieces replaces s with overlap pieces plus remainder pieces
// when the overlap covers only part of s. Piece winding follows the
// parent's, so child normals keep pointing the way the parent's did.
func splitIntoPieces(m *model.Model, coll *collection, clipper clip.Clipper, s *model.Surface, plane geom.Plane, ring, other orb.Ring, overlap []orb.Ring) bool {
	area := math.Abs(geom.RingArea(ring))
	if ringsArea(overlap) >= area-geom.AreaEps {
		// Fully covered: s already coincides with the overlap.
		return false
	}
	remainder := clipper.Difference(ring, other)
	if len(remainder) == 0 {
		return false
	}

	ccw := geom.RingArea(ring) > 0
	pieces := make([]geom.Polygon, 0, len(overlap)+len(remainder))
	for _, r := range overlap {
		pieces = append(pieces, plane.Lift(orientRing(r, ccw)))
	}
	for _, r := range remainder {
		pieces = append(pieces, plane.Lift(orientRing(r, ccw)))
	}

	children := m.SplitSurface(s.ID, pieces)
	coll.remove(s.ID)
	for _, child := range children {
		// Children of a plane-fitting parent cannot be degenerate.
		_ = coll.insert(child)
	}
	return true
}

// overlapArea returns the projected overlap area of two surfaces, zero
// when they cannot be compared on a shared plane.
func overlapArea(clipper clip.Clipper, a, b *model.Surface) float64 {
	if !a.Polygon.CoplanarWith(b.Polygon) {
		return 0
	}
	plane, err := geom.FitPlane(a.Polygon)
	if err != nil {
		return 0
	}
	return ringsArea(clipper.Intersect(plane.Project(a.Polygon), plane.Project(b.Polygon)))
}

func ringsArea(rings []orb.Ring) float64 {
	total := 0.0
	for _, r := range rings {
		total += math.Abs(geom.RingArea(r))
	}
	return total
}

// orientRing returns r wound counterclockwise or clockwise as requested.
func orientRing(r orb.Ring, ccw bool) orb.Ring {
	if (geom.RingArea(r) > 0) == ccw {
		return r
	}
	rev := make(orb.Ring, len(r))
	for i, pt := range r {
		rev[len(r)-1-i] = pt
	}
	return rev
}
