// Package clip defines the abstract 2D boolean-operation interface.
// Backends (polyclip) provide the actual clipping behind this interface,
// so the rest of the system never depends on a particular clipping
// library's types or quirks.
package clip

import "github.com/paulmach/orb"

// Clipper performs boolean set operations on simple 2D polygons.
//
// Rings are open (the closing edge is implicit) and may be in either
// winding. Results are simple rings in counterclockwise winding: backends
// must split any polygon-with-hole result into simple pieces and discard
// near-zero-area slivers.
type Clipper interface {
	// Intersect returns the area common to a and b. May be empty, or
	// several disjoint pieces.
	Intersect(a, b orb.Ring) []orb.Ring

	// Difference returns the area of a not covered by b.
	Difference(a, b orb.Ring) []orb.Ring

	// Union returns the combined area of a and b.
	Union(a, b orb.Ring) []orb.Ring
}
