package geom

// Shared numeric tolerances. Input is assumed to be in metres at building
// scale; callers working far from the origin should translate toward it
// first (see building.TranslateToOrigin).
const (
	// CoordEps is the tolerance for comparing individual coordinates.
	CoordEps = 1e-6

	// AreaEps is the minimum polygon area treated as non-trivial.
	// Boolean-operation results below this are discarded as slivers.
	AreaEps = 1e-6

	// AngleEps bounds the deviation of |n1 . n2| from 1 for two unit
	// normals considered parallel or antiparallel.
	AngleEps = 1e-6

	// DistEps is the tolerance for point-to-plane distances when testing
	// coplanarity.
	DistEps = 1e-4
)

// almostEqual reports whether two scalars differ by less than eps.
func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
