package geom

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is a best-fit plane with an orthonormal in-plane basis. Projection
// onto (U, V) and lifting back are exact inverses for on-plane points, so
// 2D boolean results map back to 3D without drift.
type Plane struct {
	Normal r3.Vec // unit normal
	Origin r3.Vec // centroid of the defining polygon
	U, V   r3.Vec // in-plane basis; (U, V, Normal) is right-handed
}

// FitPlane computes the best-fit plane of a polygon by Newell's method.
func FitPlane(p Polygon) (Plane, error) {
	n, err := p.Normal()
	if err != nil {
		return Plane{}, err
	}
	// Seed the basis with the world axis least aligned with the normal.
	seed := r3.Vec{X: 1}
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay <= ax && ay <= az {
		seed = r3.Vec{Y: 1}
	} else if az <= ax && az <= ay {
		seed = r3.Vec{Z: 1}
	}
	u := r3.Unit(r3.Cross(seed, n))
	v := r3.Cross(n, u)
	return Plane{Normal: n, Origin: p.Centroid(), U: u, V: v}, nil
}

// DistanceTo returns the signed distance from a point to the plane.
func (pl Plane) DistanceTo(pt r3.Vec) float64 {
	return r3.Dot(pl.Normal, r3.Sub(pt, pl.Origin))
}

// ProjectPoint maps a 3D point into plane coordinates.
func (pl Plane) ProjectPoint(pt r3.Vec) orb.Point {
	d := r3.Sub(pt, pl.Origin)
	return orb.Point{r3.Dot(d, pl.U), r3.Dot(d, pl.V)}
}

// Project maps a polygon into plane coordinates. With the right-handed
// (U, V, Normal) basis, a polygon whose normal agrees with the plane's
// projects to a counterclockwise (positive-area) ring.
func (pl Plane) Project(p Polygon) orb.Ring {
	ring := make(orb.Ring, len(p))
	for i, v := range p {
		ring[i] = pl.ProjectPoint(v)
	}
	return ring
}

// LiftPoint maps plane coordinates back to 3D.
func (pl Plane) LiftPoint(pt orb.Point) r3.Vec {
	return r3.Add(pl.Origin, r3.Add(r3.Scale(pt[0], pl.U), r3.Scale(pt[1], pl.V)))
}

// Lift maps a 2D ring back to a 3D polygon on the plane.
func (pl Plane) Lift(ring orb.Ring) Polygon {
	p := make(Polygon, len(ring))
	for i, pt := range ring {
		p[i] = pl.LiftPoint(pt)
	}
	return p
}
