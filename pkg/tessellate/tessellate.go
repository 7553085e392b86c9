// Package tessellate converts a finalized surface set into triangle
// meshes for the 3D viewer. One mesh is produced per surface and window;
// the tessellator is read-only and never mutates the model.
package tessellate

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/chazu/zonal/pkg/building"
	"github.com/chazu/zonal/pkg/geom"
)

// Tessellate walks every surface and window of a building and produces
// one triangle mesh per polygon. Degenerate polygons are skipped.
func Tessellate(b *building.Building) ([]*Mesh, error) {
	if b == nil {
		return nil, nil
	}

	var meshes []*Mesh
	for _, s := range b.Model().Surfaces() {
		mesh, err := surfaceMesh(s.Polygon, s.Name, s.Type.String(), s.Boundary.String())
		if err != nil {
			continue
		}
		meshes = append(meshes, mesh)
	}
	for _, w := range b.Model().Windows() {
		mesh, err := surfaceMesh(w.Polygon, w.Name, "window", "")
		if err != nil {
			continue
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// surfaceMesh triangulates one polygon via its plane projection.
func surfaceMesh(p geom.Polygon, name, surfaceType, boundary string) (*Mesh, error) {
	plane, err := geom.FitPlane(p)
	if err != nil {
		return nil, err
	}
	tris, err := earClip(plane.Project(p))
	if err != nil {
		return nil, fmt.Errorf("triangulating %s: %w", name, err)
	}

	mesh := &Mesh{
		SurfaceName: name,
		SurfaceType: surfaceType,
		Boundary:    boundary,
	}
	for _, v := range p {
		mesh.Vertices = append(mesh.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		mesh.Normals = append(mesh.Normals,
			float32(plane.Normal.X), float32(plane.Normal.Y), float32(plane.Normal.Z))
	}
	mesh.Indices = tris
	return mesh, nil
}

// earClip triangulates a simple ring by ear clipping, returning vertex
// indices into the original ring, three per triangle.
func earClip(ring orb.Ring) ([]uint32, error) {
	n := len(ring)
	if n < 3 {
		return nil, fmt.Errorf("ring has %d vertices", n)
	}

	// Work on a counterclockwise ordering of the remaining indices.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if geom.RingArea(ring) < 0 {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	var tris []uint32
	guard := 0
	for len(idx) > 3 {
		if guard++; guard > 2*n*n {
			return nil, fmt.Errorf("no ear found, ring may be non-simple")
		}
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(ring, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, uint32(prev), uint32(cur), uint32(next))
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("no ear found, ring may be non-simple")
		}
	}
	tris = append(tris, uint32(idx[0]), uint32(idx[1]), uint32(idx[2]))
	return tris, nil
}

// isEar reports whether the triangle (prev, cur, next) is convex and
// contains no other remaining vertex.
func isEar(ring orb.Ring, idx []int, prev, cur, next int) bool {
	a, b, c := ring[prev], ring[cur], ring[next]
	// Convex corner in a counterclockwise ordering.
	if (b[0]-a[0])*(c[1]-a[1])-(b[1]-a[1])*(c[0]-a[0]) <= 0 {
		return false
	}
	for _, i := range idx {
		if i == prev || i == cur || i == next {
			continue
		}
		if pointInTriangle(ring[i], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c orb.Point) bool {
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func sign(p, a, b orb.Point) float64 {
	return (p[0]-b[0])*(a[1]-b[1]) - (a[0]-b[0])*(p[1]-b[1])
}
