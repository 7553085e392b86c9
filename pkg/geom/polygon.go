package geom

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Polygon is an ordered, implicitly closed sequence of 3D vertices.
// Vertex winding determines the outward normal by the right-hand rule.
type Polygon []r3.Vec

// NewellNormal returns the unnormalised plane normal computed by Newell's
// method. Robust to the slight non-planarity of floating-point input; the
// magnitude is twice the polygon area.
func (p Polygon) NewellNormal() r3.Vec {
	var n r3.Vec
	for i, v := range p {
		w := p[(i+1)%len(p)]
		n.X += (v.Y - w.Y) * (v.Z + w.Z)
		n.Y += (v.Z - w.Z) * (v.X + w.X)
		n.Z += (v.X - w.X) * (v.Y + w.Y)
	}
	return n
}

// Normal returns the unit outward normal, or a DegeneratePolygonError if
// the vertices do not span a plane.
func (p Polygon) Normal() (r3.Vec, error) {
	if p.distinctVertexCount() < 3 {
		return r3.Vec{}, &DegeneratePolygonError{
			Reason:   "fewer than 3 distinct vertices",
			Vertices: len(p),
		}
	}
	n := p.NewellNormal()
	if r3.Norm(n) < AreaEps {
		return r3.Vec{}, &DegeneratePolygonError{
			Reason:   "vertices are collinear",
			Vertices: len(p),
		}
	}
	return r3.Unit(n), nil
}

// Area returns the polygon's unsigned area.
func (p Polygon) Area() float64 {
	return r3.Norm(p.NewellNormal()) / 2
}

// Centroid returns the mean of the vertices.
func (p Polygon) Centroid() r3.Vec {
	var c r3.Vec
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c = r3.Add(c, v)
	}
	return r3.Scale(1/float64(len(p)), c)
}

// Reversed returns a copy with opposite winding (flipped normal).
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Translated returns a copy moved by the given vector.
func (p Polygon) Translated(d r3.Vec) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = r3.Add(v, d)
	}
	return out
}

// RotatedZ returns a copy rotated about the +z axis by the given angle in
// radians, counterclockwise viewed from above.
func (p Polygon) RotatedZ(radians float64) Polygon {
	sin, cos := math.Sin(radians), math.Cos(radians)
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = r3.Vec{
			X: v.X*cos - v.Y*sin,
			Y: v.X*sin + v.Y*cos,
			Z: v.Z,
		}
	}
	return out
}

// Scaled returns a copy scaled by factor on the named axes ("x", "y", "z"
// in any combination, e.g. "xy").
func (p Polygon) Scaled(factor float64, axes string) Polygon {
	sx, sy, sz := 1.0, 1.0, 1.0
	if strings.Contains(axes, "x") {
		sx = factor
	}
	if strings.Contains(axes, "y") {
		sy = factor
	}
	if strings.Contains(axes, "z") {
		sz = factor
	}
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = r3.Vec{X: v.X * sx, Y: v.Y * sy, Z: v.Z * sz}
	}
	return out
}

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() (min, max r3.Vec) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return
}

// MinZ returns the lowest vertex elevation.
func (p Polygon) MinZ() float64 {
	min := math.Inf(1)
	for _, v := range p {
		min = math.Min(min, v.Z)
	}
	return min
}

// MaxZ returns the highest vertex elevation.
func (p Polygon) MaxZ() float64 {
	max := math.Inf(-1)
	for _, v := range p {
		max = math.Max(max, v.Z)
	}
	return max
}

// vecEqual reports whether two vertices coincide within CoordEps.
func vecEqual(a, b r3.Vec) bool {
	return almostEqual(a.X, b.X, CoordEps) &&
		almostEqual(a.Y, b.Y, CoordEps) &&
		almostEqual(a.Z, b.Z, CoordEps)
}

func (p Polygon) distinctVertexCount() int {
	n := 0
	for i, v := range p {
		dup := false
		for _, w := range p[:i] {
			if vecEqual(v, w) {
				dup = true
				break
			}
		}
		if !dup {
			n++
		}
	}
	return n
}

// CoincidentWith reports whether two polygons describe the same boundary,
// in either winding and starting from any vertex. Duplicate and collinear
// vertices do not count: a square with a midpoint on one edge is coincident
// with the plain square.
func (p Polygon) CoincidentWith(o Polygon) bool {
	a, b := p.canonical(), o.canonical()
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	return a.sameCycle(b) || a.sameCycle(b.Reversed())
}

// canonical drops consecutive duplicate vertices and vertices collinear
// with their neighbors, leaving the minimal description of the boundary.
func (p Polygon) canonical() Polygon {
	out := make(Polygon, 0, len(p))
	for _, v := range p {
		if len(out) > 0 && vecEqual(out[len(out)-1], v) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && vecEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	for changed := true; changed && len(out) > 3; {
		changed = false
		for i := range out {
			n := len(out)
			prev := out[(i-1+n)%n]
			next := out[(i+1)%n]
			cross := r3.Cross(r3.Sub(out[i], prev), r3.Sub(next, out[i]))
			if r3.Norm(cross) < AreaEps {
				out = append(out[:i], out[i+1:]...)
				changed = true
				break
			}
		}
	}
	return out
}

// sameCycle reports whether o is a rotation of p.
func (p Polygon) sameCycle(o Polygon) bool {
	n := len(p)
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if !vecEqual(p[i], o[(i+shift)%n]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// CoplanarWith reports whether two polygons lie on the same geometric
// plane: normals parallel or antiparallel within AngleEps, and each
// centroid within DistEps of the other's plane.
func (p Polygon) CoplanarWith(o Polygon) bool {
	np, err := p.Normal()
	if err != nil {
		return false
	}
	no, err := o.Normal()
	if err != nil {
		return false
	}
	dot := r3.Dot(np, no)
	if 1-math.Abs(dot) > AngleEps {
		return false
	}
	d := r3.Dot(np, r3.Sub(o.Centroid(), p.Centroid()))
	return math.Abs(d) < DistEps
}
