// Package model defines the building object model edited by zonal:
// zones, the surfaces they own, and window subsurfaces. The Model type is
// the in-memory object store the geometry engines read from and write back
// into; parsing and serialization of simulation input files live outside
// this module and consume the same records.
package model

import "github.com/chazu/zonal/pkg/geom"

// SurfaceType classifies a building surface.
type SurfaceType int

const (
	Wall SurfaceType = iota
	Floor
	Ceiling
	Roof
)

func (t SurfaceType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Ceiling:
		return "ceiling"
	case Roof:
		return "roof"
	default:
		return "unknown"
	}
}

// BoundaryCondition classifies a surface's exterior context.
type BoundaryCondition int

const (
	// Unresolved means no boundary condition has been assigned yet.
	// Freshly created and freshly split surfaces start here.
	Unresolved BoundaryCondition = iota
	Outdoors
	Ground
	// SurfaceContact links the surface to a coincident partner surface
	// in another zone via BoundaryObject.
	SurfaceContact
	Adiabatic
)

func (b BoundaryCondition) String() string {
	switch b {
	case Unresolved:
		return "unresolved"
	case Outdoors:
		return "outdoors"
	case Ground:
		return "ground"
	case SurfaceContact:
		return "surface"
	case Adiabatic:
		return "adiabatic"
	default:
		return "unknown"
	}
}

// Surface is one polygonal building surface owned by a zone.
//
// BoundaryObject holds the ID of the matched partner surface rather than a
// pointer: the relation is cyclic (A targets B targets A) and surfaces must
// stay independently relocatable in the store.
type Surface struct {
	ID      string // stable identity, assigned by the store
	Name    string // display name, e.g. "Block b Storey 0 Wall 0001_2"
	Zone    string // owning zone name
	Type    SurfaceType
	Polygon geom.Polygon

	Boundary       BoundaryCondition
	BoundaryObject string // partner surface ID when Boundary is SurfaceContact
	SunExposed     bool
	WindExposed    bool
}

// Window is a subsurface hosted on a wall, created by the
// window-to-wall-ratio recipe.
type Window struct {
	ID      string
	Name    string
	Wall    string // host surface ID
	Polygon geom.Polygon
}
