package intersect

import (
	"fmt"

	"github.com/chazu/zonal/pkg/clip"
	"github.com/chazu/zonal/pkg/geom"
	"github.com/chazu/zonal/pkg/model"
)

// Match assigns boundary conditions across the whole surface set. Every
// pair of surfaces in different zones with coincident polygons gets
// reciprocal surface links; everything else gets an exterior default from
// its type and elevation. Match reassigns every surface, so running it
// again on its own output changes nothing.
func Match(m *model.Model) []Diagnostic {
	var diags []Diagnostic
	surfaces := m.Surfaces()

	// Coincidence candidates per surface ID.
	partners := make(map[string][]string)
	for i, a := range surfaces {
		for _, b := range surfaces[i+1:] {
			if a.Zone == b.Zone {
				continue
			}
			if !a.Polygon.CoincidentWith(b.Polygon) {
				continue
			}
			partners[a.ID] = append(partners[a.ID], b.ID)
			partners[b.ID] = append(partners[b.ID], a.ID)
		}
	}

	for _, s := range surfaces {
		found := partners[s.ID]
		switch {
		case len(found) == 1 && len(partners[found[0]]) == 1:
			other := m.Surface(found[0])
			s.Boundary = model.SurfaceContact
			s.BoundaryObject = other.ID
			s.SunExposed = false
			s.WindExposed = false

		case len(found) > 1:
			// Duplicate coincident geometry; refuse to guess a partner.
			diags = append(diags, Diagnostic{
				Kind:    ConflictingMatch,
				Surface: s.Name,
				Message: fmt.Sprintf("coincident with %d surfaces", len(found)),
			})
			setOutdoors(s)

		default:
			// Either no partner, or the sole partner is itself
			// conflicted; fall back to exterior defaults.
			setUnmatchedDefault(s)
		}
	}
	return diags
}

// IntersectMatch runs Intersect and then Match over the model's surfaces.
// Idempotent: a second run over its own output produces no further splits
// and identical boundary assignments.
func IntersectMatch(m *model.Model, clipper clip.Clipper) []Diagnostic {
	diags := Intersect(m, clipper)
	return append(diags, Match(m)...)
}

func setOutdoors(s *model.Surface) {
	s.Boundary = model.Outdoors
	s.BoundaryObject = ""
	s.SunExposed = true
	s.WindExposed = true
}

func setGroundContact(s *model.Surface, b model.BoundaryCondition) {
	s.Boundary = b
	s.BoundaryObject = ""
	s.SunExposed = false
	s.WindExposed = false
}

// setUnmatchedDefault classifies a surface with no geometric partner by
// its type and position relative to grade (z = 0).
func setUnmatchedDefault(s *model.Surface) {
	switch s.Type {
	case model.Wall:
		if s.Polygon.MaxZ() <= geom.CoordEps {
			setGroundContact(s, model.Ground) // entirely below grade
		} else {
			setOutdoors(s)
		}
	case model.Roof:
		setOutdoors(s)
	case model.Floor:
		if s.Polygon.MinZ() <= geom.CoordEps {
			setGroundContact(s, model.Ground)
		} else {
			setGroundContact(s, model.Adiabatic)
		}
	case model.Ceiling:
		setGroundContact(s, model.Adiabatic)
	default:
		setOutdoors(s)
	}
}
