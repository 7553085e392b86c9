package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chazu/zonal/pkg/geom"
)

// Model is the in-memory building object store. Enumeration order is
// insertion order, so repeated runs over the same model are deterministic.
// Model is not safe for concurrent mutation; callers serialize access.
type Model struct {
	zones     map[string]*Zone
	zoneOrder []string

	surfaces     map[string]*Surface
	surfaceOrder []string

	windows     map[string]*Window
	windowOrder []string
}

// New creates an empty Model.
func New() *Model {
	return &Model{
		zones:    make(map[string]*Zone),
		surfaces: make(map[string]*Surface),
		windows:  make(map[string]*Window),
	}
}

// AddZone registers a zone. Zone names are unique.
func (m *Model) AddZone(z *Zone) error {
	if _, exists := m.zones[z.Name]; exists {
		return fmt.Errorf("zone %q already exists", z.Name)
	}
	m.zones[z.Name] = z
	m.zoneOrder = append(m.zoneOrder, z.Name)
	return nil
}

// Zone returns the zone with the given name, or nil.
func (m *Model) Zone(name string) *Zone {
	return m.zones[name]
}

// Zones returns all zones in creation order.
func (m *Model) Zones() []*Zone {
	out := make([]*Zone, 0, len(m.zoneOrder))
	for _, name := range m.zoneOrder {
		out = append(out, m.zones[name])
	}
	return out
}

// AddSurface stores a surface, assigning a fresh ID if it has none.
func (m *Model) AddSurface(s *Surface) *Surface {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.surfaces[s.ID] = s
	m.surfaceOrder = append(m.surfaceOrder, s.ID)
	return s
}

// Surface returns the surface with the given ID, or nil.
func (m *Model) Surface(id string) *Surface {
	return m.surfaces[id]
}

// SurfaceByName returns the first surface with the given display name, or nil.
func (m *Model) SurfaceByName(name string) *Surface {
	for _, id := range m.surfaceOrder {
		if s := m.surfaces[id]; s.Name == name {
			return s
		}
	}
	return nil
}

// Surfaces returns all surfaces in creation order.
func (m *Model) Surfaces() []*Surface {
	out := make([]*Surface, 0, len(m.surfaceOrder))
	for _, id := range m.surfaceOrder {
		out = append(out, m.surfaces[id])
	}
	return out
}

// SurfacesInZone returns the surfaces owned by the named zone.
func (m *Model) SurfacesInZone(zone string) []*Surface {
	var out []*Surface
	for _, id := range m.surfaceOrder {
		if s := m.surfaces[id]; s.Zone == zone {
			out = append(out, s)
		}
	}
	return out
}

// RemoveSurface deletes a surface from the store.
func (m *Model) RemoveSurface(id string) {
	if _, ok := m.surfaces[id]; !ok {
		return
	}
	delete(m.surfaces, id)
	for i, sid := range m.surfaceOrder {
		if sid == id {
			m.surfaceOrder = append(m.surfaceOrder[:i], m.surfaceOrder[i+1:]...)
			break
		}
	}
}

// SplitSurface replaces a surface with child surfaces covering the given
// polygons. Children inherit the parent's zone and type, get fresh
// identity and "<parent>_<n>" display names, and start with an unresolved
// boundary condition. The parent record is removed.
func (m *Model) SplitSurface(parentID string, polygons []geom.Polygon) []*Surface {
	parent := m.surfaces[parentID]
	if parent == nil || len(polygons) == 0 {
		return nil
	}
	children := make([]*Surface, 0, len(polygons))
	for i, poly := range polygons {
		child := &Surface{
			Name:    fmt.Sprintf("%s_%d", parent.Name, i+1),
			Zone:    parent.Zone,
			Type:    parent.Type,
			Polygon: poly,
		}
		children = append(children, m.AddSurface(child))
	}
	m.RemoveSurface(parentID)
	return children
}

// AddWindow stores a window subsurface, assigning a fresh ID if needed.
func (m *Model) AddWindow(w *Window) *Window {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	m.windows[w.ID] = w
	m.windowOrder = append(m.windowOrder, w.ID)
	return w
}

// Windows returns all window subsurfaces in creation order.
func (m *Model) Windows() []*Window {
	out := make([]*Window, 0, len(m.windowOrder))
	for _, id := range m.windowOrder {
		out = append(out, m.windows[id])
	}
	return out
}

// RemoveWindowsOn deletes all windows hosted on the given surface.
func (m *Model) RemoveWindowsOn(wallID string) {
	kept := m.windowOrder[:0]
	for _, id := range m.windowOrder {
		if m.windows[id].Wall == wallID {
			delete(m.windows, id)
			continue
		}
		kept = append(kept, id)
	}
	m.windowOrder = kept
}
