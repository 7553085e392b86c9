package intersect

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/zonal/pkg/geom"
	"github.com/chazu/zonal/pkg/model"
)

// R-tree branching factors.
const (
	rtreeMin = 8
	rtreeMax = 16
)

// looseAngleEps is the angular prefilter used when enumerating candidate
// pairs. It is deliberately wider than geom.AngleEps: the strict
// coplanarity test belongs to the intersection step, which reports
// borderline pairs instead of silently dropping them.
const looseAngleEps = 1e-2

// entry adapts a surface to rtreego.Spatial. Surfaces are planar, so the
// box is padded to keep every extent strictly positive.
type entry struct {
	surface *model.Surface
	rect    rtreego.Rect
}

func newEntry(s *model.Surface) *entry {
	min, max := s.Polygon.Bounds()
	lengths := []float64{
		max.X - min.X + 2*geom.DistEps,
		max.Y - min.Y + 2*geom.DistEps,
		max.Z - min.Z + 2*geom.DistEps,
	}
	rect, _ := rtreego.NewRect(rtreego.Point{
		min.X - geom.DistEps,
		min.Y - geom.DistEps,
		min.Z - geom.DistEps,
	}, lengths)
	return &entry{surface: s, rect: rect}
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// collection indexes surfaces by bounding box for candidate-pair pruning.
// Surfaces that cannot define a plane are excluded up front and reported.
type collection struct {
	tree    *rtreego.Rtree
	entries map[string]*entry    // surface ID -> entry
	normals map[string]r3.Vec    // surface ID -> unit normal
	order   []string             // insertion order, for determinism
}

func newCollection(surfaces []*model.Surface) (*collection, []Diagnostic) {
	c := &collection{
		tree:    rtreego.NewTree(3, rtreeMin, rtreeMax),
		entries: make(map[string]*entry),
		normals: make(map[string]r3.Vec),
	}
	var diags []Diagnostic
	for _, s := range surfaces {
		if err := c.insert(s); err != nil {
			diags = append(diags, Diagnostic{
				Kind:    DegenerateSurface,
				Surface: s.Name,
				Message: err.Error(),
			})
		}
	}
	return c, diags
}

func (c *collection) insert(s *model.Surface) error {
	n, err := s.Polygon.Normal()
	if err != nil {
		return err
	}
	e := newEntry(s)
	c.entries[s.ID] = e
	c.normals[s.ID] = n
	c.order = append(c.order, s.ID)
	c.tree.Insert(e)
	return nil
}

func (c *collection) remove(id string) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	c.tree.Delete(e)
	delete(c.entries, id)
	delete(c.normals, id)
	for i, sid := range c.order {
		if sid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// pair is an unordered candidate pair. a always sorts before b so each
// pair is emitted exactly once; the engine's behavior does not depend on
// which member is treated first.
type pair struct {
	a, b string
}

// candidatePairs enumerates surface pairs worth an intersection test:
// different zones, overlapping bounding boxes, and normals parallel or
// antiparallel within the loose prefilter.
func (c *collection) candidatePairs() []pair {
	seen := make(map[pair]bool)
	var pairs []pair
	for _, id := range c.order {
		e := c.entries[id]
		if e == nil {
			continue
		}
		for _, hit := range c.tree.SearchIntersect(e.rect) {
			other := hit.(*entry)
			oid := other.surface.ID
			if oid == id {
				continue
			}
			if other.surface.Zone == e.surface.Zone {
				continue
			}
			dot := r3.Dot(c.normals[id], c.normals[oid])
			if 1-math.Abs(dot) > looseAngleEps {
				continue
			}
			p := pair{a: id, b: oid}
			if p.b < p.a {
				p.a, p.b = p.b, p.a
			}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}
