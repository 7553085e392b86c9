// Package extrude synthesizes full zone geometry from a 2D footprint, a
// height and a storey count: one zone per storey with floor, ceiling or
// roof, and one wall per footprint edge.
package extrude

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/zonal/pkg/geom"
	"github.com/chazu/zonal/pkg/model"
)

// DefaultBelowGroundStoreyHeight is used when a block has below-ground
// storeys but no explicit storey height.
const DefaultBelowGroundStoreyHeight = 2.5

// ZoningPolicy selects how a block is subdivided into zones.
type ZoningPolicy int

const (
	// ZoneByStorey creates one zone per storey.
	ZoneByStorey ZoningPolicy = iota
)

func (z ZoningPolicy) String() string {
	switch z {
	case ZoneByStorey:
		return "by_storey"
	default:
		return "unknown"
	}
}

// BlockOpts describes one block to extrude. The footprint is an open 2D
// ring in either winding; it is normalized to counterclockwise so wall
// normals point outward.
type BlockOpts struct {
	Name                    string
	Footprint               orb.Ring
	Height                  float64 // total above-ground height
	NumStoreys              int     // total storeys, including below-ground
	BelowGroundStoreys      int
	BelowGroundStoreyHeight float64 // 0 means DefaultBelowGroundStoreyHeight
	Zoning                  ZoningPolicy
}

// InvalidFootprintError reports a footprint that cannot be extruded.
// The add-block call fails as a whole; nothing is created.
type InvalidFootprintError struct {
	Reason string
}

func (e *InvalidFootprintError) Error() string {
	return "invalid footprint: " + e.Reason
}

// strategy generates the zones and surfaces for one zoning policy.
type strategy func(m *model.Model, opts BlockOpts) ([]*model.Surface, error)

func strategyFor(z ZoningPolicy) (strategy, error) {
	switch z {
	case ZoneByStorey:
		return byStorey, nil
	default:
		return nil, fmt.Errorf("unsupported zoning policy %d", int(z))
	}
}

// AddBlock validates the block and writes its zones and surfaces into m.
// It does not resolve adjacencies with other blocks; see building.AddBlock
// for the extrude-intersect-match sequence.
func AddBlock(m *model.Model, opts BlockOpts) ([]*model.Surface, error) {
	if opts.NumStoreys == 0 {
		opts.NumStoreys = 1
	}
	if opts.BelowGroundStoreyHeight == 0 {
		opts.BelowGroundStoreyHeight = DefaultBelowGroundStoreyHeight
	}
	if err := validate(opts); err != nil {
		return nil, err
	}

	fp := normalizeFootprint(opts.Footprint)
	opts.Footprint = fp

	gen, err := strategyFor(opts.Zoning)
	if err != nil {
		return nil, err
	}
	return gen(m, opts)
}

func validate(opts BlockOpts) error {
	fp := openRing(opts.Footprint)
	if len(fp) < 3 {
		return &InvalidFootprintError{Reason: fmt.Sprintf("%d points, need at least 3", len(fp))}
	}
	closed := append(append(orb.Ring{}, fp...), fp[0])
	if math.Abs(planar.Area(closed)) < geom.AreaEps {
		return &InvalidFootprintError{Reason: "zero enclosed area"}
	}
	if !geom.SimpleRing(fp) {
		return &InvalidFootprintError{Reason: "self-intersecting outline"}
	}
	if opts.Height <= 0 {
		return fmt.Errorf("block %q: height must be positive, got %v", opts.Name, opts.Height)
	}
	if opts.NumStoreys < 1 {
		return fmt.Errorf("block %q: need at least 1 storey, got %d", opts.Name, opts.NumStoreys)
	}
	if opts.BelowGroundStoreys < 0 || opts.BelowGroundStoreys >= opts.NumStoreys {
		return fmt.Errorf("block %q: below-ground storeys must be in [0, %d), got %d",
			opts.Name, opts.NumStoreys, opts.BelowGroundStoreys)
	}
	if opts.BelowGroundStoreys > 0 && opts.BelowGroundStoreyHeight <= 0 {
		return fmt.Errorf("block %q: below-ground storey height must be positive, got %v",
			opts.Name, opts.BelowGroundStoreyHeight)
	}
	return nil
}

// openRing drops an explicit closing point if present.
func openRing(r orb.Ring) orb.Ring {
	if len(r) > 1 {
		first, last := r[0], r[len(r)-1]
		if math.Abs(first[0]-last[0]) < geom.CoordEps && math.Abs(first[1]-last[1]) < geom.CoordEps {
			return r[:len(r)-1]
		}
	}
	return r
}

func normalizeFootprint(r orb.Ring) orb.Ring {
	fp := openRing(r)
	if geom.RingArea(fp) < 0 {
		rev := make(orb.Ring, len(fp))
		for i, pt := range fp {
			rev[len(fp)-1-i] = pt
		}
		return rev
	}
	return fp
}

// byStorey creates one zone per storey, bottom up. Below-ground storeys
// are numbered -BelowGroundStoreys..-1 at BelowGroundStoreyHeight each;
// above-ground storeys are numbered from 0 and share Height evenly.
func byStorey(m *model.Model, opts BlockOpts) ([]*model.Surface, error) {
	above := opts.NumStoreys - opts.BelowGroundStoreys
	storeyHeight := opts.Height / float64(above)

	var created []*model.Surface
	for k := 0; k < opts.NumStoreys; k++ {
		storey := k - opts.BelowGroundStoreys
		var base, top float64
		if storey < 0 {
			base = float64(storey) * opts.BelowGroundStoreyHeight
			top = float64(storey+1) * opts.BelowGroundStoreyHeight
		} else {
			base = float64(storey) * storeyHeight
			top = float64(storey+1) * storeyHeight
		}

		zone := &model.Zone{
			Name:          fmt.Sprintf("Block %s Storey %d", opts.Name, storey),
			Block:         opts.Name,
			Storey:        storey,
			CeilingHeight: top - base,
		}
		if err := m.AddZone(zone); err != nil {
			return created, fmt.Errorf("block %q: %w", opts.Name, err)
		}

		isTop := k == opts.NumStoreys-1
		created = append(created, storeySurfaces(m, zone, opts.Footprint, base, top, isTop)...)
	}
	return created, nil
}

// storeySurfaces builds the floor, ceiling-or-roof and walls of one
// storey. The footprint is counterclockwise, so the upward ceiling/roof
// keeps its winding, the floor is reversed to face down, and walls wind
// upper-left first for an outward normal.
func storeySurfaces(m *model.Model, zone *model.Zone, fp orb.Ring, base, top float64, isTop bool) []*model.Surface {
	var out []*model.Surface

	floor := lift(fp, base).Reversed()
	out = append(out, m.AddSurface(&model.Surface{
		Name:    fmt.Sprintf("%s Floor 0001", zone.Name),
		Zone:    zone.Name,
		Type:    model.Floor,
		Polygon: floor,
	}))

	lidType := model.Ceiling
	lidName := "Ceiling"
	if isTop {
		lidType = model.Roof
		lidName = "Roof"
	}
	out = append(out, m.AddSurface(&model.Surface{
		Name:    fmt.Sprintf("%s %s 0001", zone.Name, lidName),
		Zone:    zone.Name,
		Type:    lidType,
		Polygon: lift(fp, top),
	}))

	for i := range fp {
		p1 := fp[i]
		p2 := fp[(i+1)%len(fp)]
		wall := geom.Polygon{
			{X: p1[0], Y: p1[1], Z: top},
			{X: p1[0], Y: p1[1], Z: base},
			{X: p2[0], Y: p2[1], Z: base},
			{X: p2[0], Y: p2[1], Z: top},
		}
		out = append(out, m.AddSurface(&model.Surface{
			Name:    fmt.Sprintf("%s Wall %04d", zone.Name, i+1),
			Zone:    zone.Name,
			Type:    model.Wall,
			Polygon: wall,
		}))
	}
	return out
}

// lift places a 2D ring at the given elevation.
func lift(r orb.Ring, z float64) geom.Polygon {
	p := make(geom.Polygon, len(r))
	for i, pt := range r {
		p[i] = r3.Vec{X: pt[0], Y: pt[1], Z: z}
	}
	return p
}
