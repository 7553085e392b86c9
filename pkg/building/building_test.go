package building

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/zonal/pkg/extrude"
	"github.com/chazu/zonal/pkg/model"
)

func addSimpleBlock(t *testing.T, b *Building, name string, fp orb.Ring, height float64) {
	t.Helper()
	if _, err := b.AddBlock(extrude.BlockOpts{Name: name, Footprint: fp, Height: height}); err != nil {
		t.Fatalf("adding block %s: %v", name, err)
	}
}

func TestAddBlockResolvesBoundaries(t *testing.T) {
	b := New()
	addSimpleBlock(t, b, "a", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 3)

	m := b.Model()
	floor := m.SurfaceByName("Block a Storey 0 Floor 0001")
	if floor.Boundary != model.Ground {
		t.Errorf("floor boundary = %v, want ground", floor.Boundary)
	}
	roof := m.SurfaceByName("Block a Storey 0 Roof 0001")
	if roof.Boundary != model.Outdoors {
		t.Errorf("roof boundary = %v, want outdoors", roof.Boundary)
	}
	for _, s := range m.Surfaces() {
		if s.Type != model.Wall {
			continue
		}
		if s.Boundary != model.Outdoors || !s.SunExposed || !s.WindExposed {
			t.Errorf("wall %s boundary = %v, exposed %v/%v", s.Name, s.Boundary, s.SunExposed, s.WindExposed)
		}
	}
	if got := b.Blocks(); len(got) != 1 || got[0] != "a" {
		t.Errorf("blocks = %v, want [a]", got)
	}
}

func TestAddBlockStackedStoreys(t *testing.T) {
	b := New()
	if _, err := b.AddBlock(extrude.BlockOpts{
		Name:      "a",
		Footprint: orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Height:    6, NumStoreys: 2,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := b.Model()
	ceiling := m.SurfaceByName("Block a Storey 0 Ceiling 0001")
	floor := m.SurfaceByName("Block a Storey 1 Floor 0001")
	if ceiling.Boundary != model.SurfaceContact || floor.Boundary != model.SurfaceContact {
		t.Fatalf("stacked storeys not matched: %v / %v", ceiling.Boundary, floor.Boundary)
	}
	if ceiling.BoundaryObject != floor.ID || floor.BoundaryObject != ceiling.ID {
		t.Error("storey link not reciprocal")
	}
}

func TestAddBlockAdjacentBlocksShareWall(t *testing.T) {
	// The annex wall covers part of the office's x=20 wall; after the
	// second add the shared piece is split out and matched.
	b := New()
	addSimpleBlock(t, b, "office", orb.Ring{{0, 0}, {20, 0}, {20, 12}, {0, 12}}, 3)
	addSimpleBlock(t, b, "annex", orb.Ring{{20, 2}, {28, 2}, {28, 10}, {20, 10}}, 3)

	m := b.Model()
	var contacts []*model.Surface
	for _, s := range m.Surfaces() {
		if s.Boundary == model.SurfaceContact {
			contacts = append(contacts, s)
		}
	}
	if len(contacts) != 2 {
		t.Fatalf("matched surfaces = %d, want 2", len(contacts))
	}
	if contacts[0].BoundaryObject != contacts[1].ID ||
		contacts[1].BoundaryObject != contacts[0].ID {
		t.Error("shared wall link not reciprocal")
	}
	for _, s := range contacts {
		if area := s.Polygon.Area(); math.Abs(area-24) > 1e-9 {
			t.Errorf("shared wall %s area = %v, want 24", s.Name, area)
		}
	}
}

func TestAddBlockOffsetBlocksSplitBothWalls(t *testing.T) {
	// Two 10x10x10 blocks whose footprints meet along x=10 with a 5-unit
	// offset in y: each block's shared wall splits into a matched 5x10
	// piece and an exterior 5x10 piece.
	b := New()
	addSimpleBlock(t, b, "west", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 10)
	addSimpleBlock(t, b, "east", orb.Ring{{10, 5}, {20, 5}, {20, 15}, {10, 15}}, 10)

	m := b.Model()
	var matched, exterior []*model.Surface
	for _, s := range m.Surfaces() {
		if s.Type != model.Wall {
			continue
		}
		c := s.Polygon.Centroid()
		if math.Abs(c.X-10) > 1e-9 {
			continue // not on the shared plane
		}
		switch s.Boundary {
		case model.SurfaceContact:
			matched = append(matched, s)
		case model.Outdoors:
			exterior = append(exterior, s)
		default:
			t.Errorf("wall %s boundary = %v", s.Name, s.Boundary)
		}
	}
	if len(matched) != 2 || len(exterior) != 2 {
		t.Fatalf("matched/exterior walls on x=10: %d/%d, want 2/2", len(matched), len(exterior))
	}
	for _, s := range append(matched, exterior...) {
		if area := s.Polygon.Area(); math.Abs(area-50) > 1e-9 {
			t.Errorf("wall piece %s area = %v, want 50", s.Name, area)
		}
	}
	if matched[0].BoundaryObject != matched[1].ID ||
		matched[1].BoundaryObject != matched[0].ID {
		t.Error("matched wall pieces not reciprocal")
	}
}

func TestAddBlockInvalidLeavesModelUntouched(t *testing.T) {
	b := New()
	addSimpleBlock(t, b, "a", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 3)
	before := len(b.Model().Surfaces())

	if _, err := b.AddBlock(extrude.BlockOpts{
		Name: "bad", Footprint: orb.Ring{{0, 0}, {1, 1}}, Height: 3,
	}); err == nil {
		t.Fatal("expected error")
	}
	if got := len(b.Model().Surfaces()); got != before {
		t.Errorf("surface count changed on failed add: %d -> %d", before, got)
	}
	if got := b.Blocks(); len(got) != 1 {
		t.Errorf("blocks = %v, want [a]", got)
	}
}

func TestTranslate(t *testing.T) {
	b := New()
	addSimpleBlock(t, b, "a", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 3)

	b.Translate(r3.Vec{X: 5, Y: -3, Z: 1})
	floor := b.Model().SurfaceByName("Block a Storey 0 Floor 0001")
	min, _ := floor.Polygon.Bounds()
	if math.Abs(min.X-5) > 1e-9 || math.Abs(min.Y-(-3)) > 1e-9 || math.Abs(min.Z-1) > 1e-9 {
		t.Errorf("floor min after translate = %+v", min)
	}
}

func TestTranslateToOrigin(t *testing.T) {
	b := New()
	addSimpleBlock(t, b, "far", orb.Ring{
		{500000, 600000}, {500010, 600000}, {500010, 600010}, {500000, 600010},
	}, 3)

	b.TranslateToOrigin()
	minX, minY := math.Inf(1), math.Inf(1)
	for _, s := range b.Model().Surfaces() {
		min, _ := s.Polygon.Bounds()
		minX = math.Min(minX, min.X)
		minY = math.Min(minY, min.Y)
	}
	if math.Abs(minX) > 1e-9 || math.Abs(minY) > 1e-9 {
		t.Errorf("model min after translate to origin = (%v, %v)", minX, minY)
	}
}

func TestTranslateToOriginEmpty(t *testing.T) {
	b := New()
	b.TranslateToOrigin() // must not panic
}

func TestRotateZ(t *testing.T) {
	b := New()
	addSimpleBlock(t, b, "a", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 3)
	roofArea := b.Model().SurfaceByName("Block a Storey 0 Roof 0001").Polygon.Area()

	b.RotateZ(90)
	roof := b.Model().SurfaceByName("Block a Storey 0 Roof 0001")
	if math.Abs(roof.Polygon.Area()-roofArea) > 1e-9 {
		t.Errorf("rotation changed roof area")
	}
	min, max := roof.Polygon.Bounds()
	if math.Abs(min.X-(-10)) > 1e-9 || math.Abs(max.Y-10) > 1e-9 {
		t.Errorf("roof bounds after 90 degree rotation = %+v / %+v", min, max)
	}
}

func TestScale(t *testing.T) {
	b := New()
	addSimpleBlock(t, b, "a", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 3)

	if err := b.Scale(2, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roof := b.Model().SurfaceByName("Block a Storey 0 Roof 0001")
	if area := roof.Polygon.Area(); math.Abs(area-400) > 1e-9 {
		t.Errorf("roof area after xy scale = %v, want 400", area)
	}
	// Default axes leave z alone.
	if z := roof.Polygon.MaxZ(); math.Abs(z-3) > 1e-9 {
		t.Errorf("roof elevation after xy scale = %v, want 3", z)
	}

	if err := b.Scale(0, "xy"); err == nil {
		t.Error("expected error for zero factor")
	}
}
