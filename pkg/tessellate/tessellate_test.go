package tessellate

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/chazu/zonal/pkg/building"
	"github.com/chazu/zonal/pkg/extrude"
	"github.com/chazu/zonal/pkg/geom"
)

func triangleArea(ring orb.Ring, tris []uint32) float64 {
	total := 0.0
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := ring[tris[i]], ring[tris[i+1]], ring[tris[i+2]]
		total += math.Abs((b[0]-a[0])*(c[1]-a[1])-(b[1]-a[1])*(c[0]-a[0])) / 2
	}
	return total
}

func TestEarClipSquare(t *testing.T) {
	ring := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	tris, err := earClip(ring)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tris) != 6 {
		t.Fatalf("index count = %d, want 6 (2 triangles)", len(tris))
	}
	if area := triangleArea(ring, tris); math.Abs(area-4) > 1e-9 {
		t.Errorf("triangulated area = %v, want 4", area)
	}
}

func TestEarClipConcave(t *testing.T) {
	ring := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {2, 1}, {0, 4}}
	tris, err := earClip(ring)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tris) != 9 {
		t.Fatalf("index count = %d, want 9 (3 triangles)", len(tris))
	}
	want := math.Abs(geom.RingArea(ring))
	if area := triangleArea(ring, tris); math.Abs(area-want) > 1e-9 {
		t.Errorf("triangulated area = %v, want %v", area, want)
	}
}

func TestEarClipClockwiseInput(t *testing.T) {
	ring := orb.Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	tris, err := earClip(ring)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area := triangleArea(ring, tris); math.Abs(area-4) > 1e-9 {
		t.Errorf("triangulated area = %v, want 4", area)
	}
}

func TestEarClipDegenerate(t *testing.T) {
	if _, err := earClip(orb.Ring{{0, 0}, {1, 1}}); err == nil {
		t.Error("expected error for 2-vertex ring")
	}
}

func TestTessellateBuilding(t *testing.T) {
	b := building.New()
	if _, err := b.AddBlock(extrude.BlockOpts{
		Name:      "a",
		Footprint: orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Height:    3,
	}); err != nil {
		t.Fatalf("adding block: %v", err)
	}
	if err := b.SetWWR(0.25, building.WWROpts{}); err != nil {
		t.Fatalf("setting wwr: %v", err)
	}

	meshes, err := Tessellate(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 6 surfaces plus 4 windows.
	if len(meshes) != 10 {
		t.Fatalf("mesh count = %d, want 10", len(meshes))
	}
	for _, m := range meshes {
		if m.IsEmpty() {
			t.Errorf("mesh %s is empty", m.SurfaceName)
		}
		if m.VertexCount() != 4 {
			t.Errorf("mesh %s vertex count = %d, want 4", m.SurfaceName, m.VertexCount())
		}
		if m.TriangleCount() != 2 {
			t.Errorf("mesh %s triangle count = %d, want 2", m.SurfaceName, m.TriangleCount())
		}
		if len(m.Normals) != len(m.Vertices) {
			t.Errorf("mesh %s normal array length mismatch", m.SurfaceName)
		}
	}

	roof := meshByName(meshes, "Block a Storey 0 Roof 0001")
	if roof == nil {
		t.Fatal("missing roof mesh")
	}
	if roof.SurfaceType != "roof" || roof.Boundary != "outdoors" {
		t.Errorf("roof labels = %q/%q", roof.SurfaceType, roof.Boundary)
	}
}

func TestTessellateNil(t *testing.T) {
	meshes, err := Tessellate(nil)
	if err != nil || meshes != nil {
		t.Errorf("got %v, %v; want nil, nil", meshes, err)
	}
}

func meshByName(meshes []*Mesh, name string) *Mesh {
	for _, m := range meshes {
		if m.SurfaceName == name {
			return m
		}
	}
	return nil
}
