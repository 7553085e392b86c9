// Package building is the public entry point of zonal. A Building owns
// the object model and the cross-block state needed to resolve
// adjacencies between blocks added over time, so multiple independent
// sessions can coexist; nothing is module-level.
package building

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/zonal/pkg/clip"
	"github.com/chazu/zonal/pkg/clip/polyclip"
	"github.com/chazu/zonal/pkg/extrude"
	"github.com/chazu/zonal/pkg/intersect"
	"github.com/chazu/zonal/pkg/model"
)

// Building is one editing session over a building model. Not safe for
// concurrent use; callers serialize operations.
type Building struct {
	model   *model.Model
	clipper clip.Clipper
	blocks  []string
}

// New creates an empty Building backed by the polyclip clipping backend.
func New() *Building {
	return NewWithClipper(polyclip.New())
}

// NewWithClipper creates an empty Building with a specific clipping backend.
func NewWithClipper(c clip.Clipper) *Building {
	return &Building{model: model.New(), clipper: c}
}

// Model exposes the underlying object store, e.g. for serialization or
// the viewer.
func (b *Building) Model() *model.Model {
	return b.model
}

// Blocks returns the names of the blocks added so far, in order.
func (b *Building) Blocks() []string {
	return append([]string(nil), b.blocks...)
}

// AddBlock extrudes a block into zones and surfaces, resolves overlaps
// against every previously added block, and re-matches the full surface
// set. On an invalid footprint or storey configuration nothing is created.
func (b *Building) AddBlock(opts extrude.BlockOpts) ([]intersect.Diagnostic, error) {
	hadSurfaces := len(b.model.Surfaces()) > 0
	if _, err := extrude.AddBlock(b.model, opts); err != nil {
		return nil, err
	}
	b.blocks = append(b.blocks, opts.Name)

	var diags []intersect.Diagnostic
	if hadSurfaces {
		diags = intersect.Intersect(b.model, b.clipper)
	}
	return append(diags, intersect.Match(b.model)...), nil
}

// Intersect resolves overlapping area between surfaces of different zones.
func (b *Building) Intersect() []intersect.Diagnostic {
	return intersect.Intersect(b.model, b.clipper)
}

// Match assigns boundary conditions across the full surface set.
func (b *Building) Match() []intersect.Diagnostic {
	return intersect.Match(b.model)
}

// IntersectMatch runs Intersect and then Match.
func (b *Building) IntersectMatch() []intersect.Diagnostic {
	return intersect.IntersectMatch(b.model, b.clipper)
}

// Translate moves every surface and window by the given vector.
func (b *Building) Translate(d r3.Vec) {
	for _, s := range b.model.Surfaces() {
		s.Polygon = s.Polygon.Translated(d)
	}
	for _, w := range b.model.Windows() {
		w.Polygon = w.Polygon.Translated(d)
	}
}

// TranslateToOrigin moves the whole model so its minimum x and y sit at
// the origin. Clipping far from the origin loses precision; running this
// before intersecting large-coordinate models keeps results exact.
func (b *Building) TranslateToOrigin() {
	minX, minY := math.Inf(1), math.Inf(1)
	for _, s := range b.model.Surfaces() {
		min, _ := s.Polygon.Bounds()
		minX = math.Min(minX, min.X)
		minY = math.Min(minY, min.Y)
	}
	if math.IsInf(minX, 1) {
		return
	}
	b.Translate(r3.Vec{X: -minX, Y: -minY})
}

// RotateZ rotates every surface and window about the +z axis by the given
// angle in degrees.
func (b *Building) RotateZ(degrees float64) {
	radians := degrees * math.Pi / 180
	for _, s := range b.model.Surfaces() {
		s.Polygon = s.Polygon.RotatedZ(radians)
	}
	for _, w := range b.model.Windows() {
		w.Polygon = w.Polygon.RotatedZ(radians)
	}
}

// Scale scales every surface and window by factor on the named axes
// (default "xy" when empty).
func (b *Building) Scale(factor float64, axes string) error {
	if factor <= 0 {
		return fmt.Errorf("scale factor must be positive, got %v", factor)
	}
	if axes == "" {
		axes = "xy"
	}
	for _, s := range b.model.Surfaces() {
		s.Polygon = s.Polygon.Scaled(factor, axes)
	}
	for _, w := range b.model.Windows() {
		w.Polygon = w.Polygon.Scaled(factor, axes)
	}
	return nil
}
