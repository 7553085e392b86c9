package building

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/zonal/pkg/geom"
	"github.com/chazu/zonal/pkg/model"
)

// edgeInset pulls window edges 0.1% in from the wall edges so the window
// never touches the host surface boundary.
const edgeInset = 0.999

// WWROpts tunes SetWWR.
type WWROpts struct {
	// Orientation restricts the recipe to walls facing within 45 degrees
	// of a compass direction: "north", "east", "south" or "west".
	// Empty means all external walls.
	Orientation string
}

var orientationAzimuth = map[string]float64{
	"north": 0,
	"east":  90,
	"south": 180,
	"west":  270,
}

// SetWWR gives every external wall a window covering the given fraction
// of its area: a full-width strip centered midway up the wall, plan
// dimensions inset slightly from the wall edges. Existing windows on
// affected walls are replaced. Runs after matching, since it keys off
// the Outdoors boundary condition.
func (b *Building) SetWWR(ratio float64, opts WWROpts) error {
	if ratio < 0 || ratio >= 1 {
		return fmt.Errorf("window-to-wall ratio must be in [0, 1), got %v", ratio)
	}
	var target float64
	filter := false
	if opts.Orientation != "" {
		az, ok := orientationAzimuth[opts.Orientation]
		if !ok {
			return fmt.Errorf("unknown orientation %q", opts.Orientation)
		}
		target = az
		filter = true
	}

	for _, s := range b.model.Surfaces() {
		if s.Type != model.Wall || s.Boundary != model.Outdoors {
			continue
		}
		if filter && !facesTowards(s, target) {
			continue
		}
		b.model.RemoveWindowsOn(s.ID)
		if ratio == 0 {
			continue
		}
		b.model.AddWindow(&model.Window{
			Name:    s.Name + " window",
			Wall:    s.ID,
			Polygon: windowPolygon(s.Polygon, ratio),
		})
	}
	return nil
}

// Azimuth returns a wall's facing direction in compass degrees
// (0 = north/+y, 90 = east/+x), or an error for degenerate geometry.
func Azimuth(s *model.Surface) (float64, error) {
	n, err := s.Polygon.Normal()
	if err != nil {
		return 0, err
	}
	az := math.Atan2(n.X, n.Y) * 180 / math.Pi
	if az < 0 {
		az += 360
	}
	return az, nil
}

// facesTowards reports whether a wall faces within 45 degrees of the
// target azimuth.
func facesTowards(s *model.Surface, target float64) bool {
	az, err := Azimuth(s)
	if err != nil {
		return false
	}
	diff := math.Mod(az-target+180, 360) - 180
	return math.Abs(diff) < 45
}

// windowPolygon shrinks a wall polygon toward its centroid: plan
// dimensions by the edge inset, height by the window-to-wall ratio.
// For the rectangular walls extrusion produces, the resulting strip's
// area is the requested fraction of the wall's.
func windowPolygon(wall geom.Polygon, ratio float64) geom.Polygon {
	var cx, cy, cz float64
	for _, v := range wall {
		cx += v.X
		cy += v.Y
		cz += v.Z
	}
	n := float64(len(wall))
	cx, cy, cz = cx/n, cy/n, cz/n

	out := make(geom.Polygon, len(wall))
	for i, v := range wall {
		out[i] = r3.Vec{
			X: (v.X-cx)*edgeInset + cx,
			Y: (v.Y-cy)*edgeInset + cy,
			Z: (v.Z-cz)*ratio + cz,
		}
	}
	return out
}
