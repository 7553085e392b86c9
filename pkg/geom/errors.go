package geom

import "fmt"

// DegeneratePolygonError reports a polygon that cannot define a plane:
// fewer than three distinct vertices, or all vertices collinear.
type DegeneratePolygonError struct {
	Reason   string
	Vertices int
}

func (e *DegeneratePolygonError) Error() string {
	return fmt.Sprintf("degenerate polygon (%d vertices): %s", e.Vertices, e.Reason)
}
