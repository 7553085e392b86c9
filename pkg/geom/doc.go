// Package geom provides the planar polygon primitives for zonal.
// Surfaces are simple planar polygons in 3D; geom fits their planes,
// projects them to 2D for boolean operations, and lifts results back.
package geom
