// Package intersect implements the overlap-resolution and surface-matching
// engines. Intersect rewrites overlapping surfaces of different zones into
// coincident-boundary pieces; Match assigns reciprocal boundary-condition
// links and exterior defaults.
package intersect

import "fmt"

// DiagnosticKind classifies a non-fatal condition found while processing
// a surface set. Diagnostics are collected and returned, never raised;
// a single bad surface or pair must not abort the batch.
type DiagnosticKind int

const (
	// DegenerateSurface marks a surface whose polygon cannot define a
	// plane. The surface is skipped entirely.
	DegenerateSurface DiagnosticKind = iota

	// NonCoplanarPairSkipped marks a candidate pair whose planes exceed
	// the angular or offset tolerance. The pair is ignored.
	NonCoplanarPairSkipped

	// ConflictingMatch marks a surface coincident with more than one
	// partner. The surface keeps an exterior boundary condition.
	ConflictingMatch

	// MaxGenerationsExceeded marks an overlap still unresolved when the
	// split-generation limit was reached.
	MaxGenerationsExceeded
)

func (k DiagnosticKind) String() string {
	switch k {
	case DegenerateSurface:
		return "degenerate surface"
	case NonCoplanarPairSkipped:
		return "non-coplanar pair skipped"
	case ConflictingMatch:
		return "conflicting match"
	case MaxGenerationsExceeded:
		return "max generations exceeded"
	default:
		return "unknown"
	}
}

// Diagnostic reports one non-fatal condition. Surface and Other carry
// display names; Other is empty for single-surface conditions.
type Diagnostic struct {
	Kind    DiagnosticKind
	Surface string
	Other   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Other != "" {
		return fmt.Sprintf("%s: %s / %s: %s", d.Kind, d.Surface, d.Other, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Surface, d.Message)
}
