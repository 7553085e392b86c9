package model

// Zone is a named grouping of surfaces, one storey of a block under the
// by-storey zoning policy. Zones own membership only; geometry lives on
// the surfaces themselves.
type Zone struct {
	Name   string
	Block  string // name of the block this zone was extruded from
	Storey int    // storey index; negative for below-ground storeys

	// CeilingHeight is pass-through metadata for the external model.
	// The core never interprets it.
	CeilingHeight float64
}
