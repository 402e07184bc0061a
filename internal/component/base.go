package component

import "go-creep-defense/pkg/geom"

// Base - защищаемая база.
type Base struct {
	Pos       geom.Vec
	Radius    float64
	Health    int
	MaxHealth int
}
