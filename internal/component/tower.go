// internal/component/tower.go
package component

import "go-creep-defense/internal/defs"

// Placement - режим установки башни.
type Placement struct {
	Active   bool
	Selected *defs.TurretDefinition
}
