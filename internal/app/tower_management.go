// internal/app/tower_management.go
package app

import (
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/state"
	"go-creep-defense/pkg/geom"
)

// placementAllowed - башни ставятся во время игры и на паузе.
func (g *Game) placementAllowed() bool {
	phase := g.Phase()
	return phase == state.Playing || phase == state.Paused
}

// SelectTurretType enters placement mode with def as the pending turret.
func (g *Game) SelectTurretType(def *defs.TurretDefinition) bool {
	if !g.placementAllowed() {
		return false
	}
	return g.PlacementSystem.Select(def)
}

// SelectTurretTypeByID looks the turret up in the library and selects it.
func (g *Game) SelectTurretTypeByID(id string) bool {
	def, ok := g.Library.Turret(id)
	if !ok {
		g.logger.Warn("unknown turret type", "turret", id)
		return false
	}
	return g.SelectTurretType(def)
}

// TryPlaceTurret places the selected turret at pos. Spacing and price are checked
// before any coins are spent.
func (g *Game) TryPlaceTurret(pos geom.Vec) bool {
	if !g.placementAllowed() {
		return false
	}
	_, ok := g.PlacementSystem.TryPlace(pos)
	return ok
}

// CanPlaceTurret reports whether the selected turret could be placed at pos now.
func (g *Game) CanPlaceTurret(pos geom.Vec) bool {
	p := g.ECS.Placement
	if !g.placementAllowed() || !p.Active || p.Selected == nil {
		return false
	}
	return g.PlacementSystem.CanPlace(pos) && g.EconomySystem.CanAfford(p.Selected.Cost)
}

// ExitPlacementMode leaves placement mode.
func (g *Game) ExitPlacementMode() {
	g.PlacementSystem.Exit()
}
