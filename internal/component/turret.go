// internal/component/turret.go
package component

import (
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/pool"
)

// TurretMode is the fire-control state of a turret.
type TurretMode int

const (
	TurretIdle     TurretMode = iota // нет цели
	TurretTracking                   // есть живая цель в радиусе
	TurretFiring                     // выстрел на этом тике
)

func (m TurretMode) String() string {
	switch m {
	case TurretIdle:
		return "idle"
	case TurretTracking:
		return "tracking"
	case TurretFiring:
		return "firing"
	default:
		return "unknown"
	}
}

// Turret - стационарная башня игрока.
type Turret struct {
	Def *defs.TurretDefinition
	// Target is a weak reference: it is re-resolved through the creep pool on every use.
	Target        pool.Handle
	InRange       []pool.Handle // пересчитывается раз в RetargetInterval
	LastFireTime  float64
	RetargetTimer float64
	Mode          TurretMode
	Shots         int
}
