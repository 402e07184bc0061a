package component

import (
	"go-creep-defense/internal/defs"
	"go-creep-defense/pkg/geom"
)

// Creep - состояние крипа на время одной аренды из пула.
type Creep struct {
	Def         *defs.CreepDefinition
	Health      int
	MaxHealth   int
	Damage      int        // урон базе при достижении
	BaseSpeed   float64    // скорость из шаблона
	Speed       float64    // текущая скорость с учётом замедления
	Slow        SlowEffect // активное замедление, если есть
	Target      geom.Vec   // точка базы, фиксируется при спавне
	ReachedBase bool
	Dead        bool
	Wave        int // индекс волны, которая его породила
}

// IsAlive reports whether the creep can still be damaged, slowed or targeted.
func (c *Creep) IsAlive() bool {
	return !c.Dead
}
