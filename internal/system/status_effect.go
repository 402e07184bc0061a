// internal/system/status_effect.go
package system

import (
	"go-creep-defense/internal/component"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/pool"
)

// StatusEffectSystem управляет жизненным циклом эффектов, таких как замедление.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

// Update обрабатывает все активные эффекты.
func (s *StatusEffectSystem) Update(deltaTime float64) {
	s.ecs.Creeps.Each(func(_ pool.Handle, e *pool.Entry[component.Creep]) bool {
		creep := &e.Value
		if !creep.IsAlive() || !creep.Slow.Active {
			return true
		}
		creep.Slow.Timer -= deltaTime
		if creep.Slow.Timer <= 0 {
			// Скорость восстанавливается ровно до базовой, без накопления множителей.
			creep.Slow = component.SlowEffect{}
			creep.Speed = creep.BaseSpeed
		}
		return true
	})
}
