// internal/system/movement.go
package system

import (
	"go-creep-defense/internal/component"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/pool"
	"go-creep-defense/pkg/geom"
)

// MovementGameContext определяет методы, которые MovementSystem требует от Game.
// Это помогает избежать циклических зависимостей.
type MovementGameContext interface {
	DamageBase(amount int)
}

// MovementSystem ведёт крипов по прямой к базе и фиксирует прибытие.
type MovementSystem struct {
	ecs    *entity.ECS
	health *HealthSystem
	base   *BaseSystem
	game   MovementGameContext // Используем интерфейс вместо прямой зависимости
}

func NewMovementSystem(ecs *entity.ECS, health *HealthSystem, base *BaseSystem, game MovementGameContext) *MovementSystem {
	return &MovementSystem{ecs: ecs, health: health, base: base, game: game}
}

func (s *MovementSystem) Update(deltaTime float64) {
	s.ecs.Creeps.Each(func(h pool.Handle, e *pool.Entry[component.Creep]) bool {
		creep := &e.Value
		if !creep.IsAlive() || creep.ReachedBase {
			return true
		}

		if e.Pos != creep.Target {
			e.Angle = e.Pos.Bearing(creep.Target)
		}
		e.Pos, _ = geom.MoveTowards(e.Pos, creep.Target, creep.Speed*deltaTime)

		if s.base.Reached(e.Pos) {
			damage := creep.Damage
			s.health.Retire(h)
			s.game.DamageBase(damage)
		}
		return true
	})
}
