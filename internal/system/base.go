// internal/system/base.go
package system

import (
	"log/slog"

	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/pkg/geom"
)

// BaseSystem - модель защиты базы: здоровье, проверка прибытия, урон.
type BaseSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	logger          *slog.Logger
}

func NewBaseSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, logger *slog.Logger) *BaseSystem {
	return &BaseSystem{ecs: ecs, eventDispatcher: eventDispatcher, logger: logger}
}

// Reset places the base and restores it to full health.
func (s *BaseSystem) Reset(pos geom.Vec, radius float64, maxHealth int) {
	base := s.ecs.Base
	base.Pos = pos
	base.Radius = radius
	base.MaxHealth = maxHealth
	base.Health = maxHealth
	s.notify()
}

// Reached reports whether pos is inside the base radius.
func (s *BaseSystem) Reached(pos geom.Vec) bool {
	return pos.Dist(s.ecs.Base.Pos) <= s.ecs.Base.Radius
}

// Damage lowers base health, floored at zero, and reports whether the base was
// destroyed by this call.
func (s *BaseSystem) Damage(amount int) bool {
	base := s.ecs.Base
	if amount <= 0 || base.Health == 0 {
		return false
	}
	base.Health -= amount
	if base.Health < 0 {
		base.Health = 0
	}
	s.logger.Info("base damaged", "amount", amount, "health", base.Health, "max_health", base.MaxHealth)
	s.notify()
	if base.Health > 0 {
		return false
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.BaseDestroyed})
	return true
}

func (s *BaseSystem) notify() {
	s.eventDispatcher.Dispatch(event.Event{Type: event.BaseHealthChanged, Data: event.BaseHealthData{
		Current: s.ecs.Base.Health,
		Max:     s.ecs.Base.MaxHealth,
	}})
}
