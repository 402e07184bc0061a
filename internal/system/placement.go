// internal/system/placement.go
package system

import (
	"log/slog"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/pkg/geom"
)

// PlacementSystem обрабатывает команды режима установки башен.
type PlacementSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	economy         *EconomySystem
	level           defs.Level
	minDistance     float64
	logger          *slog.Logger
}

func NewPlacementSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, economy *EconomySystem, level defs.Level, minDistance float64, logger *slog.Logger) *PlacementSystem {
	return &PlacementSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		economy:         economy,
		level:           level,
		minDistance:     minDistance,
		logger:          logger,
	}
}

// Select enters placement mode with def as the pending turret type.
func (s *PlacementSystem) Select(def *defs.TurretDefinition) bool {
	if def == nil {
		return false
	}
	if !s.ecs.Turrets.Registered(def.ID) {
		if err := s.ecs.Turrets.Register(def.ID, nil, def.PoolSize); err != nil {
			s.logger.Warn("turret pool registration failed", "turret", def.ID, "error", err)
			return false
		}
	}
	s.ecs.Placement.Active = true
	s.ecs.Placement.Selected = def
	s.eventDispatcher.Dispatch(event.Event{Type: event.TurretTypeSelected, Data: def})
	return true
}

// Exit leaves placement mode.
func (s *PlacementSystem) Exit() {
	*s.ecs.Placement = component.Placement{}
	s.eventDispatcher.Dispatch(event.Event{Type: event.PlacementModeExited})
}

// Reset drops placement mode without notifying anyone.
func (s *PlacementSystem) Reset() {
	*s.ecs.Placement = component.Placement{}
}

// CanPlace checks the minimum spacing from turrets, the base and every spawn point.
func (s *PlacementSystem) CanPlace(pos geom.Vec) bool {
	if pos.Dist(s.ecs.Base.Pos) < s.minDistance {
		return false
	}
	for _, sp := range s.level.SpawnPoints {
		if pos.Dist(sp.Pos) < s.minDistance {
			return false
		}
	}
	free := true
	s.ecs.Turrets.Each(func(_ pool.Handle, e *pool.Entry[component.Turret]) bool {
		if pos.Dist(e.Pos) < s.minDistance {
			free = false
			return false
		}
		return true
	})
	return free
}

// TryPlace validates the ground and the price before touching the wallet. Placement
// mode stays on after a successful placement.
func (s *PlacementSystem) TryPlace(pos geom.Vec) (pool.Handle, bool) {
	placement := s.ecs.Placement
	def := placement.Selected
	if !placement.Active || def == nil {
		return pool.Handle{}, false
	}
	if !s.CanPlace(pos) {
		s.logger.Debug("placement rejected: too close", "turret", def.ID, "x", pos.X, "y", pos.Y)
		return pool.Handle{}, false
	}
	if !s.economy.SpendCoins(def.Cost) {
		s.logger.Debug("placement rejected: cannot afford", "turret", def.ID, "cost", def.Cost, "coins", s.economy.Coins())
		return pool.Handle{}, false
	}

	h, e, err := s.ecs.Turrets.Acquire(def.ID, pos, 0)
	if err != nil {
		s.logger.Warn("turret acquire failed", "turret", def.ID, "error", err)
		s.economy.AddCoins(def.Cost)
		return pool.Handle{}, false
	}
	// Первый выстрел доступен сразу, цель ищется на первом же тике.
	e.Value = component.Turret{
		Def:          def,
		LastFireTime: s.ecs.GameTime - def.FireInterval(),
		InRange:      e.Value.InRange[:0],
	}

	s.logger.Info("turret placed", "turret", h.String(), "kind", def.ID, "x", pos.X, "y", pos.Y)
	s.eventDispatcher.Dispatch(event.Event{Type: event.TurretPlaced, Data: event.TurretPlacedData{Turret: h, Def: def}})
	return h, true
}
