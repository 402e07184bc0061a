// internal/system/projectile.go
package system

import (
	"log/slog"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/pkg/geom"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	health          *HealthSystem
	logger          *slog.Logger
}

func NewProjectileSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, health *HealthSystem, logger *slog.Logger) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		health:          health,
		logger:          logger,
	}
}

// Launch leases a projectile of kind at from, facing angle, homing on target.
// If the target is already gone the projectile flies to a point straight ahead.
func (s *ProjectileSystem) Launch(kind string, from geom.Vec, angle float64, target pool.Handle, payload component.Projectile) (pool.Handle, error) {
	h, e, err := s.ecs.Projectiles.Acquire(kind, from, angle)
	if err != nil {
		return pool.Handle{}, err
	}
	payload.Target = target
	payload.TTL = config.ProjectileLifetime
	payload.Hit = false
	if c, ok := s.ecs.Creep(target); ok {
		payload.Aim = c.Pos
	} else {
		payload.Target = pool.Handle{}
		payload.Aim = from.Add(geom.FromAngle(angle).Scale(config.ProjectileFallbackDistance))
	}
	e.Value = payload
	return h, nil
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	s.ecs.Projectiles.Each(func(h pool.Handle, e *pool.Entry[component.Projectile]) bool {
		proj := &e.Value

		proj.TTL -= deltaTime
		if proj.TTL <= 0 {
			// Время жизни вышло - исчезаем без эффекта.
			s.removeProjectile(h)
			return true
		}

		// Самонаведение: пока цель жива, точка прицеливания следует за ней.
		if target, ok := s.ecs.Creep(proj.Target); ok {
			proj.Aim = target.Pos
		} else {
			proj.Target = pool.Handle{}
		}

		if e.Pos != proj.Aim {
			e.Angle = e.Pos.Bearing(proj.Aim)
		}
		e.Pos, _ = geom.MoveTowards(e.Pos, proj.Aim, proj.Speed*deltaTime)

		if victim, ok := s.collide(e.Pos, proj.Target); ok {
			s.hitTarget(h, proj, victim)
			return true
		}
		if e.Pos.Dist(proj.Aim) < config.ProjectileHitEpsilon {
			if victim, ok := s.nearestCreep(proj.Aim, config.ProjectileImpactRadius); ok {
				s.hitTarget(h, proj, victim)
			} else {
				s.removeProjectile(h)
			}
		}
		return true
	})
}

// collide returns a live creep overlapping pos. The projectile's own target wins
// over other overlapping creeps.
func (s *ProjectileSystem) collide(pos geom.Vec, target pool.Handle) (pool.Handle, bool) {
	if c, ok := s.ecs.Creep(target); ok && c.Pos.Dist(pos) <= config.CreepRadius {
		return target, true
	}
	return s.nearestCreep(pos, config.CreepRadius)
}

// nearestCreep returns the live creep closest to pos within radius.
func (s *ProjectileSystem) nearestCreep(pos geom.Vec, radius float64) (pool.Handle, bool) {
	var best pool.Handle
	found := false
	bestDist := radius * radius
	s.ecs.Creeps.Each(func(h pool.Handle, e *pool.Entry[component.Creep]) bool {
		if !e.Value.IsAlive() {
			return true
		}
		if d := e.Pos.DistSq(pos); d <= bestDist && (!found || d < bestDist) {
			best, bestDist, found = h, d, true
		}
		return true
	})
	return best, found
}

// hitTarget наносит урон и сразу возвращает снаряд в пул. Флаг Hit не даёт
// второму попаданию пройти, пока снаряд ещё не отпущен.
func (s *ProjectileSystem) hitTarget(h pool.Handle, proj *component.Projectile, victim pool.Handle) {
	if proj.Hit {
		return
	}
	proj.Hit = true
	s.eventDispatcher.Dispatch(event.Event{Type: event.ProjectileHit, Data: event.CreepData{Creep: victim}})
	s.health.Damage(victim, proj.Damage)
	if proj.HasSlow {
		s.health.ApplySlow(victim, proj.Slow.Multiplier, proj.Slow.Duration)
	}
	s.removeProjectile(h)
}

// Вспомогательная функция для удаления снаряда
func (s *ProjectileSystem) removeProjectile(h pool.Handle) {
	if err := s.ecs.Projectiles.Release(h); err != nil {
		s.logger.Warn("projectile release failed", "projectile", h.String(), "error", err)
	}
}
