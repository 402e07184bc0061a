// internal/system/combat.go
package system

import (
	"log/slog"
	"math"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/internal/utils"
	"go-creep-defense/pkg/geom"
)

// fireEpsilon absorbs float drift when comparing elapsed time with the fire interval.
const fireEpsilon = 1e-9

// CombatSystem управляет атакой башен: выбор цели, проверка её валидности и выстрел.
type CombatSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	health          *HealthSystem
	projectiles     *ProjectileSystem
	logger          *slog.Logger
}

func NewCombatSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, health *HealthSystem, projectiles *ProjectileSystem, logger *slog.Logger) *CombatSystem {
	return &CombatSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		health:          health,
		projectiles:     projectiles,
		logger:          logger,
	}
}

// Update runs every turret in pool order. Retargeting happens on its own
// RetargetInterval cadence; the validity check and the fire gate run every tick.
func (s *CombatSystem) Update(deltaTime float64) {
	now := s.ecs.GameTime
	s.ecs.Turrets.Each(func(h pool.Handle, e *pool.Entry[component.Turret]) bool {
		turret := &e.Value

		turret.RetargetTimer -= deltaTime
		if turret.RetargetTimer <= 0 {
			s.retarget(e)
			turret.RetargetTimer += config.RetargetInterval
			if turret.RetargetTimer <= 0 {
				turret.RetargetTimer = config.RetargetInterval
			}
		}

		target, ok := s.validTarget(e)
		if !ok {
			turret.Target = pool.Handle{}
			turret.Mode = component.TurretIdle
			return true
		}
		turret.Mode = component.TurretTracking

		step := math.Min(1, config.TurretTurnRate*deltaTime)
		e.Angle = utils.LerpAngle(e.Angle, e.Pos.Bearing(target.Pos), step)

		if now-turret.LastFireTime+fireEpsilon >= turret.Def.FireInterval() {
			s.fire(h, e, turret.Target, target.Pos)
			turret.LastFireTime = now
			turret.Mode = component.TurretFiring
		}
		return true
	})
}

// retarget пересобирает список крипов в радиусе и выбирает ближайшего к базе.
func (s *CombatSystem) retarget(e *pool.Entry[component.Turret]) {
	turret := &e.Value
	turret.InRange = turret.InRange[:0]
	s.ecs.Creeps.Each(func(ch pool.Handle, ce *pool.Entry[component.Creep]) bool {
		if ce.Value.IsAlive() && e.Pos.Dist(ce.Pos) <= turret.Def.Range {
			turret.InRange = append(turret.InRange, ch)
		}
		return true
	})
	turret.Target, _ = SelectTarget(s.ecs, turret.InRange, s.ecs.Base.Pos)
}

// SelectTarget picks, among candidates that are still alive, the creep closest to
// basePos. Ties go to the first candidate found.
func SelectTarget(ecs *entity.ECS, candidates []pool.Handle, basePos geom.Vec) (pool.Handle, bool) {
	var best pool.Handle
	bestDist := math.Inf(1)
	found := false
	for _, h := range candidates {
		c, ok := ecs.Creep(h)
		if !ok {
			continue
		}
		if d := c.Pos.DistSq(basePos); d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, found
}

// validTarget re-resolves the weak target reference. A target that died, went
// back to the pool or left range is lost.
func (s *CombatSystem) validTarget(e *pool.Entry[component.Turret]) (*pool.Entry[component.Creep], bool) {
	c, ok := s.ecs.Creep(e.Value.Target)
	if !ok || e.Pos.Dist(c.Pos) > e.Value.Def.Range {
		return nil, false
	}
	return c, true
}

func (s *CombatSystem) fire(h pool.Handle, e *pool.Entry[component.Turret], target pool.Handle, targetPos geom.Vec) {
	turret := &e.Value
	def := turret.Def
	turret.Shots++

	if !def.HasProjectile() {
		s.eventDispatcher.Dispatch(event.Event{Type: event.TurretFired, Data: event.TurretFiredData{Turret: h, Target: target, Instant: true}})
		s.health.Damage(target, def.Damage)
		if def.Slow != nil {
			s.health.ApplySlow(target, def.Slow.Multiplier, def.Slow.Duration)
		}
		return
	}

	payload := component.Projectile{
		Damage: def.Damage,
		Speed:  def.ProjectileSpeed,
	}
	if def.Slow != nil {
		payload.Slow = *def.Slow
		payload.HasSlow = true
	}
	ph, err := s.projectiles.Launch(def.Projectile, e.Pos, e.Pos.Bearing(targetPos), target, payload)
	if err != nil {
		// Выстрел пропадает, кулдаун всё равно идёт.
		s.logger.Warn("projectile launch failed", "turret", h.String(), "kind", def.Projectile, "error", err)
		return
	}
	s.logger.Debug("turret fired", "turret", h.String(), "target", target.String(), "projectile", ph.String())
	s.eventDispatcher.Dispatch(event.Event{Type: event.TurretFired, Data: event.TurretFiredData{Turret: h, Target: target}})
}
