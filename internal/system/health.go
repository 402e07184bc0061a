// internal/system/health.go
package system

import (
	"log/slog"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/internal/utils"
)

// HealthSystem - единственная точка, через которую крипы получают урон,
// замедление и умирают. Все обращения идут по хэндлу и перепроверяют, что крип жив.
type HealthSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	rng             *utils.PRNGService
	logger          *slog.Logger

	// RewardOnBaseArrival pays the reward for creeps that die by reaching the base.
	RewardOnBaseArrival bool
}

func NewHealthSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, rng *utils.PRNGService, logger *slog.Logger) *HealthSystem {
	return &HealthSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		rng:             rng,
		logger:          logger,
	}
}

// Damage reduces the creep's health by amount, floored at zero. It reports whether
// this call killed the creep. Dead or stale creeps and non-positive amounts are ignored.
func (s *HealthSystem) Damage(h pool.Handle, amount int) bool {
	if amount <= 0 {
		return false
	}
	e, ok := s.ecs.Creep(h)
	if !ok {
		return false
	}
	creep := &e.Value
	creep.Health -= amount
	if creep.Health < 0 {
		creep.Health = 0
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.CreepDamaged, Data: event.CreepDamagedData{
		Creep:  h,
		Amount: amount,
		Health: creep.Health,
	}})
	if creep.Health > 0 {
		return false
	}
	s.kill(h, false)
	return true
}

// ApplySlow sets the creep's speed to baseSpeed*multiplier for duration seconds.
// A new slow replaces the running one and restarts its timer.
func (s *HealthSystem) ApplySlow(h pool.Handle, multiplier, duration float64) {
	e, ok := s.ecs.Creep(h)
	if !ok {
		return
	}
	creep := &e.Value
	creep.Slow.Active = true
	creep.Slow.SlowFactor = multiplier
	creep.Slow.Timer = duration
	creep.Speed = creep.BaseSpeed * multiplier
}

// Retire removes a creep that reached the base. It goes through the same death path
// as a combat kill, but the reward depends on RewardOnBaseArrival.
func (s *HealthSystem) Retire(h pool.Handle) {
	e, ok := s.ecs.Creep(h)
	if !ok {
		return
	}
	e.Value.ReachedBase = true
	s.eventDispatcher.Dispatch(event.Event{Type: event.CreepReachedBase, Data: event.CreepData{Creep: h, Def: e.Value.Def}})
	s.kill(h, true)
}

// kill - единственный переход Alive -> Dead. Запись сразу возвращается в пул,
// поэтому все старые хэндлы на неё перестают резолвиться.
func (s *HealthSystem) kill(h pool.Handle, reachedBase bool) {
	e, ok := s.ecs.Creep(h)
	if !ok {
		return
	}
	creep := &e.Value
	creep.Dead = true
	creep.Slow = component.SlowEffect{}

	reward := 0
	if creep.Def != nil && (!reachedBase || s.RewardOnBaseArrival) {
		reward = s.rng.RangeInclusive(creep.Def.MinReward, creep.Def.MaxReward)
	}
	s.logger.Debug("creep died", "creep", h.String(), "kind", e.Kind, "reached_base", reachedBase, "reward", reward)

	def := creep.Def
	if err := s.ecs.Creeps.Release(h); err != nil {
		s.logger.Warn("creep release failed", "creep", h.String(), "error", err)
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.CreepKilled, Data: event.CreepKilledData{
		Creep:       h,
		Def:         def,
		Reward:      reward,
		ReachedBase: reachedBase,
	}})
}
