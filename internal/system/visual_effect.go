// internal/system/visual_effect.go
package system

import (
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/pkg/geom"
)

// Beam - след мгновенного выстрела от башни до цели.
type Beam struct {
	From, To geom.Vec
	Timer    float64
}

// VisualEffectSystem управляет визуальными эффектами: вспышками урона и лучами.
// На симуляцию не влияет, только копит то, что фронтенды рисуют.
type VisualEffectSystem struct {
	ecs     *entity.ECS
	flashes map[pool.Handle]float64
	beams   []Beam
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *VisualEffectSystem {
	s := &VisualEffectSystem{
		ecs:     ecs,
		flashes: make(map[pool.Handle]float64),
	}
	eventDispatcher.Subscribe(event.CreepDamaged, s)
	eventDispatcher.Subscribe(event.TurretFired, s)
	return s
}

func (s *VisualEffectSystem) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.CreepDamagedData:
		s.flashes[data.Creep] = config.DamageFlashDuration
	case event.TurretFiredData:
		if !data.Instant {
			return
		}
		turret, ok := s.ecs.Turrets.Get(data.Turret)
		if !ok {
			return
		}
		target, ok := s.ecs.Creeps.Get(data.Target)
		if !ok {
			return
		}
		s.beams = append(s.beams, Beam{From: turret.Pos, To: target.Pos, Timer: config.BeamDuration})
	}
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	for h, timer := range s.flashes {
		timer -= deltaTime
		// Умерший крип не вспыхивает: хэндл уже не резолвится
		if _, alive := s.ecs.Creep(h); timer <= 0 || !alive {
			delete(s.flashes, h)
			continue
		}
		s.flashes[h] = timer
	}

	live := s.beams[:0]
	for _, b := range s.beams {
		b.Timer -= deltaTime
		if b.Timer > 0 {
			live = append(live, b)
		}
	}
	s.beams = live
}

// Flashing reports whether the creep was hit within the last flash window.
func (s *VisualEffectSystem) Flashing(h pool.Handle) bool {
	_, ok := s.flashes[h]
	return ok
}

// Beams returns a copy of the visible beams.
func (s *VisualEffectSystem) Beams() []Beam {
	return append([]Beam(nil), s.beams...)
}

func (s *VisualEffectSystem) Reset() {
	clear(s.flashes)
	s.beams = s.beams[:0]
}
