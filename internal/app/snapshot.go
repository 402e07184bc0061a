// internal/app/snapshot.go
package app

import (
	"go-creep-defense/internal/component"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/pool"
	"go-creep-defense/internal/state"
	"go-creep-defense/pkg/geom"
)

// CreepView - копия состояния крипа для отрисовки.
type CreepView struct {
	Handle    pool.Handle
	Kind      string
	Pos       geom.Vec
	Angle     float64
	Health    int
	MaxHealth int
	Slowed    bool
	Flash     bool // недавно получил урон
}

type TurretView struct {
	Handle pool.Handle
	Kind   string
	Pos    geom.Vec
	Angle  float64
	Range  float64
	Mode   component.TurretMode
	Target pool.Handle
	Shots  int
}

type ProjectileView struct {
	Kind string
	Pos  geom.Vec
}

// BeamView is the trace of an instant shot.
type BeamView struct {
	From, To geom.Vec
}

// Snapshot is a read-only copy of the match for front-ends. Mutating it has no
// effect on the game.
type Snapshot struct {
	MatchID string
	Phase   state.Phase
	Time    float64

	Coins         int
	BaseHealth    int
	BaseMaxHealth int
	Base          geom.Vec
	BaseRadius    float64
	SpawnPoints   []defs.SpawnPoint

	Wave           int // 1-based
	TotalWaves     int
	WavePhase      component.WavePhase
	WaveInProgress bool
	WaveCreeps     int

	Placing  bool
	Selected string

	Creeps      []CreepView
	Turrets     []TurretView
	Projectiles []ProjectileView
	Beams       []BeamView
}

// Snapshot copies the current match state. Entities are listed in pool order.
func (g *Game) Snapshot() Snapshot {
	ecs := g.ECS
	snap := Snapshot{
		MatchID:        g.MatchID.String(),
		Phase:          g.Phase(),
		Time:           ecs.GameTime,
		Coins:          ecs.Wallet.Coins,
		BaseHealth:     ecs.Base.Health,
		BaseMaxHealth:  ecs.Base.MaxHealth,
		Base:           ecs.Base.Pos,
		BaseRadius:     ecs.Base.Radius,
		SpawnPoints:    append([]defs.SpawnPoint(nil), g.Library.Level.SpawnPoints...),
		Wave:           ecs.Wave.Index + 1,
		TotalWaves:     g.WaveSystem.TotalWaves(),
		WavePhase:      ecs.Wave.Phase,
		WaveInProgress: ecs.Wave.InProgress,
		WaveCreeps:     g.WaveSystem.ActiveCreepCount(),
		Placing:        ecs.Placement.Active,
	}
	if snap.Wave > snap.TotalWaves {
		snap.Wave = snap.TotalWaves
	}
	if ecs.Placement.Selected != nil {
		snap.Selected = ecs.Placement.Selected.ID
	}

	ecs.Creeps.Each(func(h pool.Handle, e *pool.Entry[component.Creep]) bool {
		snap.Creeps = append(snap.Creeps, CreepView{
			Handle:    h,
			Kind:      e.Kind,
			Pos:       e.Pos,
			Angle:     e.Angle,
			Health:    e.Value.Health,
			MaxHealth: e.Value.MaxHealth,
			Slowed:    e.Value.Slow.Active,
			Flash:     g.VisualEffectSystem.Flashing(h),
		})
		return true
	})
	ecs.Turrets.Each(func(h pool.Handle, e *pool.Entry[component.Turret]) bool {
		snap.Turrets = append(snap.Turrets, TurretView{
			Handle: h,
			Kind:   e.Kind,
			Pos:    e.Pos,
			Angle:  e.Angle,
			Range:  e.Value.Def.Range,
			Mode:   e.Value.Mode,
			Target: e.Value.Target,
			Shots:  e.Value.Shots,
		})
		return true
	})
	ecs.Projectiles.Each(func(_ pool.Handle, e *pool.Entry[component.Projectile]) bool {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{Kind: e.Kind, Pos: e.Pos})
		return true
	})
	for _, b := range g.VisualEffectSystem.Beams() {
		snap.Beams = append(snap.Beams, BeamView{From: b.From, To: b.To})
	}
	return snap
}
