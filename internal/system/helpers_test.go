package system

import (
	"io"
	"log/slog"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/internal/utils"
	"go-creep-defense/pkg/geom"
)

type fakeGame struct {
	playing    bool
	baseDamage []int
	won        int
}

func (f *fakeGame) DamageBase(amount int) { f.baseDamage = append(f.baseDamage, amount) }
func (f *fakeGame) IsPlaying() bool { return f.playing }
func (f *fakeGame) CompleteAllWaves() { f.won++ }

// tb is the part of testing.TB that *rapid.T also provides.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var goblinDef = &defs.CreepDefinition{
	ID:        "Goblin",
	Damage:    3,
	MaxHealth: 10,
	Speed:     2,
	MinReward: 5,
	MaxReward: 5,
}

type world struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
	health     *HealthSystem
	economy    *EconomySystem
	counts     map[event.EventType]int
}

func newWorld(t tb) *world {
	t.Helper()
	w := &world{
		ecs:        entity.NewECS(),
		dispatcher: event.NewDispatcher(),
		counts:     map[event.EventType]int{},
	}
	if err := w.ecs.Creeps.Register(goblinDef.ID, nil, 2); err != nil {
		t.Fatalf("register creeps: %v", err)
	}
	w.ecs.Base.Radius = 1
	w.ecs.Base.Health, w.ecs.Base.MaxHealth = 10, 10
	w.health = NewHealthSystem(w.ecs, w.dispatcher, utils.NewPRNGService(1), discardLogger())
	w.economy = NewEconomySystem(w.ecs, w.dispatcher, discardLogger())
	for _, et := range []event.EventType{event.CreepDamaged, event.CreepKilled, event.CreepReachedBase, event.CoinsChanged, event.TurretFired, event.ProjectileHit} {
		w.dispatcher.Subscribe(et, event.ListenerFunc(func(event.Event) { w.counts[et]++ }))
	}
	return w
}

func (w *world) spawn(t tb, pos geom.Vec) pool.Handle {
	t.Helper()
	h, e, err := w.ecs.Creeps.Acquire(goblinDef.ID, pos, 0)
	if err != nil {
		t.Fatalf("acquire creep: %v", err)
	}
	e.Value = component.Creep{
		Def:       goblinDef,
		Health:    goblinDef.MaxHealth,
		MaxHealth: goblinDef.MaxHealth,
		Damage:    goblinDef.Damage,
		BaseSpeed: goblinDef.Speed,
		Speed:     goblinDef.Speed,
		Target:    w.ecs.Base.Pos,
	}
	return h
}

func (w *world) creep(t tb, h pool.Handle) *component.Creep {
	t.Helper()
	e, ok := w.ecs.Creep(h)
	if !ok {
		t.Fatalf("creep %s is gone", h)
	}
	return &e.Value
}
