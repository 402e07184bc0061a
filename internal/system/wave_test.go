package system

import (
	"testing"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/pool"
	"go-creep-defense/internal/schedule"
	"go-creep-defense/internal/utils"
	"go-creep-defense/pkg/geom"
)

type waveFixture struct {
	*world
	game   *fakeGame
	sched  *schedule.Scheduler
	waves  *WaveSystem
	events map[event.EventType][]int
}

func newWaveFixture(t *testing.T, spawnPoints []defs.SpawnPoint, waves ...defs.WaveDefinition) *waveFixture {
	t.Helper()
	lib := &defs.Library{
		Config: defs.GameConfig{BaseMaxHealth: 10, TimeBetweenWaves: 5},
		Level:  defs.Level{BaseRadius: 1, SpawnPoints: spawnPoints},
		Creeps: []defs.CreepDefinition{*goblinDef},
		Waves:  waves,
	}
	if err := lib.Init(); err != nil {
		t.Fatalf("library: %v", err)
	}

	f := &waveFixture{
		world:  newWorld(t),
		game:   &fakeGame{playing: true},
		sched:  schedule.New(),
		events: map[event.EventType][]int{},
	}
	f.waves = NewWaveSystem(f.ecs, f.dispatcher, f.sched, utils.NewPRNGService(3), lib, f.game, discardLogger())
	for _, et := range []event.EventType{event.WaveStarted, event.WaveCompleted, event.WaveChanged, event.AllWavesCompleted} {
		f.dispatcher.Subscribe(et, event.ListenerFunc(func(e event.Event) {
			idx := 0
			if d, ok := e.Data.(event.WaveData); ok {
				idx = d.Index
			}
			f.events[e.Type] = append(f.events[e.Type], idx)
		}))
	}
	return f
}

func (f *waveFixture) advance(seconds float64) {
	for s := 0.0; s < seconds-1e-9; s += 0.1 {
		f.sched.Advance(0.1)
	}
}

func (f *waveFixture) killAll() {
	f.ecs.Creeps.Each(func(h pool.Handle, _ *pool.Entry[component.Creep]) bool {
		f.health.Damage(h, 1000)
		return true
	})
}

var north = []defs.SpawnPoint{{Name: "north", Pos: geom.V(0, 20)}}

// Two batches {3, 2}; completion fires once and the next wave waits
// for the inter-wave delay.
func TestWave_TwoBatchesCompleteThenNextAfterDelay(t *testing.T) {
	f := newWaveFixture(t, north,
		defs.WaveDefinition{SpawnInterval: 0.5, Batches: []defs.SpawnBatch{
			{CreepID: "Goblin", Count: 3, Delay: 1},
			{CreepID: "Goblin", Count: 2, Delay: 2},
		}},
		defs.WaveDefinition{SpawnInterval: 0.5, Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 1}}},
	)

	if !f.waves.StartNextWave() {
		t.Fatal("StartNextWave failed")
	}
	if f.waves.StartNextWave() {
		t.Error("second StartNextWave succeeded while a wave is in progress")
	}

	f.advance(2.0)
	if f.ecs.Wave.Total != 3 {
		t.Fatalf("spawned %d after first batch, want 3", f.ecs.Wave.Total)
	}
	f.advance(2.6)
	if f.ecs.Wave.Total != 5 {
		t.Fatalf("spawned %d after both batches, want 5", f.ecs.Wave.Total)
	}
	if f.ecs.Wave.Phase != component.WaveAwaitingClear {
		t.Fatalf("phase = %v, want awaiting-clear", f.ecs.Wave.Phase)
	}

	f.advance(1)
	if len(f.events[event.WaveCompleted]) != 0 {
		t.Fatal("wave completed with creeps alive")
	}
	if !f.ecs.Wave.InProgress {
		t.Fatal("wave left InProgress with creeps alive")
	}

	f.killAll()
	f.advance(0.2)
	if got := f.events[event.WaveCompleted]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("WaveCompleted = %v, want [1]", got)
	}
	if f.ecs.Wave.InProgress || f.ecs.Wave.Index != 1 {
		t.Fatalf("after completion InProgress=%v Index=%d", f.ecs.Wave.InProgress, f.ecs.Wave.Index)
	}

	f.advance(4.7)
	if got := len(f.events[event.WaveStarted]); got != 1 {
		t.Fatalf("next wave started before the delay (%d starts)", got)
	}
	f.advance(0.4)
	if got := f.events[event.WaveStarted]; len(got) != 2 || got[1] != 2 {
		t.Fatalf("WaveStarted = %v, want [1 2]", got)
	}
	if got := len(f.events[event.WaveCompleted]); got != 1 {
		t.Errorf("WaveCompleted fired %d times, want 1", got)
	}
}

// clearWave lets the current wave spawn its single creep, kills it and waits for the
// clear poll to complete the wave.
func (f *waveFixture) clearWave(t *testing.T, completed int) {
	t.Helper()
	f.advance(0.1)
	f.killAll()
	f.advance(0.2)
	if got := len(f.events[event.WaveCompleted]); got != completed {
		t.Fatalf("WaveCompleted fired %d times, want %d", got, completed)
	}
}

func TestWave_ManualStartCancelsWarmup(t *testing.T) {
	one := defs.WaveDefinition{SpawnInterval: 0.5, Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 1}}}
	f := newWaveFixture(t, north, one, one)

	f.waves.ScheduleFirstWave(3)
	if !f.waves.StartNextWave() {
		t.Fatal("manual StartNextWave failed during warm-up")
	}
	f.clearWave(t, 1)

	// Прогрев истёк бы на 3s; следующая волна ждёт полный интервал после 0.2s.
	f.advance(4.7)
	if got := len(f.events[event.WaveStarted]); got != 1 {
		t.Fatalf("%d waves started before the inter-wave delay, want 1", got)
	}
	f.advance(0.4)
	if got := f.events[event.WaveStarted]; len(got) != 2 || got[1] != 2 {
		t.Fatalf("WaveStarted = %v, want [1 2]", got)
	}
}

func TestWave_ManualStartCancelsInterWaveDelay(t *testing.T) {
	one := defs.WaveDefinition{SpawnInterval: 0.5, Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 1}}}
	f := newWaveFixture(t, north, one, one, one)

	if !f.waves.StartNextWave() {
		t.Fatal("StartNextWave failed")
	}
	f.clearWave(t, 1)
	if !f.waves.StartNextWave() {
		t.Fatal("manual StartNextWave failed during inter-wave delay")
	}
	f.clearWave(t, 2)

	// Второй раз волна очищена около 0.5s, третья не раньше 5.5s.
	f.advance(4.7)
	if got := len(f.events[event.WaveStarted]); got != 2 {
		t.Fatalf("WaveStarted fired %d times before the delay, want 2", got)
	}
	f.advance(0.4)
	if got := f.events[event.WaveStarted]; len(got) != 3 || got[2] != 3 {
		t.Fatalf("WaveStarted = %v, want [1 2 3]", got)
	}
}

func TestWave_ResetCancelsPendingStart(t *testing.T) {
	one := defs.WaveDefinition{SpawnInterval: 0.5, Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 1}}}
	f := newWaveFixture(t, north, one)

	f.waves.ScheduleFirstWave(1)
	f.waves.Reset()
	f.advance(2)
	if got := len(f.events[event.WaveStarted]); got != 0 {
		t.Errorf("wave started %d times after Reset, want 0", got)
	}
}

func TestWave_FinalWaveCompletesMatch(t *testing.T) {
	f := newWaveFixture(t, north,
		defs.WaveDefinition{Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 1}}},
	)
	f.waves.StartNextWave()
	f.sched.Advance(0)
	f.killAll()
	f.advance(0.2)

	if f.game.won != 1 {
		t.Errorf("CompleteAllWaves called %d times, want 1", f.game.won)
	}
	if len(f.events[event.AllWavesCompleted]) != 1 {
		t.Errorf("AllWavesCompleted fired %d times, want 1", len(f.events[event.AllWavesCompleted]))
	}
	if f.waves.StartNextWave() {
		t.Error("StartNextWave succeeded after the last wave")
	}
}

func TestWave_AbortsWhenMatchStops(t *testing.T) {
	f := newWaveFixture(t, north,
		defs.WaveDefinition{SpawnInterval: 0.5, Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 4}}},
	)
	f.waves.StartNextWave()
	f.sched.Advance(0)
	f.game.playing = false
	f.advance(3)

	if f.ecs.Wave.Total != 1 {
		t.Errorf("spawned %d, want 1", f.ecs.Wave.Total)
	}
	if f.ecs.Wave.Phase != component.WaveAborted {
		t.Errorf("phase = %v, want aborted", f.ecs.Wave.Phase)
	}
	if !f.ecs.Wave.InProgress {
		t.Error("aborted wave reported as finished")
	}
	if len(f.events[event.WaveCompleted]) != 0 {
		t.Error("aborted wave completed")
	}
}

func TestWave_NoSpawnPointsSkipsCreeps(t *testing.T) {
	f := newWaveFixture(t, nil,
		defs.WaveDefinition{Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 3}}},
		defs.WaveDefinition{Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 3}}},
	)
	f.waves.StartNextWave()
	f.advance(0.5)

	if f.ecs.Creeps.Active() != 0 {
		t.Errorf("creeps = %d, want 0", f.ecs.Creeps.Active())
	}
	if got := f.events[event.WaveCompleted]; len(got) != 1 {
		t.Errorf("WaveCompleted = %v, want one completion", got)
	}
}

func TestWave_SpawnPointsRoundRobin(t *testing.T) {
	points := []defs.SpawnPoint{
		{Name: "a", Pos: geom.V(20, 0)},
		{Name: "b", Pos: geom.V(0, 20)},
		{Name: "c", Pos: geom.V(-20, 0)},
	}
	f := newWaveFixture(t, points,
		defs.WaveDefinition{Batches: []defs.SpawnBatch{{CreepID: "Goblin", Count: 6}}},
	)
	f.waves.StartNextWave()
	f.sched.Advance(0)

	used := map[geom.Vec]int{}
	f.ecs.Creeps.Each(func(_ pool.Handle, e *pool.Entry[component.Creep]) bool {
		used[e.Pos]++
		return true
	})
	for _, sp := range points {
		if used[sp.Pos] != 2 {
			t.Errorf("spawn point %s used %d times, want 2", sp.Name, used[sp.Pos])
		}
	}
	if f.waves.ActiveCreepCount() != 6 {
		t.Errorf("ActiveCreepCount = %d, want 6", f.waves.ActiveCreepCount())
	}
}
