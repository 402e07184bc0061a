// internal/system/wave.go
package system

import (
	"log/slog"

	"go-creep-defense/internal/component"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/schedule"
	"go-creep-defense/internal/utils"
)

// WaveGameContext определяет методы, которые WaveSystem требует от Game.
type WaveGameContext interface {
	IsPlaying() bool
	CompleteAllWaves()
}

// WaveSystem - планировщик волн. Каждая пауза (перед пачкой, между крипами,
// опрос зачистки, пауза между волнами) - отдельная задача в планировщике,
// которая при срабатывании проверяет, что матч всё ещё идёт.
type WaveSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	sched           *schedule.Scheduler
	rng             *utils.PRNGService
	game            WaveGameContext
	logger          *slog.Logger

	waves            []defs.WaveDefinition
	creeps           func(id string) (*defs.CreepDefinition, bool)
	spawnPoints      []defs.SpawnPoint
	timeBetweenWaves float64

	spawnOrder []int // перемешанные индексы точек спавна
	spawnNext  int

	pendingStart schedule.TaskID // отложенный старт следующей волны, 0 если нет
}

func NewWaveSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, sched *schedule.Scheduler, rng *utils.PRNGService, lib *defs.Library, game WaveGameContext, logger *slog.Logger) *WaveSystem {
	return &WaveSystem{
		ecs:              ecs,
		eventDispatcher:  eventDispatcher,
		sched:            sched,
		rng:              rng,
		game:             game,
		logger:           logger,
		waves:            lib.Waves,
		creeps:           lib.Creep,
		spawnPoints:      lib.Level.SpawnPoints,
		timeBetweenWaves: lib.Config.TimeBetweenWaves,
	}
}

// TotalWaves returns the number of configured waves.
func (s *WaveSystem) TotalWaves() int { return len(s.waves) }

// Reset forgets the current run. Spawn tasks are dropped by the caller resetting
// the scheduler.
func (s *WaveSystem) Reset() {
	s.cancelPendingStart()
	*s.ecs.Wave = component.Wave{}
	s.spawnOrder = nil
	s.spawnNext = 0
}

// ScheduleFirstWave starts the first wave after delay seconds of play.
func (s *WaveSystem) ScheduleFirstWave(delay float64) {
	s.dispatchWaveChanged()
	s.scheduleStart(delay)
}

// scheduleStart планирует автоматический старт следующей волны.
// Ручной старт через StartNextWave отменяет его.
func (s *WaveSystem) scheduleStart(delay float64) {
	s.cancelPendingStart()
	s.pendingStart = s.sched.After(delay, func(float64) {
		s.pendingStart = 0
		if s.game.IsPlaying() {
			s.StartNextWave()
		}
	})
}

func (s *WaveSystem) cancelPendingStart() {
	if s.pendingStart != 0 {
		s.sched.Cancel(s.pendingStart)
		s.pendingStart = 0
	}
}

// StartNextWave starts the wave at the current index. It is a no-op returning false
// when a wave is already in progress or the wave list is exhausted.
func (s *WaveSystem) StartNextWave() bool {
	wave := s.ecs.Wave
	if wave.InProgress || wave.Index >= len(s.waves) {
		return false
	}
	s.cancelPendingStart()
	def := &s.waves[wave.Index]
	wave.InProgress = true
	wave.Phase = component.WaveSpawning
	wave.Active = wave.Active[:0]
	wave.Batch, wave.Spawned, wave.Total = 0, 0, 0

	s.logger.Info("wave started", "wave", wave.Index+1, "creeps", def.TotalCreeps())
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Index: wave.Index + 1}})

	s.scheduleBatch(wave.Index, 0)
	return true
}

func (s *WaveSystem) scheduleBatch(waveIndex, batch int) {
	def := &s.waves[waveIndex]
	s.sched.After(def.Batches[batch].Delay, func(float64) {
		if !s.game.IsPlaying() {
			s.abort()
			return
		}
		s.ecs.Wave.Batch = batch
		s.ecs.Wave.Spawned = 0
		s.spawnStep(waveIndex, batch)
	})
}

// spawnStep выпускает одного крипа и планирует следующего.
// После последнего крипа пачки ожидания нет.
func (s *WaveSystem) spawnStep(waveIndex, batch int) {
	if !s.game.IsPlaying() {
		s.abort()
		return
	}
	def := &s.waves[waveIndex]
	b := def.Batches[batch]

	s.spawnCreep(b.CreepID, waveIndex)
	s.ecs.Wave.Spawned++

	switch {
	case s.ecs.Wave.Spawned < b.Count:
		s.sched.After(def.Interval(b), func(float64) { s.spawnStep(waveIndex, batch) })
	case batch+1 < len(def.Batches):
		s.scheduleBatch(waveIndex, batch+1)
	default:
		s.ecs.Wave.Phase = component.WaveAwaitingClear
		s.sched.After(config.WaveClearPollInterval, func(float64) { s.pollClear() })
	}
}

func (s *WaveSystem) spawnCreep(creepID string, waveIndex int) {
	def, ok := s.creeps(creepID)
	if !ok {
		s.logger.Warn("unknown creep in wave", "creep", creepID, "wave", waveIndex+1)
		return
	}
	sp, ok := s.nextSpawnPoint()
	if !ok {
		s.logger.Warn("no spawn points, creep skipped", "creep", creepID, "wave", waveIndex+1)
		return
	}

	base := s.ecs.Base.Pos
	h, e, err := s.ecs.Creeps.Acquire(def.ID, sp.Pos, sp.Pos.Bearing(base))
	if err != nil {
		s.logger.Warn("creep spawn failed", "creep", creepID, "error", err)
		return
	}
	e.Value = component.Creep{
		Def:       def,
		Health:    def.MaxHealth,
		MaxHealth: def.MaxHealth,
		Damage:    def.Damage,
		BaseSpeed: def.Speed,
		Speed:     def.Speed,
		Target:    base,
		Wave:      waveIndex,
	}
	wave := s.ecs.Wave
	wave.Active = append(wave.Active, h)
	wave.Total++

	s.logger.Debug("creep spawned", "creep", h.String(), "kind", def.ID, "spawn_point", sp.Name)
	s.eventDispatcher.Dispatch(event.Event{Type: event.CreepSpawned, Data: event.CreepData{Creep: h, Def: def}})
}

// nextSpawnPoint обходит точки спавна в случайном порядке, перемешивая заново,
// когда все использованы.
func (s *WaveSystem) nextSpawnPoint() (defs.SpawnPoint, bool) {
	if len(s.spawnPoints) == 0 {
		return defs.SpawnPoint{}, false
	}
	if s.spawnNext >= len(s.spawnOrder) {
		s.spawnOrder = s.rng.Perm(len(s.spawnPoints))
		s.spawnNext = 0
	}
	sp := s.spawnPoints[s.spawnOrder[s.spawnNext]]
	s.spawnNext++
	return sp, true
}

// ActiveCreepCount prunes dead and returned creeps from the wave's set and returns
// how many are left.
func (s *WaveSystem) ActiveCreepCount() int {
	wave := s.ecs.Wave
	alive := wave.Active[:0]
	for _, h := range wave.Active {
		if _, ok := s.ecs.Creep(h); ok {
			alive = append(alive, h)
		}
	}
	clear(wave.Active[len(alive):])
	wave.Active = alive
	return len(alive)
}

func (s *WaveSystem) pollClear() {
	if !s.game.IsPlaying() {
		s.abort()
		return
	}
	if s.ActiveCreepCount() > 0 {
		s.sched.After(config.WaveClearPollInterval, func(float64) { s.pollClear() })
		return
	}
	s.complete()
}

func (s *WaveSystem) complete() {
	wave := s.ecs.Wave
	wave.Phase = component.WaveComplete
	wave.InProgress = false
	completed := wave.Index + 1

	s.logger.Info("wave completed", "wave", completed)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveCompleted, Data: event.WaveData{Index: completed}})
	wave.Index++

	if wave.Index >= len(s.waves) {
		s.logger.Info("all waves completed", "waves", len(s.waves))
		s.eventDispatcher.Dispatch(event.Event{Type: event.AllWavesCompleted})
		s.game.CompleteAllWaves()
		return
	}

	s.dispatchWaveChanged()
	s.scheduleStart(s.timeBetweenWaves)
}

// abort останавливает спавн текущей волны. Волна остаётся InProgress до сброса матча.
func (s *WaveSystem) abort() {
	wave := s.ecs.Wave
	if wave.Phase == component.WaveAborted {
		return
	}
	s.logger.Info("wave aborted", "wave", wave.Index+1, "phase", wave.Phase.String())
	wave.Phase = component.WaveAborted
}

func (s *WaveSystem) dispatchWaveChanged() {
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveChanged, Data: event.WaveData{Index: s.ecs.Wave.Index + 1}})
}
