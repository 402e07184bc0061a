// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"go-creep-defense/internal/config"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/schedule"
	"go-creep-defense/internal/state"
	"go-creep-defense/internal/system"
	"go-creep-defense/internal/utils"

	"github.com/google/uuid"
)

// Option настраивает Game при создании.
type Option func(*Game)

// WithLogger sets the logger every system derives its own logger from.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSeed overrides the content seed. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.seed = &seed
	}
}

// Game holds the main game state and logic.
type Game struct {
	MatchID         uuid.UUID
	Library         *defs.Library
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher
	Scheduler       *schedule.Scheduler
	StateMachine    *state.StateMachine
	Rng             *utils.PRNGService

	HealthSystem       *system.HealthSystem
	StatusEffectSystem *system.StatusEffectSystem
	MovementSystem     *system.MovementSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	WaveSystem         *system.WaveSystem
	EconomySystem      *system.EconomySystem
	BaseSystem         *system.BaseSystem
	PlacementSystem    *system.PlacementSystem
	VisualEffectSystem *system.VisualEffectSystem

	logger *slog.Logger
	seed   *int64
	rounds int
}

// NewGame builds a match from lib. Only configuration problems are reported as
// errors; the game starts in MainMenu.
func NewGame(lib *defs.Library, opts ...Option) (*Game, error) {
	if lib == nil {
		return nil, errors.New("new game: nil library")
	}
	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g := &Game{
		MatchID:         uuid.New(),
		Library:         lib,
		ECS:             entity.NewECS(),
		EventDispatcher: event.NewDispatcher(),
		Scheduler:       schedule.New(),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("match_id", g.MatchID.String())

	seed := lib.Config.Seed
	if g.seed != nil {
		seed = *g.seed
	}
	g.Rng = utils.NewPRNGService(seed)

	if err := g.registerPools(); err != nil {
		g.logger.Error("pool registration failed", "error", err)
		return nil, fmt.Errorf("new game: %w", err)
	}

	ecs, dispatcher := g.ECS, g.EventDispatcher
	g.HealthSystem = system.NewHealthSystem(ecs, dispatcher, g.Rng, g.systemLogger("health"))
	g.HealthSystem.RewardOnBaseArrival = lib.Config.RewardOnBaseArrival
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	g.BaseSystem = system.NewBaseSystem(ecs, dispatcher, g.systemLogger("base"))
	g.EconomySystem = system.NewEconomySystem(ecs, dispatcher, g.systemLogger("economy"))
	g.MovementSystem = system.NewMovementSystem(ecs, g.HealthSystem, g.BaseSystem, g)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, dispatcher, g.HealthSystem, g.systemLogger("projectile"))
	g.CombatSystem = system.NewCombatSystem(ecs, dispatcher, g.HealthSystem, g.ProjectileSystem, g.systemLogger("combat"))
	g.WaveSystem = system.NewWaveSystem(ecs, dispatcher, g.Scheduler, g.Rng, lib, g, g.systemLogger("wave"))
	g.PlacementSystem = system.NewPlacementSystem(ecs, dispatcher, g.EconomySystem, lib.Level, lib.Config.MinPlacementDistance, g.systemLogger("placement"))
	g.VisualEffectSystem = system.NewVisualEffectSystem(ecs, dispatcher)

	g.StateMachine = state.NewStateMachine(map[state.Phase]state.State{
		state.MainMenu: &MenuState{game: g},
		state.Playing:  &PlayingState{game: g},
		state.Paused:   &PauseState{game: g},
		state.Won:      &GameOverState{game: g, won: true},
		state.Lost:     &GameOverState{game: g},
	})
	g.StateMachine.OnChange(func(from, to state.Phase) {
		g.logger.Info("game state changed", "from", from.String(), "to", to.String())
		dispatcher.Dispatch(event.Event{Type: event.GameStateChanged, Data: event.GameStateData{State: to.String()}})
	})

	g.logger.Info("game created", "seed", g.Rng.Seed(), "waves", len(lib.Waves), "turrets", len(lib.Turrets))
	return g, nil
}

func (g *Game) systemLogger(name string) *slog.Logger {
	return g.logger.With("system", name)
}

// registerPools заводит по пулу на каждый вид крипа, башни и снаряда.
func (g *Game) registerPools() error {
	lib := g.Library
	for i := range lib.Creeps {
		d := &lib.Creeps[i]
		if err := g.ECS.Creeps.Register(d.ID, nil, d.PoolSize); err != nil {
			return err
		}
	}
	for i := range lib.Turrets {
		d := &lib.Turrets[i]
		if err := g.ECS.Turrets.Register(d.ID, nil, d.PoolSize); err != nil {
			return err
		}
	}
	for _, kind := range lib.ProjectileKinds() {
		if err := g.ECS.Projectiles.Register(kind, nil, lib.Config.ProjectilePoolSize); err != nil {
			return err
		}
	}

	g.ECS.Creeps.OnGrow = g.poolGrown("creeps")
	g.ECS.Turrets.OnGrow = g.poolGrown("turrets")
	g.ECS.Projectiles.OnGrow = g.poolGrown("projectiles")
	return nil
}

func (g *Game) poolGrown(name string) func(kind string, size int) {
	return func(kind string, size int) {
		g.logger.Warn("pool grown", "pool", name, "kind", kind, "size", size)
		g.EventDispatcher.Dispatch(event.Event{Type: event.PoolGrown, Data: event.PoolGrownData{Pool: name, Kind: kind, Size: size}})
	}
}

// Phase returns the current match phase.
func (g *Game) Phase() state.Phase { return g.StateMachine.Phase() }

// IsPlaying reports whether simulated time advances.
func (g *Game) IsPlaying() bool { return g.Phase() == state.Playing }

// Update advances the match by deltaTime seconds. Long frames are clamped to
// MaxDeltaTime; nothing moves outside Playing.
func (g *Game) Update(deltaTime float64) {
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	g.StateMachine.Update(deltaTime)
}

// step - один тик симуляции. Порядок фиксирован: задачи планировщика, эффекты,
// движение, башни, снаряды, визуальные эффекты.
func (g *Game) step(deltaTime float64) {
	g.Scheduler.Advance(deltaTime)
	g.ECS.GameTime = g.Scheduler.Now()
	if !g.IsPlaying() {
		return
	}
	g.StatusEffectSystem.Update(deltaTime)
	g.MovementSystem.Update(deltaTime)
	if !g.IsPlaying() {
		return
	}
	g.CombatSystem.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.VisualEffectSystem.Update(deltaTime)
}

// StartNewGame resets coins, base health and the wave index, returns every entity
// to its pool, enters Playing and schedules the first wave.
func (g *Game) StartNewGame() {
	g.clear()
	cfg := g.Library.Config
	g.EconomySystem.Reset(cfg.StartingCoins)
	g.BaseSystem.Reset(g.Library.Level.Base, g.Library.Level.BaseRadius, cfg.BaseMaxHealth)

	g.rounds++
	g.logger.Info("match started", "round", g.rounds, "coins", cfg.StartingCoins, "base_health", cfg.BaseMaxHealth)
	g.StateMachine.SetPhase(state.Playing)
	g.WaveSystem.ScheduleFirstWave(cfg.TimeBeforeFirstWave)
}

// RestartGame clears the world and starts a new match.
func (g *Game) RestartGame() {
	g.StartNewGame()
}

// QuitToMenu clears the world and returns to MainMenu.
func (g *Game) QuitToMenu() bool {
	if !state.Allowed(g.Phase(), state.MainMenu) {
		return false
	}
	g.clear()
	return g.StateMachine.SetPhase(state.MainMenu)
}

func (g *Game) clear() {
	g.Scheduler.Reset()
	g.ECS.Clear()
	g.ECS.GameTime = 0
	g.WaveSystem.Reset()
	g.PlacementSystem.Reset()
	g.VisualEffectSystem.Reset()
}

// Pause freezes the simulation. Only a Playing match can be paused.
func (g *Game) Pause() bool {
	if g.Phase() != state.Playing {
		return false
	}
	return g.StateMachine.SetPhase(state.Paused)
}

// Resume continues a paused match.
func (g *Game) Resume() bool {
	if g.Phase() != state.Paused {
		return false
	}
	return g.StateMachine.SetPhase(state.Playing)
}

// TogglePause pauses a running match or resumes a paused one.
func (g *Game) TogglePause() bool {
	if g.Phase() == state.Paused {
		return g.Resume()
	}
	return g.Pause()
}

// StartNextWave starts the next wave right away. It fails outside Playing, while a
// wave is running and after the last wave.
func (g *Game) StartNextWave() bool {
	if !g.IsPlaying() {
		return false
	}
	return g.WaveSystem.StartNextWave()
}

// SpendCoins succeeds iff the wallet covers amount.
func (g *Game) SpendCoins(amount int) bool { return g.EconomySystem.SpendCoins(amount) }

// AddCoins credits amount; negative amounts are ignored.
func (g *Game) AddCoins(amount int) { g.EconomySystem.AddCoins(amount) }

// Coins returns the wallet balance.
func (g *Game) Coins() int { return g.EconomySystem.Coins() }

// DamageBase applies creep damage to the base. Outside Playing it does nothing.
// Health reaching zero loses the match.
func (g *Game) DamageBase(amount int) {
	if !g.IsPlaying() {
		return
	}
	if g.BaseSystem.Damage(amount) {
		g.StateMachine.SetPhase(state.Lost)
	}
}

// CompleteAllWaves wins the match. It is called once the final wave is cleared.
func (g *Game) CompleteAllWaves() {
	if !g.IsPlaying() {
		return
	}
	g.StateMachine.SetPhase(state.Won)
}
