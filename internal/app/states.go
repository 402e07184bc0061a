// internal/app/states.go
package app

import "go-creep-defense/internal/state"

// Убеждаемся, что состояния соответствуют интерфейсу State
var (
	_ state.State = (*MenuState)(nil)
	_ state.State = (*PlayingState)(nil)
	_ state.State = (*PauseState)(nil)
	_ state.State = (*GameOverState)(nil)
)

// MenuState - главное меню, симуляция стоит.
type MenuState struct {
	game *Game
}

func (m *MenuState) Enter() {
	m.game.PlacementSystem.Reset()
}

func (m *MenuState) Update(deltaTime float64) {}

func (m *MenuState) Exit() {}

// PlayingState - единственное состояние, в котором идёт время симуляции.
type PlayingState struct {
	game *Game
}

func (p *PlayingState) Enter() {}

func (p *PlayingState) Update(deltaTime float64) {
	p.game.step(deltaTime)
}

func (p *PlayingState) Exit() {}

// PauseState замораживает планировщик вместе со всем миром. Установка башен
// на паузе разрешена.
type PauseState struct {
	game *Game
}

func (s *PauseState) Enter() {
	s.game.logger.Debug("paused", "time", s.game.Scheduler.Now())
}

func (s *PauseState) Update(deltaTime float64) {}

func (s *PauseState) Exit() {}

// GameOverState - Won или Lost. Мир остаётся как есть до перезапуска.
type GameOverState struct {
	game *Game
	won  bool
}

func (s *GameOverState) Enter() {
	if s.game.ECS.Placement.Active {
		s.game.PlacementSystem.Exit()
	}
	s.game.logger.Info("match over",
		"won", s.won,
		"wave", s.game.ECS.Wave.Index,
		"base_health", s.game.ECS.Base.Health,
		"coins", s.game.ECS.Wallet.Coins,
	)
}

func (s *GameOverState) Update(deltaTime float64) {}

func (s *GameOverState) Exit() {}
