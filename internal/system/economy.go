// internal/system/economy.go
package system

import (
	"log/slog"

	"go-creep-defense/internal/entity"
	"go-creep-defense/internal/event"
)

// EconomySystem охраняет кошелёк игрока и начисляет награду за убийства.
type EconomySystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	logger          *slog.Logger
}

func NewEconomySystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, logger *slog.Logger) *EconomySystem {
	s := &EconomySystem{ecs: ecs, eventDispatcher: eventDispatcher, logger: logger}
	eventDispatcher.Subscribe(event.CreepKilled, s)
	return s
}

// Coins returns the current balance.
func (s *EconomySystem) Coins() int {
	return s.ecs.Wallet.Coins
}

// Reset sets the balance to coins.
func (s *EconomySystem) Reset(coins int) {
	if coins < 0 {
		coins = 0
	}
	s.ecs.Wallet.Coins = coins
	s.notify()
}

// CanAfford reports whether amount could be spent right now.
func (s *EconomySystem) CanAfford(amount int) bool {
	return amount >= 0 && s.ecs.Wallet.Coins >= amount
}

// SpendCoins succeeds iff the balance covers amount; on success the balance drops
// by exactly amount.
func (s *EconomySystem) SpendCoins(amount int) bool {
	if !s.CanAfford(amount) {
		return false
	}
	s.ecs.Wallet.Coins -= amount
	s.notify()
	return true
}

// AddCoins credits amount. Negative amounts are ignored.
func (s *EconomySystem) AddCoins(amount int) {
	if amount <= 0 {
		return
	}
	s.ecs.Wallet.Coins += amount
	s.notify()
}

// OnEvent обрабатывает события, на которые подписана система.
func (s *EconomySystem) OnEvent(e event.Event) {
	if e.Type != event.CreepKilled {
		return
	}
	data, ok := e.Data.(event.CreepKilledData)
	if !ok || data.Reward <= 0 {
		return
	}
	s.AddCoins(data.Reward)
}

func (s *EconomySystem) notify() {
	s.eventDispatcher.Dispatch(event.Event{Type: event.CoinsChanged, Data: event.CoinsChangedData{Coins: s.ecs.Wallet.Coins}})
}
