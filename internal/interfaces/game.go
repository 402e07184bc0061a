// internal/interfaces/game.go
package interfaces

import (
	"go-creep-defense/internal/app"
	"go-creep-defense/pkg/geom"
)

// Game - то, чем фронтенды (окно, терминал, headless) управляют матчем.
// Реализуется *app.Game.
type Game interface {
	Update(deltaTime float64)
	Snapshot() app.Snapshot

	StartNewGame()
	RestartGame()
	QuitToMenu() bool
	TogglePause() bool
	StartNextWave() bool

	SelectTurretTypeByID(id string) bool
	TryPlaceTurret(pos geom.Vec) bool
	CanPlaceTurret(pos geom.Vec) bool
	ExitPlacementMode()
}

var _ Game = (*app.Game)(nil)
