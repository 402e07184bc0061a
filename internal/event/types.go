// internal/event/types.go
package event

import (
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/pool"
)

// Events for presentation layers.
const (
	CoinsChanged        EventType = "CoinsChanged"        // CoinsChangedData
	BaseHealthChanged   EventType = "BaseHealthChanged"   // BaseHealthData
	WaveChanged         EventType = "WaveChanged"         // WaveData (1-based display index)
	GameStateChanged    EventType = "GameStateChanged"    // GameStateData
	WaveStarted         EventType = "WaveStarted"         // WaveData
	WaveCompleted       EventType = "WaveCompleted"       // WaveData
	AllWavesCompleted   EventType = "AllWavesCompleted"   // nil
	TurretPlaced        EventType = "TurretPlaced"        // TurretPlacedData
	TurretTypeSelected  EventType = "TurretTypeSelected"  // *defs.TurretDefinition
	PlacementModeExited EventType = "PlacementModeExited" // nil
)

// Simulation events.
const (
	CreepSpawned     EventType = "CreepSpawned"     // CreepData
	CreepDamaged     EventType = "CreepDamaged"     // CreepDamagedData
	CreepKilled      EventType = "CreepKilled"      // CreepKilledData
	CreepReachedBase EventType = "CreepReachedBase" // CreepData
	BaseDestroyed    EventType = "BaseDestroyed"    // nil
	TurretFired      EventType = "TurretFired"      // TurretFiredData
	ProjectileHit    EventType = "ProjectileHit"    // CreepData
	PoolGrown        EventType = "PoolGrown"        // PoolGrownData
)

type CoinsChangedData struct {
	Coins int
}

type BaseHealthData struct {
	Current, Max int
}

type WaveData struct {
	Index int
}

type GameStateData struct {
	State string
}

type TurretPlacedData struct {
	Turret pool.Handle
	Def    *defs.TurretDefinition
}

type CreepData struct {
	Creep pool.Handle
	Def   *defs.CreepDefinition
}

type CreepDamagedData struct {
	Creep  pool.Handle
	Amount int
	Health int
}

type CreepKilledData struct {
	Creep       pool.Handle
	Def         *defs.CreepDefinition
	Reward      int
	ReachedBase bool // погиб, дойдя до базы
}

type TurretFiredData struct {
	Turret  pool.Handle
	Target  pool.Handle
	Instant bool
}

type PoolGrownData struct {
	Pool string
	Kind string
	Size int
}
