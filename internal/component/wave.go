// internal/component/wave.go
package component

import "go-creep-defense/internal/pool"

// WavePhase is the scheduler state of the current wave.
type WavePhase int

const (
	WaveIdle WavePhase = iota
	WaveSpawning
	WaveAwaitingClear
	WaveComplete
	// WaveAborted: spawning stopped because the match left Playing mid-wave.
	WaveAborted
)

func (p WavePhase) String() string {
	switch p {
	case WaveIdle:
		return "idle"
	case WaveSpawning:
		return "spawning"
	case WaveAwaitingClear:
		return "awaiting-clear"
	case WaveComplete:
		return "complete"
	case WaveAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Wave - состояние текущей волны.
type Wave struct {
	Index      int // 0-based, only increases
	Phase      WavePhase
	InProgress bool
	Active     []pool.Handle // крипы этой волны, только для проверки зачистки
	Batch      int           // текущая пачка
	Spawned    int           // заспавнено в текущей пачке
	Total      int           // заспавнено за волну
}
