// internal/defs/types.go
package defs

import (
	"strconv"

	"go-creep-defense/pkg/geom"
)

// GameConfig holds the match-wide gameplay values.
type GameConfig struct {
	StartingCoins        int     `json:"starting_coins"`
	BaseMaxHealth        int     `json:"base_max_health"`
	TimeBeforeFirstWave  float64 `json:"time_before_first_wave"`
	TimeBetweenWaves     float64 `json:"time_between_waves"`
	MinPlacementDistance float64 `json:"min_placement_distance"`
	ProjectilePoolSize   int     `json:"projectile_pool_size"`
	// RewardOnBaseArrival also pays the creep reward when it dies by reaching the base.
	RewardOnBaseArrival bool  `json:"reward_on_base_arrival"`
	Seed                int64 `json:"seed"` // 0 - seed from clock
}

// SpawnPoint is a named location creeps enter the map from.
type SpawnPoint struct {
	Name string   `json:"name"`
	Pos  geom.Vec `json:"pos"`
}

// Level is the read-only map geometry.
type Level struct {
	Base        geom.Vec     `json:"base"`
	BaseRadius  float64      `json:"base_radius"`
	SpawnPoints []SpawnPoint `json:"spawn_points"`
}

func (c *GameConfig) validate() []error {
	var errs []error
	if c.BaseMaxHealth <= 0 {
		errs = append(errs, configErr("config", "base_max_health must be positive, got %d", c.BaseMaxHealth))
	}
	if c.StartingCoins < 0 {
		errs = append(errs, configErr("config", "starting_coins must not be negative, got %d", c.StartingCoins))
	}
	if c.TimeBeforeFirstWave < 0 || c.TimeBetweenWaves < 0 {
		errs = append(errs, configErr("config", "wave delays must not be negative"))
	}
	if c.MinPlacementDistance < 0 {
		errs = append(errs, configErr("config", "min_placement_distance must not be negative"))
	}
	return errs
}

func (l *Level) validate() []error {
	if l.BaseRadius <= 0 {
		return []error{configErr("level", "base_radius must be positive, got %v", l.BaseRadius)}
	}
	return nil
}

func quote(s string) string { return strconv.Quote(s) }
