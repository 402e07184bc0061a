// internal/defs/enemies.go
package defs

// MaxCoinReward caps the upper bound of a creep's reward roll.
const MaxCoinReward = 30

// CreepDefinition holds all the static data for a specific type of creep.
// The ID doubles as the creep's pool kind.
type CreepDefinition struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Damage    int     `json:"damage"`     // урон базе при достижении
	MaxHealth int     `json:"max_health"` // стартовое здоровье
	Speed     float64 `json:"speed"`      // units per second
	MinReward int     `json:"min_reward"`
	MaxReward int     `json:"max_reward"`
	PoolSize  int     `json:"pool_size"`
}

func (d *CreepDefinition) applyDefaults() {
	if d.Name == "" {
		d.Name = d.ID
	}
	if d.MinReward == 0 {
		d.MinReward = 1
	}
	if d.MaxReward == 0 {
		d.MaxReward = d.MinReward
	}
}

func (d *CreepDefinition) validate() []error {
	subject := "creep " + quote(d.ID)
	var errs []error
	if d.ID == "" {
		errs = append(errs, configErr("creep", "missing id"))
	}
	if d.MaxHealth <= 0 {
		errs = append(errs, configErr(subject, "max_health must be positive, got %d", d.MaxHealth))
	}
	if d.Damage < 0 {
		errs = append(errs, configErr(subject, "damage must not be negative, got %d", d.Damage))
	}
	if d.Speed < 0 {
		errs = append(errs, configErr(subject, "speed must not be negative, got %v", d.Speed))
	}
	if d.MinReward < 0 || d.MaxReward < d.MinReward || d.MaxReward > MaxCoinReward {
		errs = append(errs, configErr(subject, "reward range [%d, %d] outside 0..%d", d.MinReward, d.MaxReward, MaxCoinReward))
	}
	if d.PoolSize < 0 {
		errs = append(errs, configErr(subject, "pool_size must not be negative, got %d", d.PoolSize))
	}
	return errs
}
