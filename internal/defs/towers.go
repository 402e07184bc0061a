// internal/defs/towers.go
package defs

// SlowDef describes a timed speed multiplier applied on hit.
type SlowDef struct {
	Multiplier float64 `json:"multiplier"` // 0.5 = half speed
	Duration   float64 `json:"duration"`   // seconds
}

// TurretDefinition holds all the static data for a specific type of turret.
type TurretDefinition struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Cost            int      `json:"cost"`
	Damage          int      `json:"damage"`
	Range           float64  `json:"range"`
	FireRate        float64  `json:"fire_rate"` // Shots per second
	ProjectileSpeed float64  `json:"projectile_speed"`
	Projectile      string   `json:"projectile,omitempty"` // pool kind; empty means instant hit
	Slow            *SlowDef `json:"slow,omitempty"`
	PoolSize        int      `json:"pool_size"`
}

// FireInterval is the minimum time between two shots.
func (d *TurretDefinition) FireInterval() float64 {
	return 1 / d.FireRate
}

// HasProjectile reports whether shots travel as pooled projectiles.
func (d *TurretDefinition) HasProjectile() bool {
	return d.Projectile != ""
}

func (d *TurretDefinition) applyDefaults() {
	if d.Name == "" {
		d.Name = d.ID
	}
}

func (d *TurretDefinition) validate() []error {
	subject := "turret " + quote(d.ID)
	var errs []error
	if d.ID == "" {
		errs = append(errs, configErr("turret", "missing id"))
	}
	if d.FireRate <= 0 {
		errs = append(errs, configErr(subject, "fire_rate must be positive, got %v", d.FireRate))
	}
	if d.Range <= 0 {
		errs = append(errs, configErr(subject, "range must be positive, got %v", d.Range))
	}
	if d.Cost < 0 {
		errs = append(errs, configErr(subject, "cost must not be negative, got %d", d.Cost))
	}
	if d.Damage < 0 {
		errs = append(errs, configErr(subject, "damage must not be negative, got %d", d.Damage))
	}
	if d.HasProjectile() && d.ProjectileSpeed <= 0 {
		errs = append(errs, configErr(subject, "projectile %q needs a positive projectile_speed", d.Projectile))
	}
	if d.Slow != nil {
		if d.Slow.Multiplier < 0 || d.Slow.Multiplier > 1 {
			errs = append(errs, configErr(subject, "slow multiplier %v outside [0, 1]", d.Slow.Multiplier))
		}
		if d.Slow.Duration < 0 {
			errs = append(errs, configErr(subject, "slow duration must not be negative, got %v", d.Slow.Duration))
		}
	}
	return errs
}
