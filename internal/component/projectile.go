// internal/component/projectile.go
package component

import (
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/pool"
	"go-creep-defense/pkg/geom"
)

// Projectile представляет летящий снаряд.
type Projectile struct {
	Damage  int
	Speed   float64
	Slow    defs.SlowDef
	HasSlow bool
	Target  pool.Handle // слабая ссылка на крипа
	Aim     geom.Vec    // последняя известная точка прицеливания
	TTL     float64     // оставшееся время жизни
	Hit     bool        // попадание уже засчитано
}
