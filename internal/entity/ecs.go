// internal/entity/ecs.go
package entity

import (
	"go-creep-defense/internal/component"
	"go-creep-defense/internal/pool"
)

// ECS - мир симуляции. Сущности живут в пулах по видам, одиночные компоненты
// (база, кошелёк, волна, режим установки) хранятся прямо в мире.
type ECS struct {
	GameTime    float64
	Creeps      *pool.Pool[component.Creep]
	Turrets     *pool.Pool[component.Turret]
	Projectiles *pool.Pool[component.Projectile]

	Base      *component.Base
	Wallet    *component.Wallet
	Wave      *component.Wave
	Placement *component.Placement
}

func NewECS() *ECS {
	return &ECS{
		Creeps:      pool.New[component.Creep](),
		Turrets:     pool.New[component.Turret](),
		Projectiles: pool.New[component.Projectile](),
		Base:        &component.Base{},
		Wallet:      &component.Wallet{},
		Wave:        &component.Wave{},
		Placement:   &component.Placement{},
	}
}

// Creep resolves a creep handle to a live creep.
func (ecs *ECS) Creep(h pool.Handle) (*pool.Entry[component.Creep], bool) {
	e, ok := ecs.Creeps.Get(h)
	if !ok || !e.Value.IsAlive() {
		return nil, false
	}
	return e, true
}

// Clear returns every entity to its pool.
func (ecs *ECS) Clear() {
	ecs.Projectiles.ReleaseAll()
	ecs.Creeps.ReleaseAll()
	ecs.Turrets.ReleaseAll()
}
