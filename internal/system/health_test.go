package system

import (
	"testing"

	"go-creep-defense/internal/event"
	"go-creep-defense/pkg/geom"

	"pgregory.net/rapid"
)

func TestDamage_KillsOnceAndPaysReward(t *testing.T) {
	w := newWorld(t)
	h := w.spawn(t, geom.V(5, 0))

	if w.health.Damage(h, 4) {
		t.Fatal("4 damage killed a 10 HP creep")
	}
	if got := w.creep(t, h).Health; got != 6 {
		t.Errorf("health = %d, want 6", got)
	}
	if !w.health.Damage(h, 100) {
		t.Fatal("lethal damage did not report a kill")
	}
	if w.health.Damage(h, 5) {
		t.Error("damage after death reported a kill")
	}

	if w.counts[event.CreepKilled] != 1 {
		t.Errorf("CreepKilled fired %d times, want 1", w.counts[event.CreepKilled])
	}
	if w.counts[event.CreepDamaged] != 2 {
		t.Errorf("CreepDamaged fired %d times, want 2", w.counts[event.CreepDamaged])
	}
	if got := w.economy.Coins(); got != goblinDef.MinReward {
		t.Errorf("coins = %d, want %d", got, goblinDef.MinReward)
	}
	if _, ok := w.ecs.Creep(h); ok {
		t.Error("dead creep still resolves")
	}
	if w.ecs.Creeps.Active() != 0 {
		t.Errorf("active creeps = %d, want 0", w.ecs.Creeps.Active())
	}
}

func TestDamage_IgnoresNonPositiveAmounts(t *testing.T) {
	w := newWorld(t)
	h := w.spawn(t, geom.Vec{})
	w.health.Damage(h, 0)
	w.health.Damage(h, -3)
	if got := w.creep(t, h).Health; got != 10 {
		t.Errorf("health = %d, want 10", got)
	}
	if w.counts[event.CreepDamaged] != 0 {
		t.Errorf("CreepDamaged fired %d times, want 0", w.counts[event.CreepDamaged])
	}
}

func TestRetire_RewardPolicy(t *testing.T) {
	tests := []struct {
		name      string
		onArrival bool
		wantCoins int
	}{
		{"no reward on arrival", false, 0},
		{"reward on arrival", true, goblinDef.MinReward},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t)
			w.health.RewardOnBaseArrival = tt.onArrival
			var killed event.CreepKilledData
			w.dispatcher.Subscribe(event.CreepKilled, event.ListenerFunc(func(e event.Event) {
				killed = e.Data.(event.CreepKilledData)
			}))

			h := w.spawn(t, geom.Vec{})
			w.health.Retire(h)
			w.health.Retire(h)

			if w.counts[event.CreepKilled] != 1 {
				t.Fatalf("CreepKilled fired %d times, want 1", w.counts[event.CreepKilled])
			}
			if !killed.ReachedBase {
				t.Error("ReachedBase = false, want true")
			}
			if got := w.economy.Coins(); got != tt.wantCoins {
				t.Errorf("coins = %d, want %d", got, tt.wantCoins)
			}
		})
	}
}

// Health never rises, never goes negative, and the creep dies exactly once.
func TestDamage_MonotoneSingleDeath(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := newWorld(t)
		h := w.spawn(t, geom.Vec{})
		entry, _ := w.ecs.Creeps.Get(h)

		prev := entry.Value.Health
		kills := 0
		hits := rapid.SliceOfN(rapid.IntRange(-5, 8), 1, 30).Draw(t, "hits")
		for _, amount := range hits {
			if w.health.Damage(h, amount) {
				kills++
			}
			// запись остаётся в арене и после возврата в пул
			hp := entry.Value.Health
			if hp > prev {
				t.Fatalf("health rose from %d to %d", prev, hp)
			}
			if hp < 0 {
				t.Fatalf("health is negative: %d", hp)
			}
			prev = hp
		}

		wantKills := 0
		if prev == 0 {
			wantKills = 1
		}
		if kills != wantKills || w.counts[event.CreepKilled] != wantKills {
			t.Fatalf("kills = %d, events = %d, want %d", kills, w.counts[event.CreepKilled], wantKills)
		}
		if w.economy.Coins() != wantKills*goblinDef.MinReward {
			t.Fatalf("coins = %d after %d kills", w.economy.Coins(), wantKills)
		}
	})
}

func TestApplySlow_LatestWins(t *testing.T) {
	w := newWorld(t)
	status := NewStatusEffectSystem(w.ecs)
	h := w.spawn(t, geom.Vec{})

	w.health.ApplySlow(h, 0.5, 1)
	status.Update(0.6)
	w.health.ApplySlow(h, 0.25, 1)

	c := w.creep(t, h)
	if c.Speed != goblinDef.Speed*0.25 {
		t.Errorf("speed = %v, want %v", c.Speed, goblinDef.Speed*0.25)
	}

	status.Update(0.6) // первое замедление уже истекло бы
	if !c.Slow.Active {
		t.Fatal("second slow expired with the first one's timer")
	}
	status.Update(0.5)
	if c.Slow.Active {
		t.Error("slow still active after its duration")
	}
	if c.Speed != goblinDef.Speed {
		t.Errorf("speed after expiry = %v, want base %v", c.Speed, goblinDef.Speed)
	}
}

// Overlapping slows never compound: speed is base*latest while active and exactly
// base after expiry.
func TestApplySlow_NeverCompounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := newWorld(t)
		status := NewStatusEffectSystem(w.ecs)
		h := w.spawn(t, geom.Vec{})
		entry, _ := w.ecs.Creeps.Get(h)
		c := &entry.Value

		var lastMult float64
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "slow") {
				lastMult = rapid.Float64Range(0, 1).Draw(t, "mult")
				w.health.ApplySlow(h, lastMult, rapid.Float64Range(0.05, 2).Draw(t, "dur"))
			} else {
				status.Update(rapid.Float64Range(0.01, 0.5).Draw(t, "dt"))
			}
			want := c.BaseSpeed
			if c.Slow.Active {
				want = c.BaseSpeed * lastMult
			}
			if c.Speed != want {
				t.Fatalf("speed = %v, want %v (slow active=%v)", c.Speed, want, c.Slow.Active)
			}
		}
	})
}
