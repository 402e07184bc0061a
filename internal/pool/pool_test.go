package pool

import (
	"errors"
	"testing"

	"go-creep-defense/pkg/geom"

	"pgregory.net/rapid"
)

type goblin struct {
	HP int
}

func newGoblin() goblin { return goblin{HP: 3} }

func TestRegister_PreallocatesInactive(t *testing.T) {
	p := New[goblin]()
	if err := p.Register("Goblin", newGoblin, 2); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := p.Size("Goblin"); got != 2 {
		t.Errorf("Size = %d, want 2", got)
	}
	if got := p.Free("Goblin"); got != 2 {
		t.Errorf("Free = %d, want 2", got)
	}
	if got := p.Active(); got != 0 {
		t.Errorf("Active = %d, want 0", got)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	p := New[goblin]()
	_ = p.Register("Goblin", newGoblin, 1)
	err := p.Register("Goblin", newGoblin, 1)
	if !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("err = %v, want ErrDuplicateKind", err)
	}
}

// A third concurrent lease grows the pool instead of failing.
func TestAcquire_GrowsPastInitialSize(t *testing.T) {
	p := New[goblin]()
	var grownKind string
	var grownSize int
	p.OnGrow = func(kind string, size int) {
		grownKind, grownSize = kind, size
	}
	if err := p.Register("Goblin", newGoblin, 2); err != nil {
		t.Fatal(err)
	}

	var handles []Handle
	for i := 0; i < 3; i++ {
		h, e, err := p.Acquire("Goblin", geom.V(float64(i), 0), 0)
		if err != nil {
			t.Fatalf("Acquire #%d: %v", i+1, err)
		}
		if !e.Active() {
			t.Errorf("entry #%d not active", i+1)
		}
		handles = append(handles, h)
	}

	if got := p.Active(); got != 3 {
		t.Errorf("Active = %d, want 3", got)
	}
	if got := p.Size("Goblin"); got != 3 {
		t.Errorf("Size = %d, want 3", got)
	}
	if grownKind != "Goblin" || grownSize != 3 {
		t.Errorf("OnGrow(%q, %d), want (Goblin, 3)", grownKind, grownSize)
	}
	seen := map[Handle]bool{}
	for _, h := range handles {
		if seen[h] {
			t.Fatalf("handle %s leased twice", h)
		}
		seen[h] = true
	}
}

func TestAcquire_UnknownKind(t *testing.T) {
	p := New[goblin]()
	_, _, err := p.Acquire("Orc", geom.Vec{}, 0)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestAcquire_SetsPose(t *testing.T) {
	p := New[goblin]()
	_ = p.Register("Goblin", newGoblin, 1)
	_, e, _ := p.Acquire("Goblin", geom.V(3, 4), 1.5)
	if e.Pos != geom.V(3, 4) || e.Angle != 1.5 {
		t.Errorf("pose = %v/%v, want (3,4)/1.5", e.Pos, e.Angle)
	}
	if e.Kind != "Goblin" {
		t.Errorf("Kind = %q, want Goblin", e.Kind)
	}
}

func TestRelease_TwiceIsRejected(t *testing.T) {
	p := New[goblin]()
	_ = p.Register("Goblin", newGoblin, 1)
	h, _, _ := p.Acquire("Goblin", geom.Vec{}, 0)

	if err := p.Release(h); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	if err := p.Release(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("second Release err = %v, want ErrStaleHandle", err)
	}
	if got := p.Free("Goblin"); got != 1 {
		t.Errorf("Free = %d, want 1", got)
	}
}

func TestGet_StaleAfterReuse(t *testing.T) {
	p := New[goblin]()
	_ = p.Register("Goblin", newGoblin, 1)
	old, _, _ := p.Acquire("Goblin", geom.Vec{}, 0)
	_ = p.Release(old)
	fresh, _, _ := p.Acquire("Goblin", geom.Vec{}, 0)

	if _, ok := p.Get(old); ok {
		t.Error("old handle still resolves after slot reuse")
	}
	if _, ok := p.Get(fresh); !ok {
		t.Error("fresh handle does not resolve")
	}
	if _, ok := p.Get(Handle{}); ok {
		t.Error("zero handle resolves")
	}
}

func TestEach_ArenaOrderAndReleaseDuringIteration(t *testing.T) {
	p := New[goblin]()
	_ = p.Register("Goblin", newGoblin, 0)
	for i := 0; i < 4; i++ {
		_, e, _ := p.Acquire("Goblin", geom.Vec{}, 0)
		e.Value.HP = i
	}

	var order []int
	p.Each(func(h Handle, e *Entry[goblin]) bool {
		order = append(order, e.Value.HP)
		if e.Value.HP%2 == 0 {
			if err := p.Release(h); err != nil {
				t.Errorf("Release during Each: %v", err)
			}
		}
		return true
	})
	want := []int{0, 1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if got := p.Active(); got != 2 {
		t.Errorf("Active = %d, want 2", got)
	}
}

func TestReleaseAll(t *testing.T) {
	p := New[goblin]()
	_ = p.Register("Goblin", newGoblin, 2)
	_ = p.Register("Orc", newGoblin, 1)
	p.Acquire("Goblin", geom.Vec{}, 0)
	p.Acquire("Orc", geom.Vec{}, 0)

	p.ReleaseAll()

	if got := p.Active(); got != 0 {
		t.Errorf("Active = %d, want 0", got)
	}
	if p.Free("Goblin") != 2 || p.Free("Orc") != 1 {
		t.Errorf("Free = %d/%d, want 2/1", p.Free("Goblin"), p.Free("Orc"))
	}
}

// An instance is never leased to two owners at once, whatever the order of calls.
func TestPool_NeverDoubleLeases(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := New[goblin]()
		_ = p.Register("Goblin", newGoblin, rapid.IntRange(0, 4).Draw(t, "initial"))

		var leased []Handle
		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(leased) > 0 && rapid.Bool().Draw(t, "release") {
				j := rapid.IntRange(0, len(leased)-1).Draw(t, "which")
				if err := p.Release(leased[j]); err != nil {
					t.Fatalf("Release: %v", err)
				}
				leased = append(leased[:j], leased[j+1:]...)
				continue
			}
			h, _, err := p.Acquire("Goblin", geom.Vec{}, 0)
			if err != nil {
				t.Fatalf("Acquire: %v", err)
			}
			leased = append(leased, h)
		}

		seen := map[int32]bool{}
		for _, h := range leased {
			if seen[h.index] {
				t.Fatalf("slot %d leased twice", h.index)
			}
			seen[h.index] = true
			if _, ok := p.Get(h); !ok {
				t.Fatalf("live handle %s does not resolve", h)
			}
		}
		if p.Active() != len(leased) {
			t.Fatalf("Active = %d, want %d", p.Active(), len(leased))
		}
		if p.Size("Goblin") != p.Active()+p.Free("Goblin") {
			t.Fatalf("size %d != active %d + free %d", p.Size("Goblin"), p.Active(), p.Free("Goblin"))
		}
	})
}
