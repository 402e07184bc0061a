// internal/pool/pool.go
package pool

import (
	"errors"
	"fmt"

	"go-creep-defense/pkg/geom"
)

var (
	ErrUnknownKind   = errors.New("pool: unknown kind")
	ErrDuplicateKind = errors.New("pool: kind already registered")
	ErrNotLeased     = errors.New("pool: instance is not leased")
	ErrStaleHandle   = errors.New("pool: stale handle")
)

// Handle identifies one lease of a pooled instance. A handle becomes stale as soon
// as the instance is released, even if the same slot is leased again later.
type Handle struct {
	index int32
	gen   uint32
}

// IsZero reports whether h was never issued by a pool.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(none)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.index, h.gen)
}

// Entry is a pooled instance: the kind it was registered under, the lease flag,
// the pose and the payload.
type Entry[T any] struct {
	Kind  string
	Pos   geom.Vec
	Angle float64
	Value T

	leased bool
	gen    uint32
}

// Active reports whether the entry is currently leased.
func (e *Entry[T]) Active() bool { return e.leased }

type kindPool[T any] struct {
	factory func() T
	free    []int32 // FIFO
	size    int
}

// Pool - арена переиспользуемых объектов одного типа, разбитая по видам (kind).
// Слоты никогда не освобождаются: возврат в пул только деактивирует запись.
//
// Pool is not safe for concurrent use; all calls are expected from the simulation loop.
type Pool[T any] struct {
	entries []*Entry[T]
	kinds   map[string]*kindPool[T]
	active  int

	// OnGrow is called when Acquire had to allocate past the registered capacity.
	OnGrow func(kind string, size int)
}

func New[T any]() *Pool[T] {
	return &Pool[T]{
		kinds: make(map[string]*kindPool[T]),
	}
}

// Register pre-allocates initialSize inactive instances of kind built by factory.
func (p *Pool[T]) Register(kind string, factory func() T, initialSize int) error {
	if kind == "" {
		return fmt.Errorf("register: empty kind: %w", ErrUnknownKind)
	}
	if _, exists := p.kinds[kind]; exists {
		return fmt.Errorf("register %q: %w", kind, ErrDuplicateKind)
	}
	if factory == nil {
		factory = func() T {
			var zero T
			return zero
		}
	}
	kp := &kindPool[T]{factory: factory}
	p.kinds[kind] = kp
	for i := 0; i < initialSize; i++ {
		kp.free = append(kp.free, p.allocate(kind, kp))
	}
	return nil
}

// Registered reports whether kind has been registered.
func (p *Pool[T]) Registered(kind string) bool {
	_, ok := p.kinds[kind]
	return ok
}

func (p *Pool[T]) allocate(kind string, kp *kindPool[T]) int32 {
	idx := int32(len(p.entries))
	p.entries = append(p.entries, &Entry[T]{
		Kind:  kind,
		Value: kp.factory(),
	})
	kp.size++
	return idx
}

// Acquire leases an inactive instance of kind, placing it at pos facing angle.
// When no free instance is left the pool grows by one; it only fails for kinds
// that were never registered.
func (p *Pool[T]) Acquire(kind string, pos geom.Vec, angle float64) (Handle, *Entry[T], error) {
	kp, ok := p.kinds[kind]
	if !ok {
		return Handle{}, nil, fmt.Errorf("acquire %q: %w", kind, ErrUnknownKind)
	}

	var idx int32
	if len(kp.free) > 0 {
		idx = kp.free[0]
		kp.free = kp.free[1:]
	} else {
		idx = p.allocate(kind, kp)
		if p.OnGrow != nil {
			p.OnGrow(kind, kp.size)
		}
	}

	e := p.entries[idx]
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	e.leased = true
	e.Pos = pos
	e.Angle = angle
	p.active++
	return Handle{index: idx, gen: e.gen}, e, nil
}

// Release deactivates the instance behind h and returns it to its kind's free queue.
// Releasing a handle twice reports ErrStaleHandle instead of corrupting the queue.
func (p *Pool[T]) Release(h Handle) error {
	e, err := p.lookup(h)
	if err != nil {
		return err
	}
	if !e.leased {
		return fmt.Errorf("release %s: %w", h, ErrNotLeased)
	}
	e.leased = false
	// Поколение сдвигаем сразу, чтобы старые ссылки перестали резолвиться.
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	p.active--
	kp := p.kinds[e.Kind]
	kp.free = append(kp.free, h.index)
	return nil
}

func (p *Pool[T]) lookup(h Handle) (*Entry[T], error) {
	if h.IsZero() || h.index < 0 || int(h.index) >= len(p.entries) {
		return nil, fmt.Errorf("%s: %w", h, ErrStaleHandle)
	}
	e := p.entries[h.index]
	if e.gen != h.gen {
		return nil, fmt.Errorf("%s: %w", h, ErrStaleHandle)
	}
	return e, nil
}

// Get resolves a live lease. It returns false for zero, stale or released handles.
func (p *Pool[T]) Get(h Handle) (*Entry[T], bool) {
	e, err := p.lookup(h)
	if err != nil || !e.leased {
		return nil, false
	}
	return e, true
}

// Each calls fn for every leased entry in arena order (allocation order).
// Iteration stops when fn returns false. Releasing entries from fn is allowed.
func (p *Pool[T]) Each(fn func(h Handle, e *Entry[T]) bool) {
	for i, e := range p.entries {
		if !e.leased {
			continue
		}
		if !fn(Handle{index: int32(i), gen: e.gen}, e) {
			return
		}
	}
}

// ReleaseAll returns every leased entry to its free queue.
func (p *Pool[T]) ReleaseAll() {
	p.Each(func(h Handle, _ *Entry[T]) bool {
		_ = p.Release(h)
		return true
	})
}

// Active returns the number of leased instances across all kinds.
func (p *Pool[T]) Active() int { return p.active }

// Size returns how many instances exist for kind, leased or free.
func (p *Pool[T]) Size(kind string) int {
	if kp, ok := p.kinds[kind]; ok {
		return kp.size
	}
	return 0
}

// Free returns how many instances of kind are waiting in the free queue.
func (p *Pool[T]) Free(kind string) int {
	if kp, ok := p.kinds[kind]; ok {
		return len(kp.free)
	}
	return 0
}
