package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultMaxPoolSize bounds each kind's recycle pool when no explicit
// capacity is configured. Overflow recycles are dropped, not errors.
const DefaultMaxPoolSize = 128

// Constructor builds a fresh component instance from optional arguments.
// The same arguments are passed to Reset when a pooled instance is reused.
type Constructor func(args ...any) Component

// Factory creates components and recycles them through bounded per-kind
// pools to cut allocation churn across spawn/despawn cycles. It is
// instantiable on purpose: each World (and each test) gets its own.
type Factory struct {
	log     *zap.Logger
	maxPool int
	ctors   map[Kind]Constructor
	pools   map[Kind][]Component
}

// NewFactory returns a factory with the given pool capacity per kind.
// maxPool <= 0 selects DefaultMaxPoolSize.
func NewFactory(maxPool int, log *zap.Logger) *Factory {
	if maxPool <= 0 {
		maxPool = DefaultMaxPoolSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{
		log:     log,
		maxPool: maxPool,
		ctors:   make(map[Kind]Constructor, 16),
		pools:   make(map[Kind][]Component, 16),
	}
}

// Register associates a kind with a constructor and initializes an empty
// pool for it. Re-registering overwrites the constructor but keeps any
// pooled instances; ClearPools is the explicit way to drop those.
func (f *Factory) Register(kind Kind, ctor Constructor) {
	if _, exists := f.ctors[kind]; exists {
		f.log.Warn("component kind re-registered, constructor overwritten",
			zap.Stringer("kind", kind))
	} else {
		f.pools[kind] = nil
	}
	f.ctors[kind] = ctor
}

// Unregister removes the constructor and discards the kind's pool entirely.
// Unknown kinds are a no-op.
func (f *Factory) Unregister(kind Kind) {
	delete(f.ctors, kind)
	delete(f.pools, kind)
}

func (f *Factory) IsRegistered(kind Kind) bool {
	_, ok := f.ctors[kind]
	return ok
}

// Create returns a component of the given kind, reusing a pooled instance
// when one is available. Recycled instances are Reset with args before they
// are handed out; in both paths the envelope kind is forced to match and the
// component comes back active. Creating an unregistered kind is an error.
func (f *Factory) Create(kind Kind, args ...any) (Component, error) {
	ctor, ok := f.ctors[kind]
	if !ok {
		return nil, fmt.Errorf("component kind %q is not registered", kind)
	}

	var c Component
	if pool := f.pools[kind]; len(pool) > 0 {
		c = pool[len(pool)-1]
		f.pools[kind] = pool[:len(pool)-1]
		c.Reset(args...)
	} else {
		c = ctor(args...)
	}
	c.stamp(kind)
	c.SetActive(true)
	return c, nil
}

// Recycle deactivates the component, detaches it from its entity, and
// returns it to its kind's pool. Components of unregistered kinds are
// silently dropped, as are recycles past the pool capacity. Recycling the
// same instance twice without an intervening Create does not duplicate it.
func (f *Factory) Recycle(c Component) {
	if c == nil {
		return
	}
	kind := c.Kind()
	if _, ok := f.ctors[kind]; !ok {
		return
	}
	c.SetActive(false)
	c.bindEntity("")

	pool := f.pools[kind]
	if len(pool) >= f.maxPool {
		return
	}
	for _, pooled := range pool {
		if pooled == c {
			return
		}
	}
	f.pools[kind] = append(pool, c)
}

// PoolSize returns the kind's current pool length, 0 for unregistered kinds.
func (f *Factory) PoolSize(kind Kind) int {
	return len(f.pools[kind])
}

// ClearPools empties every pool without touching registrations.
func (f *Factory) ClearPools() {
	for kind := range f.pools {
		f.pools[kind] = nil
	}
}
