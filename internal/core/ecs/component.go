package ecs

// Component is the envelope every component type satisfies: a kind, the
// owning entity, and an active flag independent of the entity's own flag
// (a component can be inert while its entity stays active). Concrete types
// embed Base to pick up the envelope; the unexported methods keep the
// envelope stamping (kind, owner) under World/Factory control.
type Component interface {
	Kind() Kind
	Entity() EntityID
	Active() bool
	SetActive(bool)

	// Reset returns a recycled instance to its kind-appropriate defaults,
	// then applies the given constructor arguments. The Factory calls it
	// on every pool hit; no field may survive from the previous owner.
	Reset(args ...any)

	bindEntity(EntityID)
	stamp(Kind)
}

// Cloner is implemented by components that can produce a detached copy of
// themselves. EntityManager.Clone skips components that do not implement it.
type Cloner interface {
	Clone() Component
}

// Base is the embeddable component envelope.
type Base struct {
	kind   Kind
	entity EntityID
	active bool
}

// NewBase returns an active, unowned envelope for the given kind.
func NewBase(kind Kind) Base {
	return Base{kind: kind, active: true}
}

func (b *Base) Kind() Kind        { return b.kind }
func (b *Base) Entity() EntityID  { return b.entity }
func (b *Base) Active() bool      { return b.active }
func (b *Base) SetActive(v bool)  { b.active = v }
func (b *Base) Reset(args ...any) {}

func (b *Base) bindEntity(id EntityID) { b.entity = id }
func (b *Base) stamp(kind Kind)        { b.kind = kind }
