// Package system layers a richer registry above the World's own system
// list: named groups, per-system and per-group enable/disable, priority
// reassignment, and staged per-group updates.
package system

import "github.com/promenade/engine/internal/core/ecs"

// Execution priorities, lower runs earlier. Systems are free to use any
// integer in between.
const (
	PriorityHighest = 0
	PriorityHigh    = 25
	PriorityNormal  = 50
	PriorityLow     = 75
	PriorityLowest  = 100
)

// Base is the embeddable implementation of ecs.System plus the mutators the
// Manager needs (id stamping, active toggling, priority reassignment).
type Base struct {
	id       string
	priority int
	active   bool
	required []ecs.Kind
}

// NewBase returns an active Base at the given priority requiring the given
// component kinds.
func NewBase(priority int, required ...ecs.Kind) Base {
	return Base{priority: priority, active: true, required: required}
}

func (b *Base) ID() string           { return b.id }
func (b *Base) SetID(id string)      { b.id = id }
func (b *Base) Priority() int        { return b.priority }
func (b *Base) SetPriority(p int)    { b.priority = p }
func (b *Base) Active() bool         { return b.active }
func (b *Base) SetActive(v bool)     { b.active = v }
func (b *Base) Required() []ecs.Kind { return b.required }

// Update is a no-op so pure bookkeeping systems can embed Base without
// implementing it.
func (b *Base) Update(dt float64, entities []*ecs.Entity) {}
