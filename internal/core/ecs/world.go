package ecs

import (
	"sort"

	"go.uber.org/zap"

	"github.com/promenade/engine/internal/core/event"
)

// Lifecycle event types emitted by World. The exact strings and payload
// shapes are the contract the rendering/UI collaborators subscribe to.
const (
	EventEntityCreated    = "entity:created"
	EventEntityRemoved    = "entity:removed"
	EventComponentAdded   = "component:added"
	EventComponentRemoved = "component:removed"
	EventSystemAdded      = "system:added"
	EventSystemRemoved    = "system:removed"
	EventWorldInitialized = "world:initialized"
)

// System is a behavior unit run once per frame against the entities holding
// all of its required component kinds. Systems keep no per-frame state in
// the core's hands; they mutate component data in place.
type System interface {
	// Priority orders execution: lower values run earlier. Ties keep
	// registration order.
	Priority() int
	// Active systems run every frame; inactive ones are skipped entirely
	// (never invoked with an empty batch).
	Active() bool
	// Required lists the component kinds an entity must hold (all of them)
	// to be included in this system's batch.
	Required() []Kind
	Update(dt float64, entities []*Entity)
}

// Initializer is an optional system hook called exactly once when the
// system is added to a World.
type Initializer interface {
	Init(w *World)
}

// Finalizer is an optional system hook called exactly once when the system
// is removed, or at World teardown.
type Finalizer interface {
	Cleanup()
}

// World owns the entity store, the priority-sorted system list, and the
// event bus. One World per game session; all access happens on the single
// frame-driving goroutine.
type World struct {
	log     *zap.Logger
	factory *Factory
	bus     *event.Bus

	entities map[EntityID]*Entity
	order    []EntityID
	systems  []System

	elapsed float64
	frame   uint64
}

// NewWorld wires a World to its factory and bus. Nil arguments get fresh
// defaults, so tests can construct a World with NewWorld(nil, nil, nil).
func NewWorld(factory *Factory, bus *event.Bus, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if factory == nil {
		factory = NewFactory(0, log)
	}
	if bus == nil {
		bus = event.NewBus(log)
	}
	return &World{
		log:      log,
		factory:  factory,
		bus:      bus,
		entities: make(map[EntityID]*Entity, 64),
	}
}

func (w *World) Bus() *event.Bus   { return w.bus }
func (w *World) Factory() *Factory { return w.factory }

// On, Off, and Emit delegate to the world's bus so collaborators holding
// only a World can subscribe to its lifecycle stream.

func (w *World) On(eventType string, fn event.Listener)  { w.bus.On(eventType, fn) }
func (w *World) Off(eventType string, fn event.Listener) { w.bus.Off(eventType, fn) }
func (w *World) Emit(ev event.Event)                     { w.bus.Emit(ev) }

// CreateEntity allocates an empty, active entity with a fresh identifier
// and emits entity:created.
func (w *World) CreateEntity() *Entity {
	e := newEntity()
	w.entities[e.ID] = e
	w.order = append(w.order, e.ID)
	w.bus.Emit(event.Event{Type: EventEntityCreated, EntityID: string(e.ID)})
	return e
}

// Entity returns the entity record for id, or nil if unknown.
func (w *World) Entity(id EntityID) *Entity {
	return w.entities[id]
}

// RemoveEntity destroys an entity, emitting one component:removed per
// attached component followed by a single entity:removed. Returns false for
// unknown ids.
func (w *World) RemoveEntity(id EntityID) bool {
	e, ok := w.entities[id]
	if !ok {
		return false
	}
	for _, kind := range e.Kinds() {
		delete(e.components, kind)
		w.bus.Emit(event.Event{
			Type:      EventComponentRemoved,
			EntityID:  string(id),
			Component: kind.String(),
		})
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.bus.Emit(event.Event{Type: EventEntityRemoved, EntityID: string(id)})
	return true
}

// AddComponent stamps the component with the owning entity and attaches it
// under its kind, silently replacing any previous component of that kind.
// Returns false for unknown ids, leaving the component unmodified.
func (w *World) AddComponent(id EntityID, c Component) bool {
	e, ok := w.entities[id]
	if !ok || c == nil {
		return false
	}
	c.bindEntity(id)
	e.components[c.Kind()] = c
	w.bus.Emit(event.Event{
		Type:      EventComponentAdded,
		EntityID:  string(id),
		Component: c.Kind().String(),
	})
	return true
}

// RemoveComponent detaches the component of the given kind. Returns false
// if the entity is unknown or holds no such component.
func (w *World) RemoveComponent(id EntityID, kind Kind) bool {
	e, ok := w.entities[id]
	if !ok {
		return false
	}
	if _, held := e.components[kind]; !held {
		return false
	}
	delete(e.components, kind)
	w.bus.Emit(event.Event{
		Type:      EventComponentRemoved,
		EntityID:  string(id),
		Component: kind.String(),
	})
	return true
}

// GetComponent returns the component of the given kind, or nil if the
// entity is unknown or does not hold it.
func (w *World) GetComponent(id EntityID, kind Kind) Component {
	e, ok := w.entities[id]
	if !ok {
		return nil
	}
	return e.components[kind]
}

// AddSystem registers a system and re-sorts the system list ascending by
// priority (stable for ties). The system's Init hook, if any, runs here,
// once.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
	w.SortSystems()
	if init, ok := s.(Initializer); ok {
		init.Init(w)
	}
	w.bus.Emit(event.Event{Type: EventSystemAdded})
}

// RemoveSystem unregisters a system (identity comparison), running its
// Cleanup hook if present. Returns false if the system was never added.
func (w *World) RemoveSystem(s System) bool {
	for i, registered := range w.systems {
		if registered == s {
			if fin, ok := s.(Finalizer); ok {
				fin.Cleanup()
			}
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			w.bus.Emit(event.Event{Type: EventSystemRemoved})
			return true
		}
	}
	return false
}

// SortSystems restores the ascending-priority invariant. AddSystem calls it
// automatically; callers that mutate a registered system's priority in
// place call it afterwards.
func (w *World) SortSystems() {
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns the registered systems in execution order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update advances the world clock unconditionally, then runs every active
// system in priority order against the entities matching its required
// kinds. dt is elapsed seconds since the previous frame.
func (w *World) Update(dt float64) {
	w.elapsed += dt
	w.frame++
	for _, s := range w.systems {
		if !s.Active() {
			continue
		}
		s.Update(dt, w.QueryEntities(Query{All: s.Required()}))
	}
}

// QueryEntities linearly scans all entities and returns, in creation order,
// the active ones matching the query. The returned records are live
// references, not snapshots: systems are expected to mutate components
// through them, and removing entities while iterating the result is unsafe
// without copying first.
func (w *World) QueryEntities(q Query) []*Entity {
	var out []*Entity
	for _, id := range w.order {
		if e := w.entities[id]; q.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Entities returns every entity record, active or not, in creation order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

func (w *World) EntityCount() int { return len(w.entities) }

// Time returns accumulated elapsed seconds across all Update calls.
func (w *World) Time() float64 { return w.elapsed }

// Frame returns the number of Update calls so far.
func (w *World) Frame() uint64 { return w.frame }

// Destroy tears the world down: every system's Cleanup hook runs (the list
// is dropped wholesale, without per-system removal events), entities are
// cleared, and all event listeners are dropped.
func (w *World) Destroy() {
	for _, s := range w.systems {
		if fin, ok := s.(Finalizer); ok {
			fin.Cleanup()
		}
	}
	w.systems = nil
	w.entities = make(map[EntityID]*Entity)
	w.order = nil
	w.bus.Clear()
	w.log.Debug("world destroyed")
}

// Convenience constructors for the demo's three entity archetypes. They
// only create and tag; component population is the content layer's job.

func (w *World) CreatePlayerEntity() *Entity {
	e := w.CreateEntity()
	e.AddTag("player")
	w.log.Debug("player entity created", zap.String("entity", string(e.ID)))
	return e
}

func (w *World) CreateNPCEntity() *Entity {
	e := w.CreateEntity()
	e.AddTag("npc")
	w.log.Debug("npc entity created", zap.String("entity", string(e.ID)))
	return e
}

func (w *World) CreateBillboardEntity() *Entity {
	e := w.CreateEntity()
	e.AddTag("billboard")
	w.log.Debug("billboard entity created", zap.String("entity", string(e.ID)))
	return e
}
