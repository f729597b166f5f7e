package system

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promenade/engine/internal/core/ecs"
)

type activeSetter interface{ SetActive(bool) }

type prioritySetter interface{ SetPriority(int) }

type idSetter interface{ SetID(string) }

// Manager tracks registered systems in active/inactive maps keyed by a
// generated identifier stamped onto each system, plus named groups that can
// be toggled and updated together. Membership is mirrored into the World's
// own list via AddSystem/RemoveSystem; the Manager never bypasses it.
type Manager struct {
	log   *zap.Logger
	world *ecs.World

	active   map[string]ecs.System
	inactive map[string]ecs.System
	groups   map[string]map[ecs.System]struct{}
	ids      map[ecs.System]string
}

func NewManager(w *ecs.World, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:      log,
		world:    w,
		active:   make(map[string]ecs.System, 16),
		inactive: make(map[string]ecs.System, 4),
		groups:   make(map[string]map[ecs.System]struct{}, 4),
		ids:      make(map[ecs.System]string, 16),
	}
}

// RegisterSystem assigns the system an identifier, files it as active or
// inactive per its current flag, optionally adds it to the named groups,
// and delegates to World.AddSystem. Registering an already-registered
// system only updates its group membership. Returns the system's id.
func (m *Manager) RegisterSystem(s ecs.System, groupNames ...string) string {
	id, registered := m.ids[s]
	if !registered {
		if ider, ok := s.(interface{ ID() string }); ok && ider.ID() != "" {
			id = ider.ID()
		} else {
			id = uuid.NewString()
			if setter, ok := s.(idSetter); ok {
				setter.SetID(id)
			}
		}
		m.ids[s] = id
		if s.Active() {
			m.active[id] = s
		} else {
			m.inactive[id] = s
		}
		m.world.AddSystem(s)
	}
	for _, name := range groupNames {
		g, ok := m.groups[name]
		if !ok {
			g = make(map[ecs.System]struct{}, 4)
			m.groups[name] = g
		}
		g[s] = struct{}{}
	}
	return id
}

// UnregisterSystem removes the system from whichever map holds it, from
// every group (deleting groups left empty), and from the World. Returns
// false if the system was never registered.
func (m *Manager) UnregisterSystem(s ecs.System) bool {
	id, ok := m.ids[s]
	if !ok {
		return false
	}
	delete(m.active, id)
	delete(m.inactive, id)
	delete(m.ids, s)
	for name, g := range m.groups {
		delete(g, s)
		if len(g) == 0 {
			delete(m.groups, name)
		}
	}
	m.world.RemoveSystem(s)
	return true
}

// EnableSystem moves an inactive system into the active map and flips its
// flag. Returns false if the id is not currently inactive.
func (m *Manager) EnableSystem(id string) bool {
	s, ok := m.inactive[id]
	if !ok {
		return false
	}
	setter, ok := s.(activeSetter)
	if !ok {
		return false
	}
	delete(m.inactive, id)
	m.active[id] = s
	setter.SetActive(true)
	return true
}

// DisableSystem moves an active system into the inactive map and flips its
// flag. Returns false if the id is not currently active.
func (m *Manager) DisableSystem(id string) bool {
	s, ok := m.active[id]
	if !ok {
		return false
	}
	setter, ok := s.(activeSetter)
	if !ok {
		return false
	}
	delete(m.active, id)
	m.inactive[id] = s
	setter.SetActive(false)
	return true
}

// EnableSystemGroup enables every currently-disabled member of the group
// and returns the count actually changed, 0 for unknown groups.
func (m *Manager) EnableSystemGroup(name string) int {
	changed := 0
	for s := range m.groups[name] {
		if m.EnableSystem(m.ids[s]) {
			changed++
		}
	}
	return changed
}

// DisableSystemGroup disables every currently-enabled member of the group
// and returns the count actually changed, 0 for unknown groups.
func (m *Manager) DisableSystemGroup(name string) int {
	changed := 0
	for s := range m.groups[name] {
		if m.DisableSystem(m.ids[s]) {
			changed++
		}
	}
	return changed
}

// SetSystemPriority reassigns a registered system's priority in place and
// re-sorts the World's list so the next full Update sees the new order.
// Group updates sort their own filtered copy on every call regardless.
// Returns false for unknown ids or systems without a priority mutator.
func (m *Manager) SetSystemPriority(id string, priority int) bool {
	s, ok := m.active[id]
	if !ok {
		if s, ok = m.inactive[id]; !ok {
			return false
		}
	}
	setter, ok := s.(prioritySetter)
	if !ok {
		return false
	}
	setter.SetPriority(priority)
	m.world.SortSystems()
	return true
}

// UpdateSystemGroup runs the group's currently-active members in ascending
// priority order, each against the entities matching its required kinds.
// Returns the number of systems updated, 0 for unknown groups.
func (m *Manager) UpdateSystemGroup(name string, dt float64) int {
	g, ok := m.groups[name]
	if !ok {
		return 0
	}
	batch := make([]ecs.System, 0, len(g))
	for s := range g {
		if id, tracked := m.ids[s]; tracked {
			if _, isActive := m.active[id]; isActive {
				batch = append(batch, s)
			}
		}
	}
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Priority() < batch[j].Priority()
	})
	for _, s := range batch {
		s.Update(dt, m.world.QueryEntities(ecs.Query{All: s.Required()}))
	}
	return len(batch)
}

// ActiveSystems returns the currently enabled systems (unordered).
func (m *Manager) ActiveSystems() []ecs.System {
	out := make([]ecs.System, 0, len(m.active))
	for _, s := range m.active {
		out = append(out, s)
	}
	return out
}

// InactiveSystems returns the currently disabled systems (unordered).
func (m *Manager) InactiveSystems() []ecs.System {
	out := make([]ecs.System, 0, len(m.inactive))
	for _, s := range m.inactive {
		out = append(out, s)
	}
	return out
}

// Groups returns the known group names in lexical order.
func (m *Manager) Groups() []string {
	out := make([]string, 0, len(m.groups))
	for name := range m.groups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GroupSize returns the member count of a group, 0 for unknown names.
func (m *Manager) GroupSize(name string) int {
	return len(m.groups[name])
}

// Destroy unregisters every tracked system through the World (running each
// Cleanup hook) and clears all internal state.
func (m *Manager) Destroy() {
	for s := range m.ids {
		m.world.RemoveSystem(s)
	}
	m.active = make(map[string]ecs.System)
	m.inactive = make(map[string]ecs.System)
	m.groups = make(map[string]map[ecs.System]struct{})
	m.ids = make(map[ecs.System]string)
}
