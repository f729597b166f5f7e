package system

import (
	"testing"

	"github.com/promenade/engine/internal/core/ecs"
)

// traceSystem embeds Base and records its update calls into a shared trace.
type traceSystem struct {
	Base
	name    string
	trace   *[]string
	batches [][]*ecs.Entity
	cleans  int
}

func newTraceSystem(name string, priority int, trace *[]string, required ...ecs.Kind) *traceSystem {
	return &traceSystem{
		Base:  NewBase(priority, required...),
		name:  name,
		trace: trace,
	}
}

func (s *traceSystem) Update(dt float64, entities []*ecs.Entity) {
	if s.trace != nil {
		*s.trace = append(*s.trace, s.name)
	}
	s.batches = append(s.batches, entities)
}

func (s *traceSystem) Cleanup() { s.cleans++ }

type nopComponent struct{ ecs.Base }

func newNopComponent(args ...any) ecs.Component {
	return &nopComponent{Base: ecs.NewBase(ecs.KindTransform)}
}

func newTestManager() (*Manager, *ecs.World) {
	w := ecs.NewWorld(nil, nil, nil)
	return NewManager(w, nil), w
}

func TestRegisterSystemAssignsID(t *testing.T) {
	m, w := newTestManager()
	s := newTraceSystem("a", PriorityNormal, nil)

	id := m.RegisterSystem(s)
	if id == "" {
		t.Fatal("empty system id")
	}
	if s.ID() != id {
		t.Fatalf("id not stamped onto system: %q != %q", s.ID(), id)
	}
	if len(m.ActiveSystems()) != 1 {
		t.Fatal("active system not filed as active")
	}
	if len(w.Systems()) != 1 {
		t.Fatal("system not delegated to the world")
	}

	again := m.RegisterSystem(s)
	if again != id {
		t.Fatal("re-registering must keep the existing id")
	}
	if len(w.Systems()) != 1 {
		t.Fatal("re-registering must not duplicate the world entry")
	}
}

func TestRegisterSystemGroups(t *testing.T) {
	m, _ := newTestManager()
	a := newTraceSystem("a", PriorityNormal, nil)
	b := newTraceSystem("b", PriorityNormal, nil)
	m.RegisterSystem(a, "render")
	m.RegisterSystem(b, "render")

	if got := m.GroupSize("render"); got != 2 {
		t.Fatalf("group size = %d, want 2", got)
	}
	if got := m.Groups(); len(got) != 1 || got[0] != "render" {
		t.Fatalf("groups = %v", got)
	}
}

func TestUnregisterSystem(t *testing.T) {
	m, w := newTestManager()
	s := newTraceSystem("a", PriorityNormal, nil)
	m.RegisterSystem(s, "solo")

	if !m.UnregisterSystem(s) {
		t.Fatal("UnregisterSystem = false")
	}
	if s.cleans != 1 {
		t.Fatalf("cleanup hooks = %d, want 1", s.cleans)
	}
	if len(w.Systems()) != 0 {
		t.Fatal("system still in the world")
	}
	if len(m.Groups()) != 0 {
		t.Fatal("emptied group must be deleted")
	}
	if m.UnregisterSystem(s) {
		t.Fatal("UnregisterSystem on unknown system = true")
	}
}

func TestEnableDisableSystem(t *testing.T) {
	m, _ := newTestManager()
	s := newTraceSystem("a", PriorityNormal, nil)
	id := m.RegisterSystem(s)

	if !m.DisableSystem(id) {
		t.Fatal("DisableSystem = false")
	}
	if s.Active() {
		t.Fatal("disable must flip the active flag")
	}
	if len(m.ActiveSystems()) != 0 || len(m.InactiveSystems()) != 1 {
		t.Fatal("disable must move the system between maps")
	}
	if m.DisableSystem(id) {
		t.Fatal("disabling an already-inactive system = true")
	}

	if !m.EnableSystem(id) {
		t.Fatal("EnableSystem = false")
	}
	if !s.Active() {
		t.Fatal("enable must flip the active flag")
	}
	if m.EnableSystem(id) {
		t.Fatal("enabling an already-active system = true")
	}
	if m.EnableSystem("no-such-id") {
		t.Fatal("enabling an unknown id = true")
	}
}

func TestDisabledSystemSkippedByWorldUpdate(t *testing.T) {
	m, w := newTestManager()
	s := newTraceSystem("a", PriorityNormal, nil)
	id := m.RegisterSystem(s)
	m.DisableSystem(id)

	w.Update(0.016)
	if len(s.batches) != 0 {
		t.Fatal("disabled system was invoked by World.Update")
	}
}

func TestSystemGroupToggling(t *testing.T) {
	m, _ := newTestManager()
	a := newTraceSystem("a", PriorityNormal, nil)
	b := newTraceSystem("b", PriorityNormal, nil)
	c := newTraceSystem("c", PriorityNormal, nil)
	m.RegisterSystem(a, "physics")
	m.RegisterSystem(b, "physics")
	m.RegisterSystem(c, "physics")
	m.DisableSystem(c.ID())

	// One member already disabled: only two actually change.
	if got := m.DisableSystemGroup("physics"); got != 2 {
		t.Fatalf("DisableSystemGroup = %d, want 2", got)
	}
	if got := m.EnableSystemGroup("physics"); got != 3 {
		t.Fatalf("EnableSystemGroup = %d, want 3", got)
	}
	if got := m.EnableSystemGroup("unknown"); got != 0 {
		t.Fatalf("EnableSystemGroup(unknown) = %d, want 0", got)
	}
	if got := m.DisableSystemGroup("unknown"); got != 0 {
		t.Fatalf("DisableSystemGroup(unknown) = %d, want 0", got)
	}
}

func TestUpdateSystemGroupOrderAndCount(t *testing.T) {
	m, _ := newTestManager()
	var trace []string
	slow := newTraceSystem("slow", PriorityLow, &trace)
	fast := newTraceSystem("fast", PriorityHigh, &trace)
	off := newTraceSystem("off", PriorityHighest, &trace)
	m.RegisterSystem(slow, "sim")
	m.RegisterSystem(fast, "sim")
	m.RegisterSystem(off, "sim")
	m.DisableSystem(off.ID())

	if got := m.UpdateSystemGroup("sim", 0.016); got != 2 {
		t.Fatalf("UpdateSystemGroup = %d, want 2", got)
	}
	if len(trace) != 2 || trace[0] != "fast" || trace[1] != "slow" {
		t.Fatalf("trace = %v, want [fast slow]", trace)
	}
	if got := m.UpdateSystemGroup("unknown", 0.016); got != 0 {
		t.Fatalf("UpdateSystemGroup(unknown) = %d, want 0", got)
	}
}

func TestUpdateSystemGroupPassesMatchingEntities(t *testing.T) {
	m, w := newTestManager()
	s := newTraceSystem("move", PriorityNormal, nil, ecs.KindTransform)
	m.RegisterSystem(s, "sim")

	w.Factory().Register(ecs.KindTransform, newNopComponent)
	c, err := w.Factory().Create(ecs.KindTransform)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	e := w.CreateEntity()
	w.AddComponent(e.ID, c)
	w.CreateEntity() // non-matching

	m.UpdateSystemGroup("sim", 0.016)
	if len(s.batches) != 1 || len(s.batches[0]) != 1 || s.batches[0][0] != e {
		t.Fatalf("batch = %+v, want only the matching entity", s.batches)
	}
}

func TestSetSystemPriority(t *testing.T) {
	m, _ := newTestManager()
	var trace []string
	a := newTraceSystem("a", PriorityHigh, &trace)
	b := newTraceSystem("b", PriorityLow, &trace)
	m.RegisterSystem(a, "sim")
	m.RegisterSystem(b, "sim")

	m.UpdateSystemGroup("sim", 0.016)
	if trace[0] != "a" || trace[1] != "b" {
		t.Fatalf("initial trace = %v", trace)
	}

	if !m.SetSystemPriority(a.ID(), PriorityLowest) {
		t.Fatal("SetSystemPriority = false")
	}
	trace = trace[:0]
	m.UpdateSystemGroup("sim", 0.016)
	if trace[0] != "b" || trace[1] != "a" {
		t.Fatalf("trace after reassignment = %v, want [b a]", trace)
	}

	if m.SetSystemPriority("no-such-id", PriorityNormal) {
		t.Fatal("SetSystemPriority on unknown id = true")
	}
}

func TestManagerDestroy(t *testing.T) {
	m, w := newTestManager()
	a := newTraceSystem("a", PriorityNormal, nil)
	b := newTraceSystem("b", PriorityNormal, nil)
	m.RegisterSystem(a, "g1")
	m.RegisterSystem(b, "g2")

	m.Destroy()
	if a.cleans != 1 || b.cleans != 1 {
		t.Fatal("destroy must run every system's cleanup hook")
	}
	if len(w.Systems()) != 0 {
		t.Fatal("systems still registered with the world")
	}
	if len(m.ActiveSystems()) != 0 || len(m.Groups()) != 0 {
		t.Fatal("manager state survived destroy")
	}
}
