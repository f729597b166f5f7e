package world

import (
	"math"
	"testing"

	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/core/ecs"
)

func newTestManager() *EntityManager {
	w := ecs.NewWorld(nil, nil, nil)
	component.RegisterDefaults(w.Factory())
	return NewEntityManager(w, nil)
}

func transformOf(t *testing.T, e *ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := e.Component(ecs.KindTransform).(*component.Transform)
	if !ok {
		t.Fatalf("entity %s has no transform", e.ID)
	}
	return tr
}

func TestSpawnNPC(t *testing.T) {
	m := newTestManager()
	e, err := m.SpawnNPC("greeter", Point{X: 3, Z: -2})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if !e.HasTag("npc") {
		t.Fatal("npc tag missing")
	}
	tr := transformOf(t, e)
	if tr.X != 3 || tr.Z != -2 {
		t.Fatalf("transform = (%v, %v), want (3, -2)", tr.X, tr.Z)
	}
	d, ok := e.Component(ecs.KindDialogue).(*component.Dialogue)
	if !ok || d.Name != "greeter" {
		t.Fatalf("dialogue = %+v", d)
	}
}

func TestSpawnBillboard(t *testing.T) {
	m := newTestManager()
	e, err := m.SpawnBillboard("About", "body", Point{X: 1, Z: 1})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if !e.HasTag("billboard") {
		t.Fatal("billboard tag missing")
	}
	b, ok := e.Component(ecs.KindBillboard).(*component.Billboard)
	if !ok || b.Title != "About" || b.Body != "body" {
		t.Fatalf("billboard = %+v", b)
	}
}

func TestSpawnLine(t *testing.T) {
	m := newTestManager()
	got, err := m.SpawnLine(3, Point{X: 0, Z: 0}, Point{X: 4, Z: 0})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("spawned %d, want 3", len(got))
	}
	for i, wantX := range []float64{0, 2, 4} {
		tr := transformOf(t, got[i])
		if tr.X != wantX || tr.Z != 0 {
			t.Fatalf("entity %d at (%v, %v), want (%v, 0)", i, tr.X, tr.Z, wantX)
		}
	}
}

func TestSpawnGrid(t *testing.T) {
	m := newTestManager()
	got, err := m.SpawnGrid(2, 2, Point{X: 1, Z: 1}, 2)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("spawned %d, want 4", len(got))
	}
	want := []Point{{1, 1}, {3, 1}, {1, 3}, {3, 3}}
	for i, p := range want {
		tr := transformOf(t, got[i])
		if tr.X != p.X || tr.Z != p.Z {
			t.Fatalf("entity %d at (%v, %v), want (%v, %v)", i, tr.X, tr.Z, p.X, p.Z)
		}
	}
}

func TestSpawnCircle(t *testing.T) {
	m := newTestManager()
	center := Point{X: 5, Z: 5}
	got, err := m.SpawnCircle(6, center, 3)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("spawned %d, want 6", len(got))
	}
	for i, e := range got {
		tr := transformOf(t, e)
		d := math.Hypot(tr.X-center.X, tr.Z-center.Z)
		if math.Abs(d-3) > 1e-9 {
			t.Fatalf("entity %d at distance %v, want 3", i, d)
		}
	}
}

func TestSpawnFormationsEmpty(t *testing.T) {
	m := newTestManager()
	if got, _ := m.SpawnLine(0, Point{}, Point{}); got != nil {
		t.Fatal("SpawnLine(0) must spawn nothing")
	}
	if got, _ := m.SpawnGrid(0, 3, Point{}, 1); got != nil {
		t.Fatal("SpawnGrid with zero columns must spawn nothing")
	}
	if got, _ := m.SpawnCircle(0, Point{}, 1); got != nil {
		t.Fatal("SpawnCircle(0) must spawn nothing")
	}
}

func TestClone(t *testing.T) {
	m := newTestManager()
	src, err := m.SpawnNPC("greeter", Point{X: 2, Z: 2})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	clone := m.Clone(src.ID)
	if clone == nil {
		t.Fatal("clone = nil")
	}
	if clone.ID == src.ID {
		t.Fatal("clone must have its own identifier")
	}
	if !clone.HasTag("npc") {
		t.Fatal("clone must carry the source tags")
	}

	srcT := transformOf(t, src)
	cloneT := transformOf(t, clone)
	if cloneT == srcT {
		t.Fatal("clone must not share component instances")
	}
	if cloneT.X != srcT.X || cloneT.Z != srcT.Z {
		t.Fatal("clone transform differs from source")
	}
	cloneT.X = 99
	if srcT.X == 99 {
		t.Fatal("mutating the clone leaked into the source")
	}
	if cloneT.Entity() != clone.ID {
		t.Fatal("clone's component must be stamped with the clone's id")
	}
}

func TestCloneUnknownID(t *testing.T) {
	m := newTestManager()
	if m.Clone("no-such-entity") != nil {
		t.Fatal("cloning an unknown id must return nil")
	}
}

func TestClosest(t *testing.T) {
	m := newTestManager()
	far, _ := m.SpawnNPC("far", Point{X: 10, Z: 10})
	near, _ := m.SpawnNPC("near", Point{X: 1, Z: 1})

	got := m.Closest(Point{}, ecs.Query{Tags: []string{"npc"}})
	if got != near {
		t.Fatalf("closest = %v, want the near npc", got)
	}

	// Deactivated entities fall out of the search.
	near.Active = false
	if got := m.Closest(Point{}, ecs.Query{Tags: []string{"npc"}}); got != far {
		t.Fatal("closest must skip inactive entities")
	}
}

func TestClosestNoMatch(t *testing.T) {
	m := newTestManager()
	if m.Closest(Point{}, ecs.Query{Tags: []string{"npc"}}) != nil {
		t.Fatal("closest with no candidates must be nil")
	}
}

func TestWithin(t *testing.T) {
	m := newTestManager()
	m.SpawnNPC("inside", Point{X: 1, Z: 0})
	m.SpawnNPC("edge", Point{X: 3, Z: 0})
	m.SpawnNPC("outside", Point{X: 10, Z: 0})

	got := m.Within(Point{}, 3, ecs.Query{Tags: []string{"npc"}})
	if len(got) != 2 {
		t.Fatalf("within = %d entities, want 2 (radius is inclusive)", len(got))
	}
}

func TestSpawnWithTagsAndComponents(t *testing.T) {
	m := newTestManager()
	c, err := m.World().Factory().Create(ecs.KindTransform, 1.0, 0.0, 2.0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	e := m.Spawn([]string{"prop", "static"}, c)
	if !e.HasTag("prop") || !e.HasTag("static") {
		t.Fatal("tags missing")
	}
	if e.Component(ecs.KindTransform) != c {
		t.Fatal("component missing")
	}
}
