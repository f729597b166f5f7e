// Package world provides the convenience layer for higher-level entity
// construction: spawning with components, formations, cloning, and
// proximity search. Everything here is built on World's primitives.
package world

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/core/ecs"
)

// Point is a spot on the ground plane.
type Point struct {
	X, Z float64
}

// EntityManager wraps a World with construction patterns the content layer
// uses. It holds no state of its own beyond the references.
type EntityManager struct {
	log   *zap.Logger
	world *ecs.World
}

func NewEntityManager(w *ecs.World, log *zap.Logger) *EntityManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntityManager{log: log, world: w}
}

func (m *EntityManager) World() *ecs.World { return m.world }

// Spawn creates an entity carrying the given tags and components.
func (m *EntityManager) Spawn(tags []string, components ...ecs.Component) *ecs.Entity {
	e := m.world.CreateEntity()
	for _, tag := range tags {
		e.AddTag(tag)
	}
	for _, c := range components {
		m.world.AddComponent(e.ID, c)
	}
	return e
}

// SpawnNPC creates a tagged NPC with a transform and a dialogue envelope at
// the given spot.
func (m *EntityManager) SpawnNPC(name string, at Point) (*ecs.Entity, error) {
	t, err := m.world.Factory().Create(ecs.KindTransform, at.X, 0.0, at.Z)
	if err != nil {
		return nil, fmt.Errorf("spawn npc %s: %w", name, err)
	}
	d, err := m.world.Factory().Create(ecs.KindDialogue, name)
	if err != nil {
		return nil, fmt.Errorf("spawn npc %s: %w", name, err)
	}
	e := m.world.CreateNPCEntity()
	m.world.AddComponent(e.ID, t)
	m.world.AddComponent(e.ID, d)
	m.log.Debug("npc spawned", zap.String("name", name), zap.Float64("x", at.X), zap.Float64("z", at.Z))
	return e, nil
}

// SpawnBillboard creates a tagged billboard with a transform at the given
// spot.
func (m *EntityManager) SpawnBillboard(title, body string, at Point) (*ecs.Entity, error) {
	t, err := m.world.Factory().Create(ecs.KindTransform, at.X, 0.0, at.Z)
	if err != nil {
		return nil, fmt.Errorf("spawn billboard %s: %w", title, err)
	}
	b, err := m.world.Factory().Create(ecs.KindBillboard, title, body)
	if err != nil {
		return nil, fmt.Errorf("spawn billboard %s: %w", title, err)
	}
	e := m.world.CreateBillboardEntity()
	m.world.AddComponent(e.ID, t)
	m.world.AddComponent(e.ID, b)
	return e, nil
}

// SpawnLine places n entities with transforms evenly spaced from one point
// to another, endpoints included.
func (m *EntityManager) SpawnLine(n int, from, to Point) ([]*ecs.Entity, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]*ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		e, err := m.spawnAt(Point{
			X: from.X + (to.X-from.X)*frac,
			Z: from.Z + (to.Z-from.Z)*frac,
		})
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SpawnGrid places cols×rows entities with transforms on a regular grid
// anchored at origin.
func (m *EntityManager) SpawnGrid(cols, rows int, origin Point, spacing float64) ([]*ecs.Entity, error) {
	if cols <= 0 || rows <= 0 {
		return nil, nil
	}
	out := make([]*ecs.Entity, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			e, err := m.spawnAt(Point{
				X: origin.X + float64(col)*spacing,
				Z: origin.Z + float64(row)*spacing,
			})
			if err != nil {
				return out, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// SpawnCircle places n entities with transforms evenly around a circle,
// each facing the center.
func (m *EntityManager) SpawnCircle(n int, center Point, radius float64) ([]*ecs.Entity, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]*ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		e, err := m.spawnAt(Point{
			X: center.X + radius*math.Cos(angle),
			Z: center.Z + radius*math.Sin(angle),
		})
		if err != nil {
			return out, err
		}
		if t, ok := e.Component(ecs.KindTransform).(*component.Transform); ok {
			t.RotY = angle + math.Pi
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *EntityManager) spawnAt(at Point) (*ecs.Entity, error) {
	t, err := m.world.Factory().Create(ecs.KindTransform, at.X, 0.0, at.Z)
	if err != nil {
		return nil, fmt.Errorf("spawn at (%.1f, %.1f): %w", at.X, at.Z, err)
	}
	e := m.world.CreateEntity()
	m.world.AddComponent(e.ID, t)
	return e, nil
}

// Clone creates a new entity carrying copies of the source's tags, active
// flag, and every component that implements ecs.Cloner. Returns nil for
// unknown ids.
func (m *EntityManager) Clone(id ecs.EntityID) *ecs.Entity {
	src := m.world.Entity(id)
	if src == nil {
		return nil
	}
	dst := m.world.CreateEntity()
	dst.Active = src.Active
	for _, tag := range src.Tags() {
		dst.AddTag(tag)
	}
	for _, kind := range src.Kinds() {
		if cloner, ok := src.Component(kind).(ecs.Cloner); ok {
			m.world.AddComponent(dst.ID, cloner.Clone())
		}
	}
	return dst
}

// Closest returns the query match with a transform nearest to the given
// spot, or nil when nothing matches.
func (m *EntityManager) Closest(at Point, q ecs.Query) *ecs.Entity {
	var best *ecs.Entity
	bestDist := math.MaxFloat64
	for _, e := range m.world.QueryEntities(q) {
		t, ok := e.Component(ecs.KindTransform).(*component.Transform)
		if !ok {
			continue
		}
		d := distSq(at, Point{X: t.X, Z: t.Z})
		if d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best
}

// Within returns every query match with a transform inside the radius.
func (m *EntityManager) Within(at Point, radius float64, q ecs.Query) []*ecs.Entity {
	var out []*ecs.Entity
	for _, e := range m.world.QueryEntities(q) {
		t, ok := e.Component(ecs.KindTransform).(*component.Transform)
		if !ok {
			continue
		}
		if distSq(at, Point{X: t.X, Z: t.Z}) <= radius*radius {
			out = append(out, e)
		}
	}
	return out
}

func distSq(a, b Point) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}
