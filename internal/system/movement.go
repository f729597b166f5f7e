// Package system holds the demo's concrete systems. They only ever touch
// component data through the live entity records the World hands them; the
// render and input collaborators drive and observe them from outside.
package system

import (
	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/core/ecs"
	coresys "github.com/promenade/engine/internal/core/system"
)

// Movement integrates every Transform+Velocity entity by dt each frame.
// Collision response is out of scope; the plane is flat and unbounded here.
type Movement struct {
	coresys.Base
}

func NewMovement() *Movement {
	return &Movement{
		Base: coresys.NewBase(coresys.PriorityHigh, ecs.KindTransform, ecs.KindVelocity),
	}
}

func (s *Movement) Update(dt float64, entities []*ecs.Entity) {
	for _, e := range entities {
		t, tok := e.Component(ecs.KindTransform).(*component.Transform)
		v, vok := e.Component(ecs.KindVelocity).(*component.Velocity)
		if !tok || !vok || !t.Active() || !v.Active() {
			continue
		}
		t.X += v.DX * dt
		t.Y += v.DY * dt
		t.Z += v.DZ * dt
	}
}
