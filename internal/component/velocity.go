package component

import "github.com/promenade/engine/internal/core/ecs"

// Velocity is linear movement in units per second, integrated into the
// entity's Transform by the movement system.
type Velocity struct {
	ecs.Base
	DX, DY, DZ float64
}

// NewVelocity builds a velocity from optional positional arguments
// (dx, dy, dz).
func NewVelocity(args ...any) ecs.Component {
	v := &Velocity{Base: ecs.NewBase(ecs.KindVelocity)}
	v.apply(args)
	return v
}

func (v *Velocity) Reset(args ...any) {
	v.DX, v.DY, v.DZ = 0, 0, 0
	v.apply(args)
}

func (v *Velocity) apply(args []any) {
	v.DX = floatArg(args, 0, 0)
	v.DY = floatArg(args, 1, 0)
	v.DZ = floatArg(args, 2, 0)
}

func (v *Velocity) Clone() ecs.Component {
	c := *v
	return &c
}
