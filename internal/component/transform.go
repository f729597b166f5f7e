package component

import "github.com/promenade/engine/internal/core/ecs"

// Transform places an entity on the ground plane. Y is height above it,
// RotY the heading in radians.
type Transform struct {
	ecs.Base
	X, Y, Z float64
	RotY    float64
	Scale   float64
}

// NewTransform builds a transform from optional positional arguments
// (x, y, z, rotY).
func NewTransform(args ...any) ecs.Component {
	t := &Transform{Base: ecs.NewBase(ecs.KindTransform)}
	t.apply(args)
	return t
}

func (t *Transform) Reset(args ...any) {
	t.X, t.Y, t.Z, t.RotY, t.Scale = 0, 0, 0, 0, 0
	t.apply(args)
}

func (t *Transform) apply(args []any) {
	t.X = floatArg(args, 0, 0)
	t.Y = floatArg(args, 1, 0)
	t.Z = floatArg(args, 2, 0)
	t.RotY = floatArg(args, 3, 0)
	t.Scale = 1
}

func (t *Transform) Clone() ecs.Component {
	c := *t
	return &c
}
