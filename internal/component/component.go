// Package component holds the concrete component types the walking demo
// populates. The ECS core only sees the envelope (kind, owner, active); the
// fields here belong to the content and collaborator layers.
//
// Mesh, material, camera, player-control, collider, and audio kinds are
// declared in the core enumeration but have no concrete type in this
// module: the renderer and input collaborators attach their own.
package component

import "github.com/promenade/engine/internal/core/ecs"

// RegisterDefaults registers every concrete component type of this package
// with the factory.
func RegisterDefaults(f *ecs.Factory) {
	f.Register(ecs.KindTransform, NewTransform)
	f.Register(ecs.KindVelocity, NewVelocity)
	f.Register(ecs.KindDialogue, NewDialogue)
	f.Register(ecs.KindBillboard, NewBillboard)
}

// Constructor arguments arrive as untyped values; these helpers coerce the
// numeric shapes callers actually pass.

func floatArg(args []any, i int, fallback float64) float64 {
	if i >= len(args) {
		return fallback
	}
	switch v := args[i].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return fallback
	}
}

func stringArg(args []any, i int, fallback string) string {
	if i >= len(args) {
		return fallback
	}
	if s, ok := args[i].(string); ok {
		return s
	}
	return fallback
}
