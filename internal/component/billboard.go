package component

import "github.com/promenade/engine/internal/core/ecs"

// DefaultReadRadius is how close the player must walk before a billboard
// counts as read, in world units.
const DefaultReadRadius = 3.0

// Billboard is a readable sign. Read flips when the player first enters the
// radius and stays set.
type Billboard struct {
	ecs.Base
	Title  string
	Body   string
	Radius float64
	Read   bool
}

// NewBillboard builds a billboard from optional positional arguments
// (title, body, radius).
func NewBillboard(args ...any) ecs.Component {
	b := &Billboard{Base: ecs.NewBase(ecs.KindBillboard)}
	b.apply(args)
	return b
}

func (b *Billboard) Reset(args ...any) {
	b.Title, b.Body = "", ""
	b.Radius = 0
	b.Read = false
	b.apply(args)
}

func (b *Billboard) apply(args []any) {
	b.Title = stringArg(args, 0, "")
	b.Body = stringArg(args, 1, "")
	b.Radius = floatArg(args, 2, DefaultReadRadius)
}

func (b *Billboard) Clone() ecs.Component {
	c := *b
	return &c
}
