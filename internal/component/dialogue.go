package component

import "github.com/promenade/engine/internal/core/ecs"

// DefaultTalkRadius is how close the player must walk before an NPC greets
// them, in world units.
const DefaultTalkRadius = 2.5

// Dialogue makes an entity conversable. Lines are the static fallback used
// when Script names no Lua dialogue function.
type Dialogue struct {
	ecs.Base
	Name   string
	Script string
	Lines  []string
	Radius float64
	Visits int
}

// NewDialogue builds a dialogue from optional positional arguments
// (name, script, radius).
func NewDialogue(args ...any) ecs.Component {
	d := &Dialogue{Base: ecs.NewBase(ecs.KindDialogue)}
	d.apply(args)
	return d
}

func (d *Dialogue) Reset(args ...any) {
	d.Name, d.Script = "", ""
	d.Lines = nil
	d.Radius = 0
	d.Visits = 0
	d.apply(args)
}

func (d *Dialogue) apply(args []any) {
	d.Name = stringArg(args, 0, "")
	d.Script = stringArg(args, 1, "")
	d.Radius = floatArg(args, 2, DefaultTalkRadius)
}

func (d *Dialogue) Clone() ecs.Component {
	c := *d
	c.Lines = append([]string(nil), d.Lines...)
	return &c
}
