package system

import (
	"go.uber.org/zap"

	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/core/ecs"
	"github.com/promenade/engine/internal/core/event"
	coresys "github.com/promenade/engine/internal/core/system"
	"github.com/promenade/engine/internal/scripting"
)

// Game-level event types. The dialogue/UI collaborator subscribes to these;
// this module never renders anything.
const (
	EventNPCGreeting   = "npc:greeting"
	EventBillboardRead = "billboard:read"
)

// DialogueSource resolves an NPC's spoken line, routed by the script name
// from its dialogue component. Satisfied by *scripting.Engine; nil-able for
// worlds without scripts.
type DialogueSource interface {
	DialogueLine(script, npc string, visit int) (string, bool)
}

var _ DialogueSource = (*scripting.Engine)(nil)

// Interaction watches the distance between the player and every dialogue
// entity. Crossing into an NPC's radius counts a visit and emits
// npc:greeting with the line resolved from the script (or the static
// fallback). Leaving and re-entering greets again.
type Interaction struct {
	coresys.Base
	world    *ecs.World
	dialogue DialogueSource
	log      *zap.Logger
	inRange  map[ecs.EntityID]bool
}

func NewInteraction(dialogue DialogueSource, log *zap.Logger) *Interaction {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interaction{
		Base:     coresys.NewBase(coresys.PriorityNormal, ecs.KindTransform, ecs.KindDialogue),
		dialogue: dialogue,
		log:      log,
		inRange:  make(map[ecs.EntityID]bool, 8),
	}
}

func (s *Interaction) Init(w *ecs.World) { s.world = w }

func (s *Interaction) Cleanup() {
	s.inRange = make(map[ecs.EntityID]bool)
}

func (s *Interaction) Update(dt float64, entities []*ecs.Entity) {
	player := playerTransform(s.world)
	if player == nil {
		return
	}
	for _, e := range entities {
		t, tok := e.Component(ecs.KindTransform).(*component.Transform)
		d, dok := e.Component(ecs.KindDialogue).(*component.Dialogue)
		if !tok || !dok || !d.Active() {
			continue
		}
		dx := player.X - t.X
		dz := player.Z - t.Z
		inside := dx*dx+dz*dz <= d.Radius*d.Radius
		if inside && !s.inRange[e.ID] {
			d.Visits++
			line := s.resolveLine(d)
			s.world.Bus().Emit(event.Event{
				Type:     EventNPCGreeting,
				EntityID: string(e.ID),
				Data: map[string]any{
					"npc":   d.Name,
					"line":  line,
					"visit": d.Visits,
				},
			})
			s.log.Info("npc greeting",
				zap.String("npc", d.Name),
				zap.Int("visit", d.Visits),
				zap.String("line", line))
		}
		s.inRange[e.ID] = inside
	}
	// Drop state for entities that no longer exist, so NPC churn does not
	// grow the map without bound.
	for id := range s.inRange {
		if s.world.Entity(id) == nil {
			delete(s.inRange, id)
		}
	}
}

func (s *Interaction) resolveLine(d *component.Dialogue) string {
	if s.dialogue != nil {
		if line, ok := s.dialogue.DialogueLine(d.Script, d.Name, d.Visits); ok {
			return line
		}
	}
	if len(d.Lines) > 0 {
		return d.Lines[(d.Visits-1)%len(d.Lines)]
	}
	return ""
}

// playerTransform finds the active player-tagged entity's transform, nil
// when there is none.
func playerTransform(w *ecs.World) *component.Transform {
	if w == nil {
		return nil
	}
	matches := w.QueryEntities(ecs.Query{All: []ecs.Kind{ecs.KindTransform}, Tags: []string{"player"}})
	if len(matches) == 0 {
		return nil
	}
	t, _ := matches[0].Component(ecs.KindTransform).(*component.Transform)
	return t
}
