package system

import (
	"go.uber.org/zap"

	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/core/ecs"
	"github.com/promenade/engine/internal/core/event"
	coresys "github.com/promenade/engine/internal/core/system"
)

// BillboardProximity marks billboards read the first time the player walks
// into their radius and emits billboard:read. A billboard is read at most
// once for the lifetime of its component.
type BillboardProximity struct {
	coresys.Base
	world *ecs.World
	log   *zap.Logger
}

func NewBillboardProximity(log *zap.Logger) *BillboardProximity {
	if log == nil {
		log = zap.NewNop()
	}
	return &BillboardProximity{
		Base: coresys.NewBase(coresys.PriorityNormal, ecs.KindTransform, ecs.KindBillboard),
		log:  log,
	}
}

func (s *BillboardProximity) Init(w *ecs.World) { s.world = w }

func (s *BillboardProximity) Update(dt float64, entities []*ecs.Entity) {
	player := playerTransform(s.world)
	if player == nil {
		return
	}
	for _, e := range entities {
		t, tok := e.Component(ecs.KindTransform).(*component.Transform)
		b, bok := e.Component(ecs.KindBillboard).(*component.Billboard)
		if !tok || !bok || !b.Active() || b.Read {
			continue
		}
		dx := player.X - t.X
		dz := player.Z - t.Z
		if dx*dx+dz*dz > b.Radius*b.Radius {
			continue
		}
		b.Read = true
		s.world.Bus().Emit(event.Event{
			Type:     EventBillboardRead,
			EntityID: string(e.ID),
			Data: map[string]any{
				"title": b.Title,
				"body":  b.Body,
			},
		})
		s.log.Info("billboard read", zap.String("title", b.Title))
	}
}
