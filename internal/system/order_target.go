package system

import (
	"time"

	coresys "github.com/micron/skirmish/internal/core/system"
	"github.com/micron/skirmish/internal/world"
)

// OrderTargetSystem refreshes every entity-targeted order after the tick
// pass: the move target follows the target's current center and the cached
// rect is replaced, or cleared once the target is gone. Between refreshes an
// order sees its target as of the end of the previous pass. Phase 3
// (PostUpdate).
type OrderTargetSystem struct {
	ws *world.State
}

func NewOrderTargetSystem(ws *world.State) *OrderTargetSystem {
	return &OrderTargetSystem{ws: ws}
}

func (s *OrderTargetSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *OrderTargetSystem) Update(_ time.Duration) {
	reg := s.ws.Registry()
	s.ws.Each(func(e *world.Entity) {
		if !reg.Contains(e.ID) {
			return
		}
		for _, o := range e.Orders {
			if o.Target.None() {
				continue
			}
			snap, ok := reg.Snapshot(o.Target.ID)
			if !ok {
				o.Target.Rect = nil
				continue
			}
			rect := snap.Rect
			o.Target.Rect = &rect
			o.MoveTarget = snap.Center
		}
	})
}
