package system

import (
	"time"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/event"
	coresys "github.com/micron/skirmish/internal/core/system"
	"github.com/micron/skirmish/internal/world"
	"go.uber.org/zap"
)

// WorldSystem is the per-tick pass over the live collection. Entities whose
// registry row has vanished are queued for destruction; the rest are ticked
// by kind and their registry row refreshed. Phase 2 (Update).
type WorldSystem struct {
	ws       *world.State
	behavior *Behavior
	bus      *event.Bus
	log      *zap.Logger

	spawned []*world.Entity
}

func NewWorldSystem(ws *world.State, behavior *Behavior, bus *event.Bus, log *zap.Logger) *WorldSystem {
	return &WorldSystem{
		ws:       ws,
		behavior: behavior,
		bus:      bus,
		log:      log,
	}
}

func (s *WorldSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WorldSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	reg := s.ws.Registry()
	s.spawned = s.spawned[:0]

	s.ws.Each(func(e *world.Entity) {
		if !reg.Contains(e.ID) {
			s.evict(e)
			return
		}
		switch e.Kind {
		case component.KindUnit:
			if u, ok := s.ws.Units.Get(e.ID); ok {
				s.behavior.TickUnit(e, u, sec)
			}
		case component.KindOrePatch:
			if p, ok := s.ws.Patches.Get(e.ID); ok {
				s.spawned = append(s.spawned, s.behavior.TickOrePatch(s.ws, e, p)...)
			}
		case component.KindOre:
			if o, ok := s.ws.Ores.Get(e.ID); ok {
				s.behavior.TickOre(e, o)
			}
		}
		reg.Refresh(e)
	})

	// Ore dropped during the pass joins the live list for the next tick.
	for i, e := range s.spawned {
		s.ws.Add(e)
		s.spawned[i] = nil
	}
}

func (s *WorldSystem) evict(e *world.Entity) {
	e.HP = 0
	e.Orders = nil
	if s.ws.ECS().MarkForDestruction(e.ID) {
		s.log.Debug("entity destroyed",
			zap.Uint64("entity", uint64(e.ID)),
			zap.Stringer("kind", e.Kind),
			zap.Stringer("owner", e.Owner),
		)
		event.Emit(s.bus, event.EntityDestroyed{ID: e.ID, Kind: e.Kind.String(), Owner: e.Owner.String()})
	}
}
