package sim

import (
	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/core/event"
	"github.com/micron/skirmish/internal/world"
)

// Counters accumulate event totals. Events are delivered one tick late, so
// counts trail the world by a tick.
type Counters struct {
	Destroyed       int
	UnitsLost       map[component.Owner]int
	OreDropped      int
	OrdersCompleted int
	TargetsAcquired int
}

func (s *Sim) subscribe() {
	s.counters.UnitsLost = make(map[component.Owner]int)
	event.Subscribe(s.Bus, func(ev event.EntityDestroyed) {
		s.counters.Destroyed++
		if ev.Kind != component.KindUnit.String() {
			return
		}
		if o, ok := component.ParseOwner(ev.Owner); ok {
			s.counters.UnitsLost[o]++
		}
	})
	event.Subscribe(s.Bus, func(event.OreDropped) { s.counters.OreDropped++ })
	event.Subscribe(s.Bus, func(event.OrderCompleted) { s.counters.OrdersCompleted++ })
	event.Subscribe(s.Bus, func(event.TargetAcquired) { s.counters.TargetsAcquired++ })
}

// Side aggregates one owner's surviving units.
type Side struct {
	Units int
	HP    float64
	Cargo float64
}

// Summary is a point-in-time report of the world.
type Summary struct {
	Tick     uint64
	Live     int
	Sides    map[component.Owner]Side
	Counters Counters
}

// Summary reports surviving units per owner plus event totals.
func (s *Sim) Summary() Summary {
	sides := make(map[component.Owner]Side, 3)
	ecs.Each2(s.State.Records(), s.State.Units, func(id ecs.EntityID, e *world.Entity, u *component.Unit) {
		hp, ok := s.Registry.HP(id)
		if !ok {
			return
		}
		side := sides[e.Owner]
		side.Units++
		side.HP += hp
		side.Cargo += u.Cargo
		sides[e.Owner] = side
	})

	c := s.counters
	c.UnitsLost = make(map[component.Owner]int, len(s.counters.UnitsLost))
	for k, v := range s.counters.UnitsLost {
		c.UnitsLost[k] = v
	}
	return Summary{
		Tick:     s.Ticks(),
		Live:     s.State.Len(),
		Sides:    sides,
		Counters: c,
	}
}

// Winner reports the only owner with units left standing among Player and
// Cpu, once the other side has none.
func (s *Sim) Winner() (component.Owner, bool) {
	sides := s.Summary().Sides
	player, cpu := sides[component.Player].Units, sides[component.Cpu].Units
	switch {
	case player > 0 && cpu == 0:
		return component.Player, true
	case cpu > 0 && player == 0:
		return component.Cpu, true
	}
	return component.Nature, false
}
