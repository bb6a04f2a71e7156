package world

import (
	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
)

// State is the live entity collection: entity records plus kind-specific
// component tables keyed by the same id. Tick order is the order entities
// were added.
//
// The live list is mutated only by the orchestrator between ticks.
// Accessed only from the simulation goroutine, no locks needed.
type State struct {
	ecs *ecs.World
	reg *Registry

	entities *ecs.PtrComponentStore[Entity]
	live     []ecs.EntityID

	Units   *ecs.PtrComponentStore[component.Unit]
	Patches *ecs.PtrComponentStore[component.OrePatch]
	Ores    *ecs.PtrComponentStore[component.Ore]
}

// NewState wires the component stores into w so FlushDestroyQueue clears
// every table, the live list and any registry remnant in one pass.
func NewState(w *ecs.World, reg *Registry) *State {
	s := &State{
		ecs:      w,
		reg:      reg,
		entities: ecs.NewStore[Entity](w.Stores()),
		live:     make([]ecs.EntityID, 0, 256),
		Units:    ecs.NewStore[component.Unit](w.Stores()),
		Patches:  ecs.NewStore[component.OrePatch](w.Stores()),
		Ores:     ecs.NewStore[component.Ore](w.Stores()),
	}
	w.Stores().Join(s)
	w.Stores().Join(reg)
	return s
}

func (s *State) Registry() *Registry { return s.reg }
func (s *State) ECS() *ecs.World     { return s.ecs }

// Records exposes the entity record table for joins with component stores.
func (s *State) Records() *ecs.PtrComponentStore[Entity] { return s.entities }

// Create allocates the next id, stores a fresh record at full health and
// registers it. The entity is not ticked until Add puts it in the live list.
func (s *State) Create(kind component.Kind, owner component.Owner, maxHP int32, pos, size geom.Vec2) *Entity {
	e := &Entity{
		ID:       s.ecs.CreateEntity(),
		Kind:     kind,
		Owner:    owner,
		State:    component.Alert,
		Position: pos,
		Size:     size,
		MaxHP:    maxHP,
		HP:       float64(maxHP),
	}
	s.entities.Set(e.ID, e)
	s.reg.Register(e)
	return e
}

// Add appends a created entity to the end of the live list.
func (s *State) Add(e *Entity) {
	if !s.entities.Has(e.ID) {
		s.entities.Set(e.ID, e)
	}
	s.live = append(s.live, e.ID)
}

// Spawn is Create followed by Add, for use outside a tick pass.
func (s *State) Spawn(kind component.Kind, owner component.Owner, maxHP int32, pos, size geom.Vec2) *Entity {
	e := s.Create(kind, owner, maxHP, pos, size)
	s.Add(e)
	return e
}

// Get returns the record for id.
func (s *State) Get(id ecs.EntityID) (*Entity, bool) {
	return s.entities.Get(id)
}

// Each iterates live entities in tick order.
func (s *State) Each(fn func(*Entity)) {
	for _, id := range s.live {
		if e, ok := s.entities.Get(id); ok {
			fn(e)
		}
	}
}

// Live returns a copy of the live ids in tick order.
func (s *State) Live() []ecs.EntityID {
	out := make([]ecs.EntityID, len(s.live))
	copy(out, s.live)
	return out
}

// Len returns the number of live entities.
func (s *State) Len() int {
	return len(s.live)
}

// Remove drops id from the live list, keeping the order of the rest.
func (s *State) Remove(id ecs.EntityID) {
	for i, lid := range s.live {
		if lid == id {
			s.live = append(s.live[:i], s.live[i+1:]...)
			break
		}
	}
}
