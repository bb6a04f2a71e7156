package system

import (
	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/order"
	"github.com/micron/skirmish/internal/world"
)

// storageEpsilon absorbs float drift when cargo is filled in small steps.
const storageEpsilon = 1e-9

// Interaction is the per-tick input a Role acts on once its unit is in range
// and interacting with the front order's target.
type Interaction struct {
	Entity   *world.Entity
	Unit     *component.Unit
	TargetID ecs.EntityID
	Target   world.Snapshot // as of the start of this interaction
	Registry *world.Registry
	Rate     float64 // effect per second, after scripted formulas
	DT       float64 // seconds
}

// Amount is the effect owed for this tick.
func (in *Interaction) Amount() float64 { return in.Rate * in.DT }

// Role is the capability set a unit template selects by name.
type Role interface {
	Name() string
	// CanTarget reports whether units of this role may act on entities of kind.
	CanTarget(kind component.Kind) bool
	// Ready reports whether u may take on a new target right now.
	Ready(u *component.Unit) bool
	// EngageOrder is the order synthesized on auto-engagement from state.
	EngageOrder(state component.State) order.Kind
	// Interact applies one tick of effect and reports whether the order is done.
	Interact(in *Interaction) bool
}

// StorageFull reports whether u cannot take any more cargo.
func StorageFull(u *component.Unit) bool {
	return u.Capacity <= 0 || u.Cargo >= u.Capacity-storageEpsilon
}

type combatRole struct{}

func (combatRole) Name() string { return "combat" }

func (combatRole) CanTarget(kind component.Kind) bool {
	return kind == component.KindUnit || kind == component.KindStructure
}

func (combatRole) Ready(*component.Unit) bool { return true }

func (combatRole) EngageOrder(state component.State) order.Kind {
	if state == component.Hold {
		return order.LazyAttack
	}
	return order.Attack
}

// Interact damages the target. Completion is observed on the next tick when
// the target's registry row is gone.
func (combatRole) Interact(in *Interaction) bool {
	in.Registry.ApplyDamage(in.TargetID, in.Amount())
	return false
}

type minerRole struct{}

func (minerRole) Name() string { return "miner" }

func (minerRole) CanTarget(kind component.Kind) bool { return kind == component.KindOrePatch }

func (minerRole) Ready(*component.Unit) bool { return true }

func (minerRole) EngageOrder(component.State) order.Kind { return order.Mine }

func (minerRole) Interact(in *Interaction) bool {
	in.Registry.ApplyDamage(in.TargetID, in.Amount())
	return false
}

type gathererRole struct{}

func (gathererRole) Name() string { return "gatherer" }

func (gathererRole) CanTarget(kind component.Kind) bool { return kind == component.KindOre }

func (gathererRole) Ready(u *component.Unit) bool { return !StorageFull(u) }

func (gathererRole) EngageOrder(component.State) order.Kind { return order.Collect }

// Interact moves min(rate*dt, free capacity, target hp) from the ore's health
// into cargo. Done once storage is full.
func (gathererRole) Interact(in *Interaction) bool {
	u := in.Unit
	if StorageFull(u) {
		return true
	}
	take := in.Amount()
	if free := u.Capacity - u.Cargo; take > free {
		take = free
	}
	if take > in.Target.HP {
		take = in.Target.HP
	}
	if take <= 0 {
		return false
	}
	in.Registry.ApplyDamage(in.TargetID, take)
	u.Cargo += take
	return StorageFull(u)
}

// passiveRole backs units whose template names no known role: they never
// engage and finish any interaction they are ordered into.
type passiveRole struct{ name string }

func (r passiveRole) Name() string                         { return r.name }
func (passiveRole) CanTarget(component.Kind) bool          { return false }
func (passiveRole) Ready(*component.Unit) bool             { return false }
func (passiveRole) EngageOrder(component.State) order.Kind { return order.Attack }
func (passiveRole) Interact(*Interaction) bool             { return true }

// Roles maps role names to implementations.
type Roles map[string]Role

// DefaultRoles returns the built-in combat, miner and gatherer roles.
func DefaultRoles() Roles {
	return Roles{
		"combat":   combatRole{},
		"miner":    minerRole{},
		"gatherer": gathererRole{},
	}
}

// Lookup returns the role called name, or a passive role when none matches.
func (r Roles) Lookup(name string) Role {
	if role, ok := r[name]; ok {
		return role
	}
	return passiveRole{name: name}
}
