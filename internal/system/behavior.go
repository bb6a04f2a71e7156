package system

import (
	"math"
	"math/rand"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/core/event"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/order"
	"github.com/micron/skirmish/internal/scripting"
	"github.com/micron/skirmish/internal/world"
	"go.uber.org/zap"
)

// Tuning holds the behavior constants loaded from [tuning].
type Tuning struct {
	ArrivalThreshold   float64 // move orders complete within this distance
	InteractionPenalty float64 // speed multiplier while interacting
	HoverDistance      float64 // follow stops closing in within this distance
	OreScatter         float64 // dropped ore lands within this many patch sizes
}

// DefaultTuning matches the shipped config/sim.toml.
func DefaultTuning() Tuning {
	return Tuning{
		ArrivalThreshold:   3,
		InteractionPenalty: 0.35,
		HoverDistance:      175,
		OreScatter:         2,
	}
}

// Behavior advances units through their order queues. It reads and writes
// the world registry directly; it is not a System and is driven per entity
// by WorldSystem.
type Behavior struct {
	reg    *world.Registry
	bus    *event.Bus
	roles  Roles
	lua    *scripting.Engine // nil: template rates are used as-is
	rng    *rand.Rand
	tuning Tuning
	log    *zap.Logger
}

func NewBehavior(reg *world.Registry, bus *event.Bus, roles Roles, lua *scripting.Engine, rng *rand.Rand, tuning Tuning, log *zap.Logger) *Behavior {
	return &Behavior{
		reg:    reg,
		bus:    bus,
		roles:  roles,
		lua:    lua,
		rng:    rng,
		tuning: tuning,
		log:    log,
	}
}

// Tuning returns the active constants.
func (b *Behavior) Tuning() Tuning { return b.tuning }

// TickUnit runs one fixed step for a unit. dt is in seconds.
func (b *Behavior) TickUnit(e *world.Entity, u *component.Unit, dt float64) {
	hp, ok := b.reg.HP(e.ID)
	if !ok {
		e.HP = 0
		return
	}
	e.HP = hp

	role := b.roles.Lookup(u.Role)

	steer(u)
	b.move(e, u, dt)

	if len(e.Orders) == 0 && e.State != component.Stop && e.State != component.Hold {
		e.State = component.Alert
	}

	if (e.State == component.Alert || e.State == component.Hold) && !holdPending(e) {
		b.autoEngage(e, u, role)
	}

	if o := e.Front(); o != nil && o.Executed && !o.Completed {
		b.checkCompletion(e, u, o)
	}
	e.Orders = order.Purge(e.Orders)

	if o := e.Front(); o != nil {
		b.execute(e, u, role, o, dt)
		o.MarkExecuted()
	}
	e.Orders = order.Purge(e.Orders)
}

// holdPending reports whether an issued HoldPosition has yet to run.
// Auto-engagement waits for it, so a held unit engages with LazyAttack.
func holdPending(e *world.Entity) bool {
	o := e.Front()
	return o != nil && o.Kind == order.HoldPosition && !o.Executed
}

// steer moves velocity toward desired, damped by mass.
func steer(u *component.Unit) {
	mass := u.Mass
	if mass < 1 {
		mass = 1
	}
	u.Velocity = u.Velocity.Add(u.Desired.Sub(u.Velocity).Scale(1 / mass))
}

// move integrates velocity one axis at a time, resolving collisions after
// each axis step.
func (b *Behavior) move(e *world.Entity, u *component.Unit, dt float64) {
	step := dt
	if u.Interacting {
		step *= b.tuning.InteractionPenalty
	}
	d := u.Velocity.Scale(step)

	if d.X != 0 {
		before := e.Rect()
		e.Position.X += d.X
		b.collide(e, before, d.X, true)
	}
	if d.Y != 0 {
		before := e.Rect()
		e.Position.Y += d.Y
		b.collide(e, before, d.Y, false)
	}
}

// collide clamps e against every other registry rect it newly overlaps after
// a step of delta along one axis. Rects overlapped before the step are
// ignored so stuck entities can separate.
func (b *Behavior) collide(e *world.Entity, before geom.Rect, delta float64, xAxis bool) {
	b.reg.Near(hull(before, e.Rect()), func(id ecs.EntityID, row *world.Snapshot) {
		if id == e.ID || before.Overlaps(row.Rect) || !e.Rect().Overlaps(row.Rect) {
			return
		}
		switch {
		case xAxis && delta > 0:
			e.Position.X = row.Rect.Left() - e.Size.X
		case xAxis:
			e.Position.X = row.Rect.Right()
		case delta > 0:
			e.Position.Y = row.Rect.Top() - e.Size.Y
		default:
			e.Position.Y = row.Rect.Bottom()
		}
	})
}

func hull(a, b geom.Rect) geom.Rect {
	x0, y0 := math.Min(a.Left(), b.Left()), math.Min(a.Top(), b.Top())
	x1, y1 := math.Max(a.Right(), b.Right()), math.Max(a.Bottom(), b.Bottom())
	return geom.R(x0, y0, x1-x0, y1-y0)
}

// autoEngage prepends an interaction order against the nearest eligible
// entity in range, if any.
func (b *Behavior) autoEngage(e *world.Entity, u *component.Unit, role Role) {
	if !role.Ready(u) {
		return
	}
	id, ok := b.nearestTarget(e, u, role)
	if !ok {
		return
	}
	pos, _ := b.reg.Position(id)
	kind := role.EngageOrder(e.State)
	e.Orders = order.Prepend(e.Orders, order.New(kind, pos, b.reg.Target(id)))

	b.log.Debug("target acquired",
		zap.Uint64("entity", uint64(e.ID)),
		zap.Uint64("target", uint64(id)),
		zap.Stringer("order", kind),
	)
	event.Emit(b.bus, event.TargetAcquired{EntityID: e.ID, TargetID: id, Order: kind.String()})
}

// nearestTarget scans the registry for the closest row that is not e, not
// owned by e's owner, targetable by role and within range. Ties keep the
// first row in registry order.
func (b *Behavior) nearestTarget(e *world.Entity, u *component.Unit, role Role) (ecs.EntityID, bool) {
	center := e.Center()
	var best ecs.EntityID
	bestDist := math.Inf(1)
	reach := geom.R(center.X-u.Range, center.Y-u.Range, 2*u.Range, 2*u.Range)
	b.reg.Near(reach, func(id ecs.EntityID, row *world.Snapshot) {
		if id == e.ID || row.Owner == e.Owner || !role.CanTarget(row.Kind) {
			return
		}
		d := center.Dist(row.Center)
		if d > u.Range || d >= bestDist {
			return
		}
		best, bestDist = id, d
	})
	return best, !best.IsZero()
}

// checkCompletion evaluates the front order's completion predicate. Only
// called for orders that have already been executed once.
func (b *Behavior) checkCompletion(e *world.Entity, u *component.Unit, o *order.Order) {
	switch {
	case o.Kind.IsMove():
		if e.Center().Dist(o.MoveTarget) <= b.tuning.ArrivalThreshold {
			u.Velocity, u.Desired = geom.Vec2{}, geom.Vec2{}
			b.complete(e, o)
		}
	case o.Kind == order.HoldPosition:
		b.complete(e, o)
	case o.Kind.IsInteraction():
		if o.Target.Gone() || !b.reg.Contains(o.Target.ID) ||
			(o.Kind == order.Collect && StorageFull(u)) {
			b.finishInteraction(e, u, o)
		}
	}
	// Follow completes during execution, once its target is gone.
}

func (b *Behavior) execute(e *world.Entity, u *component.Unit, role Role, o *order.Order, dt float64) {
	switch o.Kind {
	case order.Move:
		e.State = component.Busy
		u.Interacting = false
		u.Desired = geom.Toward(e.Center(), o.MoveTarget, u.Speed)
	case order.ActionMove:
		e.State = component.Alert
		u.Interacting = false
		u.Desired = geom.Toward(e.Center(), o.MoveTarget, u.Speed)
	case order.Follow:
		b.follow(e, u, o)
	case order.HoldPosition:
		for i := 1; i < len(e.Orders); i++ {
			e.Orders[i] = nil
		}
		e.Orders = append(e.Orders[:0], o)
		u.Velocity, u.Desired = geom.Vec2{}, geom.Vec2{}
		u.Interacting = false
		e.State = component.Hold
		b.complete(e, o)
	default:
		if o.Kind.IsInteraction() {
			b.interact(e, u, role, o, dt)
		}
	}
}

func (b *Behavior) follow(e *world.Entity, u *component.Unit, o *order.Order) {
	pos, ok := b.reg.Position(o.Target.ID)
	if o.Target.Gone() || !ok {
		u.Desired = geom.Vec2{}
		b.complete(e, o)
		return
	}
	e.State = component.Busy
	u.Interacting = false
	center := e.Center()
	if center.Dist(pos) <= b.tuning.HoverDistance {
		u.Desired = geom.Vec2{}
		return
	}
	u.Desired = geom.Toward(center, pos, u.Speed)
}

// interact drives Attack, LazyAttack, Mine and Collect: chase until in range,
// spend one tick starting the interaction, then apply the role's effect
// every tick after.
func (b *Behavior) interact(e *world.Entity, u *component.Unit, role Role, o *order.Order, dt float64) {
	snap, ok := b.reg.Snapshot(o.Target.ID)
	if o.Target.Gone() || !ok || (o.Kind == order.Collect && StorageFull(u)) {
		b.finishInteraction(e, u, o)
		return
	}

	center := e.Center()
	if center.Dist(snap.Center) > u.Range {
		if o.Kind == order.LazyAttack {
			b.finishInteraction(e, u, o)
			return
		}
		e.State = component.Busy
		u.Interacting = false
		u.Desired = geom.Toward(center, snap.Center, u.Speed)
		return
	}

	if !u.Interacting {
		u.Interacting = true
		u.Velocity, u.Desired = geom.Vec2{}, geom.Vec2{}
		u.Anchor = snap.Rect.RandomPoint(b.rng)
		e.State = component.Busy
		return
	}

	in := &Interaction{
		Entity:   e,
		Unit:     u,
		TargetID: o.Target.ID,
		Target:   snap,
		Registry: b.reg,
		Rate:     b.rate(u, role, o, snap),
		DT:       dt,
	}
	if role.Interact(in) {
		b.finishInteraction(e, u, o)
	}
}

// rate is the effect per second for this tick: the template rate, passed
// through the scripted formula when one is loaded.
func (b *Behavior) rate(u *component.Unit, role Role, o *order.Order, snap world.Snapshot) float64 {
	if b.lua == nil {
		return u.Rate
	}
	return b.lua.CalcInteraction(scripting.InteractionContext{
		Role:        role.Name(),
		Order:       o.Kind.String(),
		BaseRate:    u.Rate,
		TargetKind:  snap.Kind.String(),
		TargetHP:    snap.HP,
		TargetMaxHP: float64(snap.MaxHP),
		Cargo:       u.Cargo,
		Capacity:    u.Capacity,
	})
}

// finishInteraction completes an interaction order and drops back to Alert,
// or to Hold for LazyAttack.
func (b *Behavior) finishInteraction(e *world.Entity, u *component.Unit, o *order.Order) {
	u.Interacting = false
	u.Velocity, u.Desired = geom.Vec2{}, geom.Vec2{}
	if o.Kind == order.LazyAttack {
		e.State = component.Hold
	} else {
		e.State = component.Alert
	}
	b.complete(e, o)
}

func (b *Behavior) complete(e *world.Entity, o *order.Order) {
	o.MarkCompleted()
	b.log.Debug("order completed",
		zap.Uint64("entity", uint64(e.ID)),
		zap.Stringer("order", o.Kind),
	)
	event.Emit(b.bus, event.OrderCompleted{EntityID: e.ID, Kind: o.Kind.String()})
}
