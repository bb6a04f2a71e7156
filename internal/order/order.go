// Package order defines the commands a unit queues and executes.
package order

import (
	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
)

// Kind tags what an order does when it reaches the front of a queue.
type Kind uint8

const (
	Move Kind = iota
	Attack
	ActionMove
	Follow
	HoldPosition
	Mine
	Collect
	LazyAttack
)

var kindNames = [...]string{
	Move:         "Move",
	Attack:       "Attack",
	ActionMove:   "ActionMove",
	Follow:       "Follow",
	HoldPosition: "HoldPosition",
	Mine:         "Mine",
	Collect:      "Collect",
	LazyAttack:   "LazyAttack",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsInteraction reports whether the order acts on its entity target each tick
// once in range (attack, mine, collect).
func (k Kind) IsInteraction() bool {
	switch k {
	case Attack, LazyAttack, Mine, Collect:
		return true
	}
	return false
}

// IsMove reports whether the order completes on arrival at its move target.
func (k Kind) IsMove() bool {
	return k == Move || k == ActionMove
}

// EntTarget is a point-in-time copy of another entity's id, rect, owner and
// kind, refreshed once per tick by the orchestrator.
type EntTarget struct {
	ID    ecs.EntityID
	Rect  *geom.Rect // nil once the target is gone
	Owner component.Owner
	Kind  component.Kind
}

// NoTarget is the empty snapshot used by purely positional orders.
var NoTarget = EntTarget{}

// None reports whether this is a purely positional order.
func (t EntTarget) None() bool { return t.ID.IsZero() }

// Gone reports whether the target is absent: never set, or cleared by the
// orchestrator after the target died.
func (t EntTarget) Gone() bool { return t.ID.IsZero() || t.Rect == nil }

// Order is one queued instruction. Only the front order of a queue is ever
// executed or checked for completion.
type Order struct {
	Kind       Kind
	MoveTarget geom.Vec2
	Target     EntTarget
	Executed   bool
	Completed  bool
}

// New builds an order. Pass NoTarget for positional orders.
func New(kind Kind, moveTarget geom.Vec2, target EntTarget) *Order {
	return &Order{
		Kind:       kind,
		MoveTarget: moveTarget,
		Target:     target,
	}
}

func (o *Order) MarkExecuted()  { o.Executed = true }
func (o *Order) MarkCompleted() { o.Completed = true }

// Purge drops completed orders, keeping the rest in their original order.
// The backing array is reused.
func Purge(q []*Order) []*Order {
	kept := q[:0]
	for _, o := range q {
		if !o.Completed {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(q); i++ {
		q[i] = nil
	}
	return kept
}

// Front returns the active order, or nil for an empty queue.
func Front(q []*Order) *Order {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// Prepend puts o ahead of the queue without discarding queued orders.
func Prepend(q []*Order, o *Order) []*Order {
	q = append(q, nil)
	copy(q[1:], q)
	q[0] = o
	return q
}
