package system

import (
	"sync"
	"time"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	coresys "github.com/micron/skirmish/internal/core/system"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/order"
	"github.com/micron/skirmish/internal/world"
	"go.uber.org/zap"
)

// ==================== Order commands ====================

// IssueOrder queues o on e. With replace the existing queue is discarded
// first (a plain click); without it o is appended (a queued click). When o
// becomes the active order the unit leaves Stop/Hold: ActionMove puts it in
// Alert, anything else in Busy.
func IssueOrder(e *world.Entity, u *component.Unit, o *order.Order, replace bool) {
	if replace {
		clearOrders(e)
		if u != nil {
			u.Interacting = false
		}
	}
	e.Orders = append(e.Orders, o)
	if len(e.Orders) > 1 {
		return
	}
	switch o.Kind {
	case order.ActionMove:
		e.State = component.Alert
	case order.HoldPosition:
		// state changes when the order executes
	default:
		e.State = component.Busy
	}
}

// Stop clears all orders and motion. The unit stays put, ignoring nearby
// targets, until it receives a new order.
func Stop(e *world.Entity, u *component.Unit) {
	clearOrders(e)
	if u != nil {
		u.Velocity, u.Desired = geom.Vec2{}, geom.Vec2{}
		u.Interacting = false
	}
	e.State = component.Stop
}

// HoldPosition replaces the queue with a HoldPosition order at e's center.
func HoldPosition(e *world.Entity, u *component.Unit) {
	IssueOrder(e, u, order.New(order.HoldPosition, e.Center(), order.NoTarget), true)
}

func clearOrders(e *world.Entity) {
	for i := range e.Orders {
		e.Orders[i] = nil
	}
	e.Orders = e.Orders[:0]
}

// TargetOrder builds the order for a plain click on targetID: nothing for
// self or a dead target, Follow for a same-owner target, the role's
// interaction order when the role can act on the target's kind, otherwise a
// Move to the target's center.
func TargetOrder(issuer *world.Entity, role Role, reg *world.Registry, targetID ecs.EntityID) (*order.Order, bool) {
	if targetID == issuer.ID {
		return nil, false
	}
	snap, ok := reg.Snapshot(targetID)
	if !ok {
		return nil, false
	}
	switch {
	case snap.Owner == issuer.Owner:
		return order.New(order.Follow, snap.Center, reg.Target(targetID)), true
	case role.CanTarget(snap.Kind):
		return order.New(role.EngageOrder(component.Alert), snap.Center, reg.Target(targetID)), true
	}
	return order.New(order.Move, snap.Center, order.NoTarget), true
}

// AttackOrder builds an explicit Attack on targetID, rejecting self and
// same-owner targets.
func AttackOrder(issuer *world.Entity, reg *world.Registry, targetID ecs.EntityID) (*order.Order, bool) {
	if targetID == issuer.ID {
		return nil, false
	}
	snap, ok := reg.Snapshot(targetID)
	if !ok || snap.Owner == issuer.Owner {
		return nil, false
	}
	return order.New(order.Attack, snap.Center, reg.Target(targetID)), true
}

// MoveOrder and ActionMoveOrder build positional orders.
func MoveOrder(at geom.Vec2) *order.Order {
	return order.New(order.Move, at, order.NoTarget)
}

func ActionMoveOrder(at geom.Vec2) *order.Order {
	return order.New(order.ActionMove, at, order.NoTarget)
}

// ==================== Command queue ====================

// CommandKind selects what a queued Command does.
type CommandKind uint8

const (
	CmdIssue CommandKind = iota
	CmdStop
	CmdHold
)

// Command is one input action aimed at a single entity.
type Command struct {
	Kind    CommandKind
	Entity  ecs.EntityID
	Order   *order.Order // CmdIssue only
	Replace bool
}

// CommandQueue buffers commands from the input side until the next tick.
// Push is safe from any goroutine.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{pending: make([]Command, 0, 16)}
}

func (q *CommandQueue) Push(c Command) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// Drain returns and clears all buffered commands in push order.
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	out := q.pending
	q.pending = make([]Command, 0, cap(out))
	q.mu.Unlock()
	return out
}

// CommandSystem applies queued commands before the tick pass. Commands for
// entities that are no longer live are dropped. Phase 0 (Input).
type CommandSystem struct {
	queue *CommandQueue
	ws    *world.State
	log   *zap.Logger
}

func NewCommandSystem(queue *CommandQueue, ws *world.State, log *zap.Logger) *CommandSystem {
	return &CommandSystem{queue: queue, ws: ws, log: log}
}

func (s *CommandSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *CommandSystem) Update(_ time.Duration) {
	for _, c := range s.queue.Drain() {
		e, ok := s.ws.Get(c.Entity)
		if !ok || !s.ws.Registry().Contains(c.Entity) {
			s.log.Debug("command for missing entity dropped", zap.Uint64("entity", uint64(c.Entity)))
			continue
		}
		u, _ := s.ws.Units.Get(c.Entity)

		switch c.Kind {
		case CmdIssue:
			if c.Order == nil {
				continue
			}
			IssueOrder(e, u, c.Order, c.Replace)
		case CmdStop:
			Stop(e, u)
		case CmdHold:
			HoldPosition(e, u)
		}
	}
}
