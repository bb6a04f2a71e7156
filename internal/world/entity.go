package world

import (
	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/order"
)

// Entity is the common record every simulated object carries. Kind-specific
// data (unit stats, ore patch density, ...) lives in the State's component
// stores under the same id.
//
// Accessed only from the simulation goroutine, no locks needed.
type Entity struct {
	ID    ecs.EntityID
	Kind  component.Kind
	Owner component.Owner
	State component.State

	Position geom.Vec2 // top-left corner of the bounding box
	Size     geom.Vec2

	MaxHP int32
	HP    float64 // mirrors the registry row; refreshed at tick start

	Orders   []*order.Order // front = active
	Selected bool
}

func (e *Entity) Rect() geom.Rect {
	return geom.Rect{Pos: e.Position, Size: e.Size}
}

func (e *Entity) Center() geom.Vec2 {
	return e.Rect().Center()
}

func (e *Entity) Alive() bool { return e.HP > 0 }

// Front returns the active order, or nil.
func (e *Entity) Front() *order.Order {
	return order.Front(e.Orders)
}
