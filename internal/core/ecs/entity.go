package ecs

import "sync/atomic"

// EntityID is an opaque, process-unique entity identity. Zero means "no entity".
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// IDGen hands out strictly increasing entity ids. Ids are never reused, so a
// stale id held by an order can only ever miss, never alias a newer entity.
type IDGen struct {
	last atomic.Uint64
}

func NewIDGen() *IDGen {
	return &IDGen{}
}

// Next returns the next id. The first id is 1.
func (g *IDGen) Next() EntityID {
	return EntityID(g.last.Add(1))
}

// Last returns the most recently allocated id (0 if none).
func (g *IDGen) Last() EntityID {
	return EntityID(g.last.Load())
}
