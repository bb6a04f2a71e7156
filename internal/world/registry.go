package world

import (
	"sort"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/order"
)

// Snapshot is the registry's denormalized view of one live entity.
type Snapshot struct {
	MaxHP  int32
	HP     float64
	Rect   geom.Rect
	Center geom.Vec2
	Owner  component.Owner
	Kind   component.Kind
}

// Registry is the authoritative cross-entity lookup table. A row present
// here denotes a live entity; absence means dead or never registered.
//
// Every write is visible to the next read (no buffering, no rollback), so an
// entity ticked later in a pass sees deaths caused earlier in the same pass.
// Accessed only from the simulation goroutine, no locks.
type Registry struct {
	rows map[ecs.EntityID]*Snapshot

	// order holds ids in registration order for deterministic scans. Removed
	// ids stay until Compact so removal during a scan is safe.
	order []ecs.EntityID
	seq   map[ecs.EntityID]uint64
	next  uint64
	stale int

	grid    *Grid
	scratch []ecs.EntityID
}

func NewRegistry() *Registry {
	return &Registry{
		rows:  make(map[ecs.EntityID]*Snapshot, 256),
		order: make([]ecs.EntityID, 0, 256),
		seq:   make(map[ecs.EntityID]uint64, 256),
		grid:  NewGrid(defaultCellSize),
	}
}

func snapshotOf(e *Entity) *Snapshot {
	r := e.Rect()
	return &Snapshot{
		MaxHP:  e.MaxHP,
		HP:     e.HP,
		Rect:   r,
		Center: r.Center(),
		Owner:  e.Owner,
		Kind:   e.Kind,
	}
}

// Register inserts a full snapshot of e, overwriting any existing row.
func (r *Registry) Register(e *Entity) {
	if old, ok := r.rows[e.ID]; ok {
		r.grid.Remove(e.ID, old.Rect)
	}
	row := snapshotOf(e)
	r.rows[e.ID] = row
	r.grid.Insert(e.ID, row.Rect)
	if _, ok := r.seq[e.ID]; !ok {
		r.next++
		r.seq[e.ID] = r.next
		r.order = append(r.order, e.ID)
	}
}

// Refresh re-derives e's row from its current transform. Health is owned by
// the registry: e.HP is overwritten with the stored value. Refresh never
// re-inserts a row for a dead entity.
func (r *Registry) Refresh(e *Entity) {
	row, ok := r.rows[e.ID]
	if !ok {
		e.HP = 0
		return
	}
	rect := e.Rect()
	r.grid.Move(e.ID, row.Rect, rect)
	row.Rect = rect
	row.Center = rect.Center()
	row.Owner = e.Owner
	row.Kind = e.Kind
	e.HP = row.HP
}

// ApplyDamage subtracts amount from id's health. When the result is <= 0 the
// row is removed and (0, false) is returned; otherwise the remaining health
// and true. Unknown ids return (0, false). This is the only path that lowers
// health.
func (r *Registry) ApplyDamage(id ecs.EntityID, amount float64) (float64, bool) {
	row, ok := r.rows[id]
	if !ok {
		return 0, false
	}
	hp := row.HP - amount
	if hp <= 0 {
		r.Remove(id)
		return 0, false
	}
	row.HP = hp
	return hp, true
}

// Remove hard-deletes id's row.
func (r *Registry) Remove(id ecs.EntityID) {
	row, ok := r.rows[id]
	if !ok {
		return
	}
	r.grid.Remove(id, row.Rect)
	delete(r.rows, id)
	r.stale++
}

func (r *Registry) Contains(id ecs.EntityID) bool {
	_, ok := r.rows[id]
	return ok
}

func (r *Registry) Snapshot(id ecs.EntityID) (Snapshot, bool) {
	row, ok := r.rows[id]
	if !ok {
		return Snapshot{}, false
	}
	return *row, true
}

// Position returns the center of id's rect.
func (r *Registry) Position(id ecs.EntityID) (geom.Vec2, bool) {
	row, ok := r.rows[id]
	if !ok {
		return geom.Vec2{}, false
	}
	return row.Center, true
}

func (r *Registry) Rect(id ecs.EntityID) (geom.Rect, bool) {
	row, ok := r.rows[id]
	if !ok {
		return geom.Rect{}, false
	}
	return row.Rect, true
}

func (r *Registry) Owner(id ecs.EntityID) (component.Owner, bool) {
	row, ok := r.rows[id]
	if !ok {
		return 0, false
	}
	return row.Owner, true
}

func (r *Registry) Kind(id ecs.EntityID) (component.Kind, bool) {
	row, ok := r.rows[id]
	if !ok {
		return 0, false
	}
	return row.Kind, true
}

func (r *Registry) HP(id ecs.EntityID) (float64, bool) {
	row, ok := r.rows[id]
	if !ok {
		return 0, false
	}
	return row.HP, true
}

// Target builds an order target snapshot for id, or order.NoTarget-with-id
// (rect nil) when id is not live.
func (r *Registry) Target(id ecs.EntityID) order.EntTarget {
	row, ok := r.rows[id]
	if !ok {
		return order.EntTarget{ID: id}
	}
	rect := row.Rect
	return order.EntTarget{ID: id, Rect: &rect, Owner: row.Owner, Kind: row.Kind}
}

// Each visits live rows in registration order. Rows removed during the scan
// are skipped from that point on.
func (r *Registry) Each(fn func(ecs.EntityID, *Snapshot)) {
	for _, id := range r.order {
		if row, ok := r.rows[id]; ok {
			fn(id, row)
		}
	}
}

// Near visits live rows whose rect may reach area, in registration order.
// It is a broad phase: callers still test the rows they get. fn must not
// register new rows.
func (r *Registry) Near(area geom.Rect, fn func(ecs.EntityID, *Snapshot)) {
	ids := r.grid.Query(area, r.scratch[:0])
	sort.Slice(ids, func(i, j int) bool { return r.seq[ids[i]] < r.seq[ids[j]] })
	var prev ecs.EntityID
	for _, id := range ids {
		if id == prev {
			continue
		}
		prev = id
		if row, ok := r.rows[id]; ok {
			fn(id, row)
		}
	}
	r.scratch = ids[:0]
}

// Len returns the number of live rows.
func (r *Registry) Len() int {
	return len(r.rows)
}

// Compact drops removed ids from the scan order. Call between ticks.
func (r *Registry) Compact() {
	if r.stale == 0 {
		return
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.rows[id]; ok {
			kept = append(kept, id)
		} else {
			delete(r.seq, id)
		}
	}
	r.order = kept
	r.stale = 0
}
