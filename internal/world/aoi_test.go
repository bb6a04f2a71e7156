package world

import (
	"math"
	"testing"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
)

func has(ids []ecs.EntityID, id ecs.EntityID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestGridInsertSpansCells(t *testing.T) {
	g := NewGrid(10)
	g.Insert(1, geom.R(5, 5, 10, 10)) // cells (0..1, 0..1)
	if g.Cells() != 4 {
		t.Fatalf("Expected 4 cells, got %d", g.Cells())
	}

	tests := []struct {
		name string
		area geom.Rect
		want bool
	}{
		{"same cell", geom.R(0, 0, 1, 1), true},
		{"far corner cell", geom.R(19, 19, 0.5, 0.5), true},
		{"negative neighbour", geom.R(-5, -5, 1, 1), false},
		{"two cells away", geom.R(25, 0, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := has(g.Query(tt.area, nil), 1); got != tt.want {
				t.Errorf("Query(%v) found=%v, want %v", tt.area, got, tt.want)
			}
		})
	}
}

func TestGridMoveAndRemove(t *testing.T) {
	g := NewGrid(10)
	from := geom.R(1, 1, 2, 2)
	to := geom.R(41, 1, 2, 2)
	g.Insert(7, from)

	g.Move(7, from, geom.R(2, 2, 2, 2))
	if !has(g.Query(from, nil), 7) {
		t.Error("Expected a move inside the cell to keep the entry")
	}

	g.Move(7, from, to)
	if has(g.Query(from, nil), 7) {
		t.Error("Expected the old cell to be vacated")
	}
	if !has(g.Query(to, nil), 7) {
		t.Error("Expected the new cell to hold the entry")
	}

	g.Remove(7, to)
	if g.Cells() != 0 {
		t.Errorf("Expected empty cells to be dropped, got %d", g.Cells())
	}
}

func TestGridWideQuery(t *testing.T) {
	g := NewGrid(10)
	g.Insert(1, geom.R(-500, -500, 1, 1))
	g.Insert(2, geom.R(900, 900, 1, 1))

	got := g.Query(geom.R(-1e12, -1e12, 2e12, 2e12), nil)
	if !has(got, 1) || !has(got, 2) {
		t.Errorf("Expected both entries from a wide query, got %v", got)
	}
	inf := math.Inf(1)
	if got := g.Query(geom.R(-inf, -inf, inf, inf), nil); len(got) != 2 {
		t.Errorf("Expected unbounded query to return everything, got %v", got)
	}
}

func TestRegistryNear(t *testing.T) {
	s := newTestState()
	reg := s.Registry()
	var ids []ecs.EntityID
	for _, x := range []float64{300, 0, 20, 1000} {
		e := s.Spawn(component.KindUnit, component.Player, 10, geom.V(x, 0), geom.V(10, 10))
		ids = append(ids, e.ID)
	}

	var seen []ecs.EntityID
	reg.Near(geom.R(-10, -10, 350, 30), func(id ecs.EntityID, _ *Snapshot) { seen = append(seen, id) })
	want := []ecs.EntityID{ids[0], ids[1], ids[2]}
	if len(seen) != len(want) {
		t.Fatalf("Expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Expected registration order %v, got %v", want, seen)
			break
		}
	}

	reg.ApplyDamage(ids[1], 100)
	seen = seen[:0]
	reg.Near(geom.R(-10, -10, 50, 30), func(id ecs.EntityID, _ *Snapshot) { seen = append(seen, id) })
	if len(seen) != 1 || seen[0] != ids[2] {
		t.Errorf("Expected only the survivor, got %v", seen)
	}
}

func TestRegistryNearFollowsRefresh(t *testing.T) {
	s := newTestState()
	reg := s.Registry()
	e := s.Spawn(component.KindUnit, component.Cpu, 10, geom.V(0, 0), geom.V(10, 10))

	e.Position = geom.V(500, 500)
	reg.Refresh(e)

	count := func(area geom.Rect) int {
		n := 0
		reg.Near(area, func(ecs.EntityID, *Snapshot) { n++ })
		return n
	}
	if n := count(geom.R(0, 0, 10, 10)); n != 0 {
		t.Errorf("Expected old position empty, got %d", n)
	}
	if n := count(geom.R(500, 500, 10, 10)); n != 1 {
		t.Errorf("Expected entity at new position, got %d", n)
	}

	reg.Register(e)
	if n := count(geom.R(500, 500, 10, 10)); n != 1 {
		t.Errorf("Expected re-register not to duplicate, got %d", n)
	}
}
