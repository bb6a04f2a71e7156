package world

import (
	"math"

	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
)

const (
	defaultCellSize = 64
	cellLimit       = 1 << 30
)

type cellKey struct {
	cx int32
	cy int32
}

// Grid is a cell-based area-of-interest index over entity rects. An entity
// is filed under every cell its rect touches, so any rect query returns a
// superset of the entities overlapping it. Callers do the exact test.
// Accessed only from the simulation goroutine, no locks.
type Grid struct {
	size  float64
	cells map[cellKey]map[ecs.EntityID]struct{}
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &Grid{
		size:  cellSize,
		cells: make(map[cellKey]map[ecs.EntityID]struct{}),
	}
}

func (g *Grid) toCell(v float64) int32 {
	c := math.Floor(v / g.size)
	switch {
	case c > cellLimit || math.IsNaN(c):
		return cellLimit
	case c < -cellLimit:
		return -cellLimit
	}
	return int32(c)
}

// span returns the inclusive cell range covered by r.
func (g *Grid) span(r geom.Rect) (x0, y0, x1, y1 int32) {
	return g.toCell(r.Left()), g.toCell(r.Top()), g.toCell(r.Right()), g.toCell(r.Bottom())
}

// Insert files id under every cell r touches.
func (g *Grid) Insert(id ecs.EntityID, r geom.Rect) {
	x0, y0, x1, y1 := g.span(r)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			k := cellKey{cx, cy}
			cell := g.cells[k]
			if cell == nil {
				cell = make(map[ecs.EntityID]struct{})
				g.cells[k] = cell
			}
			cell[id] = struct{}{}
		}
	}
}

// Remove takes id out of the cells r touches.
func (g *Grid) Remove(id ecs.EntityID, r geom.Rect) {
	x0, y0, x1, y1 := g.span(r)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			k := cellKey{cx, cy}
			if cell := g.cells[k]; cell != nil {
				delete(cell, id)
				if len(cell) == 0 {
					delete(g.cells, k)
				}
			}
		}
	}
}

// Move refiles id when its rect changes cells.
func (g *Grid) Move(id ecs.EntityID, from, to geom.Rect) {
	fx0, fy0, fx1, fy1 := g.span(from)
	tx0, ty0, tx1, ty1 := g.span(to)
	if fx0 == tx0 && fy0 == ty0 && fx1 == tx1 && fy1 == ty1 {
		return
	}
	g.Remove(id, from)
	g.Insert(id, to)
}

// Query appends to out every id filed in a cell that area touches. An id
// may appear more than once.
func (g *Grid) Query(area geom.Rect, out []ecs.EntityID) []ecs.EntityID {
	x0, y0, x1, y1 := g.span(area)
	if (int64(x1)-int64(x0)+1)*(int64(y1)-int64(y0)+1) > int64(len(g.cells)) {
		// Wide query: walking the occupied cells is cheaper.
		for k, cell := range g.cells {
			if k.cx < x0 || k.cx > x1 || k.cy < y0 || k.cy > y1 {
				continue
			}
			for id := range cell {
				out = append(out, id)
			}
		}
		return out
	}
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			for id := range g.cells[cellKey{cx, cy}] {
				out = append(out, id)
			}
		}
	}
	return out
}

// Cells returns the number of non-empty cells.
func (g *Grid) Cells() int {
	return len(g.cells)
}
