package system

import (
	"math"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/event"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/world"
	"go.uber.org/zap"
)

// oreScale converts ore value (richness) into hit points and side length.
const oreScale = 100

// TickOrePatch syncs the patch's health and sheds one loose ore for every
// Density percent of max health lost since the last drop. Dropped ore is
// created and registered immediately but returned for the caller to append
// to the live list after the pass.
func (b *Behavior) TickOrePatch(ws *world.State, e *world.Entity, p *component.OrePatch) []*world.Entity {
	hp, ok := b.reg.HP(e.ID)
	if !ok {
		e.HP = 0
		return nil
	}
	e.HP = hp
	if e.MaxHP <= 0 || p.Density <= 0 {
		return nil
	}

	lost := 1 - hp/float64(e.MaxHP)
	due := int(math.Floor(lost*100)) / p.Density

	var spawned []*world.Entity
	for p.Drops < due {
		ore := b.dropOre(ws, e, p)
		p.Drops++
		spawned = append(spawned, ore)
	}
	return spawned
}

func (b *Behavior) dropOre(ws *world.State, patch *world.Entity, p *component.OrePatch) *world.Entity {
	side := math.Max(1, p.Richness*oreScale)
	maxHP := int32(math.Max(1, math.Round(p.Richness*oreScale)))

	scatter := func(extent float64) float64 {
		return (b.rng.Float64()*2 - 1) * b.tuning.OreScatter * extent
	}
	c := patch.Center()
	c = geom.V(c.X+scatter(patch.Size.X), c.Y+scatter(patch.Size.Y))
	pos := geom.V(c.X-side/2, c.Y-side/2)

	ore := ws.Create(component.KindOre, patch.Owner, maxHP, pos, geom.V(side, side))
	ws.Ores.Set(ore.ID, &component.Ore{OreType: p.OreType, Value: p.Richness})

	b.log.Debug("ore dropped",
		zap.Uint64("patch", uint64(patch.ID)),
		zap.Uint64("ore", uint64(ore.ID)),
		zap.Int("drops", p.Drops+1),
	)
	event.Emit(b.bus, event.OreDropped{PatchID: patch.ID, OreID: ore.ID})
	return ore
}

// TickOre syncs a loose ore's health and shrinks its rect around its center
// as it is collected.
func (b *Behavior) TickOre(e *world.Entity, o *component.Ore) {
	hp, ok := b.reg.HP(e.ID)
	if !ok {
		e.HP = 0
		return
	}
	e.HP = hp
	if e.MaxHP <= 0 {
		return
	}
	side := math.Max(1, o.Value*oreScale*hp/float64(e.MaxHP))
	c := e.Center()
	e.Size = geom.V(side, side)
	e.Position = geom.V(c.X-side/2, c.Y-side/2)
}
