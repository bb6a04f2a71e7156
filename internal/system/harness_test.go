package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/core/event"
	coresys "github.com/micron/skirmish/internal/core/system"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/scripting"
	"github.com/micron/skirmish/internal/world"
	"go.uber.org/zap"
)

const tick = time.Second / 60

// harness wires the same systems the simulation runs, in the same phases.
type harness struct {
	world  *ecs.World
	reg    *world.Registry
	ws     *world.State
	bus    *event.Bus
	beh    *Behavior
	cmds   *CommandQueue
	runner *coresys.Runner
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, nil)
}

func newHarnessWith(t *testing.T, lua *scripting.Engine) *harness {
	t.Helper()
	w := ecs.NewWorld()
	reg := world.NewRegistry()
	ws := world.NewState(w, reg)
	bus := event.NewBus()
	log := zap.NewNop()

	beh := NewBehavior(reg, bus, DefaultRoles(), lua, rand.New(rand.NewSource(7)), DefaultTuning(), log)
	cmds := NewCommandQueue()

	r := coresys.NewRunner()
	r.Register(NewCleanupSystem(w, reg))
	r.Register(NewOrderTargetSystem(ws))
	r.Register(NewWorldSystem(ws, beh, bus, log))
	r.Register(NewEventSystem(bus))
	r.Register(NewCommandSystem(cmds, ws, log))

	return &harness{
		world:  w,
		reg:    reg,
		ws:     ws,
		bus:    bus,
		beh:    beh,
		cmds:   cmds,
		runner: r,
	}
}

// spawnUnit places a 10x10 unit centered on center with speed 150, range
// 125 and 60 effect per second.
func (h *harness) spawnUnit(owner component.Owner, role string, center geom.Vec2) (*world.Entity, *component.Unit) {
	e := h.ws.Spawn(component.KindUnit, owner, 100, center.Sub(geom.V(5, 5)), geom.V(10, 10))
	u := &component.Unit{
		Template: role,
		Role:     role,
		Speed:    150,
		Rate:     60,
		Range:    125,
		Mass:     1,
	}
	h.ws.Units.Set(e.ID, u)
	return e, u
}

func (h *harness) spawnPatch(center geom.Vec2, maxHP int32, density int, richness float64) (*world.Entity, *component.OrePatch) {
	e := h.ws.Spawn(component.KindOrePatch, component.Nature, maxHP, center.Sub(geom.V(25, 25)), geom.V(50, 50))
	p := &component.OrePatch{OreType: component.OreBlue, Density: density, Richness: richness}
	h.ws.Patches.Set(e.ID, p)
	return e, p
}

func (h *harness) spawnOre(center geom.Vec2, value float64) *world.Entity {
	side := value * 100
	e := h.ws.Spawn(component.KindOre, component.Nature, int32(side), center.Sub(geom.V(side/2, side/2)), geom.V(side, side))
	h.ws.Ores.Set(e.ID, &component.Ore{OreType: component.OreBlue, Value: value})
	return e
}

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.runner.Tick(tick)
	}
}

func (h *harness) hp(t *testing.T, id ecs.EntityID) float64 {
	t.Helper()
	hp, ok := h.reg.HP(id)
	if !ok {
		t.Fatalf("entity %d is not live", id)
	}
	return hp
}
