package system

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/order"
	"github.com/micron/skirmish/internal/scripting"
	"go.uber.org/zap"
)

func TestTargetOrder(t *testing.T) {
	h := newHarness(t)
	fighter, _ := h.spawnUnit(component.Player, "combat", geom.V(0, 0))
	ally, _ := h.spawnUnit(component.Player, "combat", geom.V(50, 0))
	enemy, _ := h.spawnUnit(component.Cpu, "combat", geom.V(100, 0))
	patch, _ := h.spawnPatch(geom.V(0, 200), 1000, 5, 0.5)
	ore := h.spawnOre(geom.V(200, 200), 0.5)

	roles := DefaultRoles()
	tests := []struct {
		name   string
		role   string
		target ecs.EntityID
		want   order.Kind
		ok     bool
	}{
		{"self", "combat", fighter.ID, 0, false},
		{"dead", "combat", ecs.EntityID(9999), 0, false},
		{"ally", "combat", ally.ID, order.Follow, true},
		{"enemy", "combat", enemy.ID, order.Attack, true},
		{"combat on patch", "combat", patch.ID, order.Move, true},
		{"miner on patch", "miner", patch.ID, order.Mine, true},
		{"gatherer on ore", "gatherer", ore.ID, order.Collect, true},
		{"gatherer on enemy", "gatherer", enemy.ID, order.Move, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := TargetOrder(fighter, roles.Lookup(tt.role), h.reg, tt.target)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if o.Kind != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, o.Kind)
			}
			if want, _ := h.reg.Position(tt.target); o.MoveTarget != want {
				t.Errorf("Expected move target %v, got %v", want, o.MoveTarget)
			}
			if o.Kind == order.Move && !o.Target.None() {
				t.Error("Expected a positional move")
			}
		})
	}
}

func TestAttackOrderRejects(t *testing.T) {
	h := newHarness(t)
	a, _ := h.spawnUnit(component.Player, "combat", geom.V(0, 0))
	ally, _ := h.spawnUnit(component.Player, "combat", geom.V(50, 0))
	enemy, _ := h.spawnUnit(component.Cpu, "combat", geom.V(100, 0))

	if _, ok := AttackOrder(a, h.reg, a.ID); ok {
		t.Error("Expected self attack rejected")
	}
	if _, ok := AttackOrder(a, h.reg, ally.ID); ok {
		t.Error("Expected same-owner attack rejected")
	}
	o, ok := AttackOrder(a, h.reg, enemy.ID)
	if !ok || o.Target.ID != enemy.ID || o.Target.Rect == nil {
		t.Error("Expected attack on enemy with a target snapshot")
	}
}

func TestIssueOrderState(t *testing.T) {
	tests := []struct {
		name    string
		from    component.State
		order   *order.Order
		replace bool
		queued  int
		want    component.State
	}{
		{"move from alert", component.Alert, MoveOrder(geom.V(10, 0)), true, 0, component.Busy},
		{"move from hold", component.Hold, MoveOrder(geom.V(10, 0)), true, 0, component.Busy},
		{"action move from stop", component.Stop, ActionMoveOrder(geom.V(10, 0)), true, 0, component.Alert},
		{"hold keeps state until executed", component.Busy, order.New(order.HoldPosition, geom.Vec2{}, order.NoTarget), true, 2, component.Busy},
		{"queued behind others", component.Busy, MoveOrder(geom.V(10, 0)), false, 2, component.Busy},
		{"queued on empty stop", component.Stop, MoveOrder(geom.V(10, 0)), false, 0, component.Busy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			e, u := h.spawnUnit(component.Player, "combat", geom.V(0, 0))
			for i := 0; i < tt.queued; i++ {
				e.Orders = append(e.Orders, MoveOrder(geom.V(0, float64(i+1)*50)))
			}
			e.State = tt.from
			u.Interacting = true

			IssueOrder(e, u, tt.order, tt.replace)

			wantLen := 1
			if !tt.replace {
				wantLen = tt.queued + 1
			}
			if len(e.Orders) != wantLen {
				t.Fatalf("Expected %d orders, got %d", wantLen, len(e.Orders))
			}
			if e.Orders[len(e.Orders)-1] != tt.order {
				t.Error("Expected issued order at the back")
			}
			if e.State != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, e.State)
			}
			if tt.replace && u.Interacting {
				t.Error("Expected replace to end the interaction")
			}
		})
	}
}

func TestStop(t *testing.T) {
	h := newHarness(t)
	e, u := h.spawnUnit(component.Player, "combat", geom.V(0, 0))
	IssueOrder(e, u, MoveOrder(geom.V(0, 300)), true)
	h.step(3)

	Stop(e, u)
	if len(e.Orders) != 0 || e.State != component.Stop || !still(u) {
		t.Fatalf("Expected stopped unit, got %d orders in %v", len(e.Orders), e.State)
	}
	at := e.Position
	h.step(5)
	if e.Position != at {
		t.Errorf("Expected unit to stay at %v, got %v", at, e.Position)
	}
}

func TestCommandSystem(t *testing.T) {
	h := newHarness(t)
	a, _ := h.spawnUnit(component.Player, "combat", geom.V(0, 0))
	b, _ := h.spawnUnit(component.Player, "combat", geom.V(50, 50))
	dead, _ := h.spawnUnit(component.Player, "combat", geom.V(-50, -50))
	h.reg.ApplyDamage(dead.ID, 1000)

	mv := MoveOrder(geom.V(0, 100))
	h.cmds.Push(Command{Kind: CmdIssue, Entity: a.ID, Order: mv, Replace: true})
	h.cmds.Push(Command{Kind: CmdStop, Entity: b.ID})
	h.cmds.Push(Command{Kind: CmdIssue, Entity: dead.ID, Order: MoveOrder(geom.V(0, 0)), Replace: true})
	h.cmds.Push(Command{Kind: CmdIssue, Entity: ecs.EntityID(4242), Order: MoveOrder(geom.V(0, 0))})
	h.cmds.Push(Command{Kind: CmdIssue, Entity: a.ID})
	h.step(1)

	if a.Front() != mv || !mv.Executed {
		t.Error("Expected move order applied and executed in the same tick")
	}
	if b.State != component.Stop {
		t.Errorf("Expected b stopped, got %v", b.State)
	}
	if len(dead.Orders) != 0 {
		t.Error("Expected command for a dead entity dropped")
	}
	if got := h.cmds.Drain(); len(got) != 0 {
		t.Errorf("Expected queue drained, %d left", len(got))
	}
}

func TestScriptedInteractionRate(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "combat")
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	src := `
function calc_interaction(ctx)
  if ctx.order == "Mine" then
    return ctx.base_rate * 2
  end
  return ctx.base_rate
end
`
	if err := os.WriteFile(filepath.Join(p, "interaction.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	lua, err := scripting.NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer lua.Close()

	h := newHarnessWith(t, lua)
	m, um := h.spawnUnit(component.Player, "miner", geom.V(0, 0))
	um.Rate = 60
	patch, _ := h.spawnPatch(geom.V(75, 0), 1000, 100, 0.5)
	o, _ := TargetOrder(m, minerRole{}, h.reg, patch.ID)
	IssueOrder(m, um, o, true)

	h.step(2)
	want := 1000 - 120*tick.Seconds()
	if hp := h.hp(t, patch.ID); math.Abs(hp-want) > eps {
		t.Errorf("Expected patch hp %v with doubled rate, got %v", want, hp)
	}
}
