// Package sim assembles the world, the behavior engine and the tick systems
// into a fixed-timestep simulation.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/config"
	"github.com/micron/skirmish/internal/core/ecs"
	"github.com/micron/skirmish/internal/core/event"
	coresys "github.com/micron/skirmish/internal/core/system"
	"github.com/micron/skirmish/internal/data"
	"github.com/micron/skirmish/internal/geom"
	"github.com/micron/skirmish/internal/order"
	"github.com/micron/skirmish/internal/scripting"
	"github.com/micron/skirmish/internal/system"
	"github.com/micron/skirmish/internal/world"
	"go.uber.org/zap"
)

// Options are the simulation parameters taken from [sim] and [tuning].
type Options struct {
	TickHz int
	Seed   int64
	Tuning system.Tuning
}

// OptionsFrom maps a loaded config. A zero seed is replaced by the clock.
func OptionsFrom(cfg *config.Config) Options {
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Options{
		TickHz: cfg.Sim.TickHz,
		Seed:   seed,
		Tuning: system.Tuning{
			ArrivalThreshold:   cfg.Tuning.ArrivalThreshold,
			InteractionPenalty: cfg.Tuning.InteractionPenalty,
			HoverDistance:      cfg.Tuning.HoverDistance,
			OreScatter:         cfg.Tuning.OreScatter,
		},
	}
}

// Sim owns one world and steps it. Not safe for concurrent use except for
// Commands, which may be fed from another goroutine.
type Sim struct {
	ECS      *ecs.World
	State    *world.State
	Registry *world.Registry
	Bus      *event.Bus
	Commands *system.CommandQueue

	runner *coresys.Runner
	roles  system.Roles
	units  *data.UnitTable
	rng    *rand.Rand
	dt     time.Duration
	log    *zap.Logger

	counters Counters
}

// New wires the systems in tick order. units may be nil when only SpawnPatch
// and SpawnStructure are used; lua may be nil to use template rates as-is.
func New(opts Options, units *data.UnitTable, lua *scripting.Engine, log *zap.Logger) *Sim {
	hz := opts.TickHz
	if hz <= 0 {
		hz = 60
	}

	w := ecs.NewWorld()
	reg := world.NewRegistry()
	ws := world.NewState(w, reg)
	bus := event.NewBus()
	rng := rand.New(rand.NewSource(opts.Seed))
	roles := system.DefaultRoles()

	behavior := system.NewBehavior(reg, bus, roles, lua, rng, opts.Tuning, log)
	cmds := system.NewCommandQueue()

	runner := coresys.NewRunner()
	runner.Register(system.NewCommandSystem(cmds, ws, log))
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewWorldSystem(ws, behavior, bus, log))
	runner.Register(system.NewOrderTargetSystem(ws))
	runner.Register(system.NewCleanupSystem(w, reg))

	s := &Sim{
		ECS:      w,
		State:    ws,
		Registry: reg,
		Bus:      bus,
		Commands: cmds,
		runner:   runner,
		roles:    roles,
		units:    units,
		rng:      rng,
		dt:       time.Second / time.Duration(hz),
		log:      log,
	}
	s.subscribe()
	return s
}

// TickDuration is the fixed game time advanced by one Step.
func (s *Sim) TickDuration() time.Duration { return s.dt }

// Ticks returns the number of completed steps.
func (s *Sim) Ticks() uint64 { return s.runner.Ticks() }

// Step advances the world by one fixed tick.
func (s *Sim) Step() {
	s.runner.Tick(s.dt)
}

// ==================== Spawning ====================

// SpawnUnit creates a unit from a named template centered on center.
func (s *Sim) SpawnUnit(name string, owner component.Owner, center geom.Vec2) (*world.Entity, error) {
	if s.units == nil {
		return nil, fmt.Errorf("spawn %s: no unit table loaded", name)
	}
	tpl := s.units.Get(name)
	if tpl == nil {
		return nil, fmt.Errorf("spawn %s: unknown unit template", name)
	}
	size := geom.V(tpl.Width, tpl.Height)
	e := s.State.Spawn(component.KindUnit, owner, tpl.MaxHP, geom.V(center.X-size.X/2, center.Y-size.Y/2), size)
	s.State.Units.Set(e.ID, &component.Unit{
		Template: tpl.Name,
		Role:     tpl.Role,
		Speed:    tpl.Speed,
		Rate:     tpl.Rate,
		Range:    tpl.Range,
		Mass:     tpl.Mass,
		Capacity: tpl.Capacity,
	})
	return e, nil
}

// SpawnPatch creates a Nature-owned ore patch centered on (X, Y).
func (s *Sim) SpawnPatch(p data.PatchSpawn) *world.Entity {
	size := geom.V(p.Size, p.Size)
	e := s.State.Spawn(component.KindOrePatch, component.Nature, p.MaxHP, geom.V(p.X-p.Size/2, p.Y-p.Size/2), size)
	oreType := component.OreType(p.OreType)
	if oreType == "" {
		oreType = component.OreBlue
	}
	s.State.Patches.Set(e.ID, &component.OrePatch{
		OreType:  oreType,
		Density:  p.Density,
		Richness: p.Richness,
	})
	return e
}

// SpawnStructure creates a passive structure with its top-left at (X, Y).
func (s *Sim) SpawnStructure(st data.StructureSpawn) (*world.Entity, error) {
	owner, ok := component.ParseOwner(st.Owner)
	if !ok {
		return nil, fmt.Errorf("spawn structure: unknown owner %q", st.Owner)
	}
	return s.State.Spawn(component.KindStructure, owner, st.MaxHP, geom.V(st.X, st.Y), geom.V(st.Width, st.Height)), nil
}

// Load spawns a scenario's population in file order: units, patches, then
// structures. Units of one entry are scattered Spread around their point.
func (s *Sim) Load(sc *data.Scenario) error {
	for i, us := range sc.Units {
		owner, ok := component.ParseOwner(us.Owner)
		if !ok {
			return fmt.Errorf("units[%d]: unknown owner %q", i, us.Owner)
		}
		for n := 0; n < us.Count; n++ {
			at := geom.V(us.X+s.jitter(us.Spread), us.Y+s.jitter(us.Spread))
			if _, err := s.SpawnUnit(us.Unit, owner, at); err != nil {
				return fmt.Errorf("units[%d]: %w", i, err)
			}
		}
	}
	for _, p := range sc.Patches {
		s.SpawnPatch(p)
	}
	for i, st := range sc.Structures {
		if _, err := s.SpawnStructure(st); err != nil {
			return fmt.Errorf("structures[%d]: %w", i, err)
		}
	}
	s.log.Info("scenario loaded",
		zap.String("name", sc.Name),
		zap.Int("entities", s.State.Len()),
	)
	return nil
}

func (s *Sim) jitter(spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return (s.rng.Float64()*2 - 1) * spread
}

// ==================== Commands ====================

// Issue queues o for id, applied at the start of the next Step.
func (s *Sim) Issue(id ecs.EntityID, o *order.Order, replace bool) {
	s.Commands.Push(system.Command{Kind: system.CmdIssue, Entity: id, Order: o, Replace: replace})
}

// Stop queues a stop command for id.
func (s *Sim) Stop(id ecs.EntityID) {
	s.Commands.Push(system.Command{Kind: system.CmdStop, Entity: id})
}

// Hold queues a hold-position command for id.
func (s *Sim) Hold(id ecs.EntityID) {
	s.Commands.Push(system.Command{Kind: system.CmdHold, Entity: id})
}

// Target builds the plain-click order of issuer on target, as resolved by
// the issuer's role.
func (s *Sim) Target(issuer, target ecs.EntityID) (*order.Order, bool) {
	e, ok := s.State.Get(issuer)
	if !ok {
		return nil, false
	}
	u, ok := s.State.Units.Get(issuer)
	if !ok {
		return nil, false
	}
	return system.TargetOrder(e, s.roles.Lookup(u.Role), s.Registry, target)
}
