package system

import "time"

// Runner steps registered systems once per tick, phase by phase. Systems
// sharing a phase run in registration order.
type Runner struct {
	phases [phaseCount][]System
	ticks  uint64
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to its phase. Phases outside the known range panic.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic("system: unknown phase " + p.String())
	}
	r.phases[p] = append(r.phases[p], s)
}

// Tick runs every phase in order and counts one full tick.
func (r *Runner) Tick(dt time.Duration) {
	for p := range r.phases {
		r.run(Phase(p), dt)
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase. It does not advance the
// tick counter.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase >= 0 && phase < phaseCount {
		r.run(phase, dt)
	}
}

func (r *Runner) run(p Phase, dt time.Duration) {
	for _, s := range r.phases[p] {
		s.Update(dt)
	}
}

// Ticks returns the number of completed full ticks.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for _, ss := range r.phases {
		n += len(ss)
	}
	return n
}
