package system

import (
	"strconv"
	"time"
)

// Phase orders systems within a tick.
type Phase int

const (
	PhaseInput      Phase = iota // apply queued player commands
	PhasePreUpdate               // deliver last tick's events
	PhaseUpdate                  // world pass: behavior, ore, eviction
	PhasePostUpdate              // refresh order targets from the registry
	PhaseCleanup                 // flush destroyed entities

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

// System is stepped by a Runner once per tick in its phase.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
