package system

import (
	"time"

	"github.com/micron/skirmish/internal/core/event"
	coresys "github.com/micron/skirmish/internal/core/system"
)

// EventSystem makes last tick's events readable and runs their handlers.
// Phase 1 (PreUpdate).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
