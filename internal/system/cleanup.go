package system

import (
	"time"

	"github.com/micron/skirmish/internal/core/ecs"
	coresys "github.com/micron/skirmish/internal/core/system"
	"github.com/micron/skirmish/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end,
// dropping evicted entities from the live list and every component table,
// then compacts the registry scan order. Phase 4 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	reg   *world.Registry
}

func NewCleanupSystem(w *ecs.World, reg *world.Registry) *CleanupSystem {
	return &CleanupSystem{world: w, reg: reg}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
	s.reg.Compact()
}
