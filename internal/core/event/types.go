package event

import "github.com/micron/skirmish/internal/core/ecs"

// EntityDestroyed is emitted when the orchestrator evicts an entity whose
// registry row has vanished.
type EntityDestroyed struct {
	ID    ecs.EntityID
	Kind  string
	Owner string
}

// OreDropped is emitted when an ore patch sheds a loose ore entity.
type OreDropped struct {
	PatchID ecs.EntityID
	OreID   ecs.EntityID
}

// OrderCompleted is emitted when a unit retires its front order.
type OrderCompleted struct {
	EntityID ecs.EntityID
	Kind     string
}

// TargetAcquired is emitted when auto-engagement picks a target.
type TargetAcquired struct {
	EntityID ecs.EntityID
	TargetID ecs.EntityID
	Order    string
}
