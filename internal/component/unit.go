package component

import "github.com/micron/skirmish/internal/geom"

// Unit stores the mobile, role-bearing part of a unit entity.
// Pure data. Mutations happen in the system package.
type Unit struct {
	Template string // unit template name from unit_list.yaml
	Role     string // "combat", "miner", "gatherer"

	Speed float64 // world units per second
	Rate  float64 // effect per second while interacting (damage, mining, collecting)
	Range float64 // engagement range, center to center
	Mass  float64 // steering inertia, >= 1

	Velocity geom.Vec2
	Desired  geom.Vec2

	// Interaction sub-state (attacking, mining, collecting).
	Interacting bool
	Anchor      geom.Vec2 // stable effect point on the target rect, for rendering

	Cargo    float64 // collected resources
	Capacity float64 // cargo limit, 0 = cannot carry
}
