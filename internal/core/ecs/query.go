package ecs

// Each2 visits the ids present in both stores, in ascending id order. It
// walks the smaller store and probes the other.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for _, id := range sa.IDs() {
			if b, ok := sb.rows[id]; ok {
				fn(id, sa.rows[id], b)
			}
		}
		return
	}
	for _, id := range sb.IDs() {
		if a, ok := sa.rows[id]; ok {
			fn(id, a, sb.rows[id])
		}
	}
}
