package ecs

// World owns the id generator, the set of component tables and a deferred
// destruction queue flushed by CleanupSystem at the end of each tick.
type World struct {
	ids          *IDGen
	stores       *Stores
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		ids:          NewIDGen(),
		stores:       NewStores(),
		destroyQueue: make([]EntityID, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
	}
}

func (w *World) IDs() *IDGen     { return w.ids }
func (w *World) Stores() *Stores { return w.stores }

func (w *World) CreateEntity() EntityID {
	return w.ids.Next()
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
// Marking the same id twice before a flush is a no-op and returns false.
func (w *World) MarkForDestruction(id EntityID) bool {
	if _, ok := w.queued[id]; ok {
		return false
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
	return true
}

// Pending returns the number of entities waiting for the next flush.
func (w *World) Pending() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue drops every queued entity from every table, in the order
// they were queued.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.stores.Drop(id)
		delete(w.queued, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
