package event

import "reflect"

// Bus is a double-buffered event bus. Events emitted during tick N are
// delivered by DispatchAll in tick N+1, after SwapBuffers. Each event type
// has its own topic; topics dispatch in the order they were first used, and
// events within a topic in emission order.
//
// Accessed only from the simulation goroutine, no locks.
type Bus struct {
	topics map[reflect.Type]topicQueue
	order  []topicQueue
}

type topicQueue interface {
	swap()
	dispatch()
	pending() int
}

type topic[T any] struct {
	front    []T
	back     []T
	handlers []func(T)
}

func (t *topic[T]) swap() {
	t.front, t.back = t.back, t.front[:0]
}

func (t *topic[T]) dispatch() {
	for _, ev := range t.front {
		for _, h := range t.handlers {
			h(ev)
		}
	}
}

func (t *topic[T]) pending() int { return len(t.back) }

func NewBus() *Bus {
	return &Bus{topics: make(map[reflect.Type]topicQueue)}
}

func topicOf[T any](b *Bus) *topic[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if q, ok := b.topics[key]; ok {
		return q.(*topic[T])
	}
	t := &topic[T]{}
	b.topics[key] = t
	b.order = append(b.order, t)
	return t
}

// Emit queues ev for delivery next tick.
func Emit[T any](b *Bus, ev T) {
	t := topicOf[T](b)
	t.back = append(t.back, ev)
}

// Subscribe registers fn for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := topicOf[T](b)
	t.handlers = append(t.handlers, fn)
}

// SwapBuffers makes last tick's events deliverable and starts a new back
// buffer. Undelivered front events are dropped.
func (b *Bus) SwapBuffers() {
	for _, t := range b.order {
		t.swap()
	}
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int {
	n := 0
	for _, t := range b.order {
		n += t.pending()
	}
	return n
}

// DispatchAll delivers the front buffer to subscribers.
func (b *Bus) DispatchAll() {
	for _, t := range b.order {
		t.dispatch()
	}
}
