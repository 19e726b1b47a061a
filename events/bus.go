package events

// Handler consumes a delivered event.
type Handler func(e Event)

// Bus buffers events emitted during a tick and delivers them to subscribers
// when the tick is flushed. Subscribers see events in emission order and only
// after the simulation has finished mutating state for that tick.
type Bus struct {
	pending  []Event
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{pending: make([]Event, 0, 64)}
}

// Emit queues an event for the next Flush.
func (b *Bus) Emit(e Event) {
	b.pending = append(b.pending, e)
}

// Subscribe registers a handler for all future flushes.
func (b *Bus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.pending)
}

// Flush delivers queued events to every handler and clears the queue.
// Events emitted by handlers during delivery are queued for the next flush.
func (b *Bus) Flush() {
	if len(b.pending) == 0 {
		return
	}
	batch := b.pending
	b.pending = make([]Event, 0, cap(batch))
	for _, e := range batch {
		for _, h := range b.handlers {
			h(e)
		}
	}
}
