package event

import (
	"github.com/lixenwraith/arsenal/engine"
)

// Handler consumes one dispatched event
type Handler func(ev GameEvent)

type handlerEntry struct {
	handler Handler
	dead    bool
}

// Bus is a synchronous observer registry with an optional deferred queue
// Publish dispatches immediately on the caller's goroutine
// Post defers to the next Flush, which the game loop calls once per frame
type Bus struct {
	handlers map[EventType][]*handlerEntry
	queue    *EventQueue
	frame    int64
	scratch  []GameEvent
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]*handlerEntry),
		queue:    NewEventQueue(),
	}
}

// SetFrame stamps subsequently published events
func (b *Bus) SetFrame(frame int64) {
	b.frame = frame
}

// Subscribe registers h for et; disposing the subscription unregisters it
// Handlers added during a dispatch do not see the event in flight
func (b *Bus) Subscribe(et EventType, h Handler) engine.Subscription {
	if h == nil {
		return engine.NopSubscription
	}
	e := &handlerEntry{handler: h}
	b.handlers[et] = append(b.handlers[et], e)
	return engine.NewSubscription(func() { b.remove(et, e) })
}

// Publish dispatches an event to current subscribers immediately
func (b *Bus) Publish(et EventType, payload any) {
	b.Emit(GameEvent{Type: et, Payload: payload, Frame: b.frame})
}

// Emit dispatches a prepared event immediately
func (b *Bus) Emit(ev GameEvent) {
	list := b.handlers[ev.Type]
	if len(list) == 0 {
		return
	}
	for _, e := range list {
		if e.dead {
			continue
		}
		e.handler(ev)
	}
}

// Post queues an event for the next Flush; safe from any goroutine
func (b *Bus) Post(et EventType, payload any) {
	b.queue.Push(GameEvent{Type: et, Payload: payload, Frame: b.frame})
}

// Flush dispatches queued events in order and returns how many were delivered
// Events posted by handlers during Flush wait for the next Flush
func (b *Bus) Flush() int {
	b.scratch = b.queue.Drain(b.scratch[:0])
	for _, ev := range b.scratch {
		b.Emit(ev)
	}
	n := len(b.scratch)
	clear(b.scratch)
	return n
}

// Count returns live handler count for et
func (b *Bus) Count(et EventType) int {
	n := 0
	for _, e := range b.handlers[et] {
		if !e.dead {
			n++
		}
	}
	return n
}

func (b *Bus) remove(et EventType, target *handlerEntry) {
	target.dead = true
	list := b.handlers[et]
	// Copy so an in-flight Emit keeps iterating its own snapshot
	out := make([]*handlerEntry, 0, len(list))
	for _, e := range list {
		if e != target {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		delete(b.handlers, et)
		return
	}
	b.handlers[et] = out
}
