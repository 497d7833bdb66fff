package event

import (
	"sync/atomic"

	"github.com/lixenwraith/arsenal/parameter"
)

// EventQueue is a lock-free MPSC ring buffer for deferred events
// Push is safe from any goroutine (input thread, audio callbacks)
// Drain runs on the game loop only; published flags hide partial writes
// Overflow: oldest events are overwritten and counted in Dropped
type EventQueue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
	dropped   atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			eq.events[idx] = ev
			eq.published[idx].Store(true) // Must follow the write

			currentHead := eq.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				if eq.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize) {
					eq.dropped.Add(nextTail - parameter.EventQueueSize - currentHead)
				}
			}
			return
		}
	}
}

// Drain appends pending events to dst in FIFO order and advances head
// Stops early at a slot whose writer has not finished
func (eq *EventQueue) Drain(dst []GameEvent) []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return dst
		}

		available := currentTail - currentHead
		if available > parameter.EventQueueSize {
			available = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		start := len(dst)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask
			if !eq.published[idx].Load() {
				break
			}
			dst = append(dst, eq.events[idx])
		}
		taken := uint64(len(dst) - start)

		if eq.head.CompareAndSwap(currentHead, currentHead+taken) {
			for i := uint64(0); i < taken; i++ {
				idx := (currentHead + i) & parameter.EventBufferMask
				eq.published[idx].Store(false)
				eq.events[idx] = GameEvent{}
			}
			return dst
		}
		dst = dst[:start]
	}
}

// Len returns approximate pending event count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EventQueueSize {
		return parameter.EventQueueSize
	}
	return diff
}

// Dropped returns how many events were overwritten before being drained
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
