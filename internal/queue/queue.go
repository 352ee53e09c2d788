// Package queue implements the bounded multi-producer/single-consumer
// transport that moves MIDI events from driver callbacks to the audio
// goroutine. Pushes never block; the consumer polls without blocking or
// allocating.
package queue

import (
	"github.com/leandrodaf/audioshell/sdk/contracts"
)

// Queue is a bounded MPSC event queue. Events pushed from a single
// producer are delivered in push order; across producers only queue
// insertion order is guaranteed.
type Queue struct {
	events chan contracts.MidiEvent
	policy contracts.OverflowPolicy
}

// New returns a queue holding at most capacity events. capacity must be
// at least one.
func New(capacity int, policy contracts.OverflowPolicy) *Queue {
	return &Queue{
		events: make(chan contracts.MidiEvent, capacity),
		policy: policy,
	}
}

// Push offers an event to the queue without blocking. When the queue is
// full, the configured overflow policy applies: DropNewest discards the
// incoming event, DropOldest evicts the head and retries once. Push
// reports whether the event was enqueued.
func (q *Queue) Push(event contracts.MidiEvent) bool {
	select {
	case q.events <- event:
		return true
	default:
	}

	if q.policy == contracts.DropNewest {
		return false
	}

	// DropOldest: evict one event to make room. A concurrent producer may
	// claim the freed slot first, in which case the incoming event is
	// dropped after a single retry.
	select {
	case <-q.events:
	default:
	}
	select {
	case q.events <- event:
		return true
	default:
		return false
	}
}

// TryPop removes and returns the oldest queued event. It never blocks;
// ok is false when the queue is empty. Only the audio goroutine may call
// TryPop.
func (q *Queue) TryPop() (event contracts.MidiEvent, ok bool) {
	select {
	case event = <-q.events:
		return event, true
	default:
		return contracts.MidiEvent{}, false
	}
}

// Len returns the number of currently queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Cap returns the queue bound.
func (q *Queue) Cap() int {
	return cap(q.events)
}
