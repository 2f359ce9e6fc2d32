// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt

import "code.hybscloud.com/irqrt/queue"

// eventSetSlot is the payload carried by each of an EventSet's underlying
// Event nodes: the slot's own index (so the consumer callback knows which
// index to release) alongside the caller's value.
type eventSetSlot[T any] struct {
	index int
	value T
}

// EventSet multiplexes up to capacity concurrently-pending payloads of type
// T across N reusable Event nodes, recycled through a free list. Unlike a
// single Event, EventSet never silently coalesces: each Post either claims
// a distinct slot or fails with ErrEventSetFull.
type EventSet[T any] struct {
	slots    []*Event[eventSetSlot[T]]
	free     *queue.SPSCIndirect
	callback func(T)
}

// NewEventSet constructs an EventSet of the given capacity bound to rt,
// invoking cb with each slot's payload as it is consumed.
func NewEventSet[T any](rt *Runtime, capacity int, cb func(T)) *EventSet[T] {
	es := &EventSet[T]{
		slots:    make([]*Event[eventSetSlot[T]], capacity),
		free:     queue.NewSPSCIndirect(capacity),
		callback: cb,
	}
	for i := range es.slots {
		i := i
		es.slots[i] = NewEvent(rt, es.runSlot)
		es.free.Enqueue(uintptr(i))
	}
	return es
}

// Post stages v into a free slot and links it into the runtime. It follows
// the three-step protocol: pop a slot, set its data, post it.
//
// If the free list is empty, Post returns ErrEventSetFull without touching
// any slot. If the payload lock on the popped slot is contended, Post
// returns ErrEventLockFailed — and, matching the documented behavior this
// module reproduces rather than silently fixes (see DESIGN.md), the popped
// slot is not returned to the free list on this path: it is intentionally
// leaked for this attempt, surfacing lock contention as a shrinking
// capacity rather than masking it.
func (es *EventSet[T]) Post(v T) error {
	idx, err := es.free.Dequeue()
	if err != nil {
		return ErrEventSetFull
	}
	slot := es.slots[idx]
	if err := slot.TrySetData(eventSetSlot[T]{index: int(idx), value: v}); err != nil {
		return ErrEventLockFailed
	}
	slot.Post()
	return nil
}

// runSlot is the callback every underlying Event invokes: it returns the
// slot to the free list, then hands the caller's value to the EventSet's
// own callback.
func (es *EventSet[T]) runSlot(s eventSetSlot[T]) {
	es.free.Enqueue(uintptr(s.index))
	es.callback(s.value)
}
