// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Event is a reusable event node carrying at most one pending payload of
// type D. A publisher (the "ISR" role) calls TrySetData then Post; the
// runtime's foreground drain invokes the installed callback with the taken
// payload, exactly once per successful post, then the node is eligible for
// reuse.
//
// An Event must not be copied after first use: its address is what gets
// linked into the owning Runtime's LIFO.
type Event[D any] struct {
	rt *Runtime

	posted      atomix.Bool
	payloadLock atomix.Bool
	payload     D

	callback func(D)

	self runtimeNode
}

// NewEvent constructs an Event bound to rt, invoking cb with each taken
// payload as the foreground drain runs it.
func NewEvent[D any](rt *Runtime, cb func(D)) *Event[D] {
	e := &Event[D]{rt: rt, callback: cb}
	e.self.run = e.runCallback
	return e
}

// TrySetData attempts to store v as the pending payload, guarded by the
// payload lock. It fails (event-lock-failed) if the lock is already held —
// by a concurrent TrySetData, or because the consumer is mid-take — and the
// caller is expected to retry.
func (e *Event[D]) TrySetData(v D) error {
	if !e.payloadLock.CompareAndSwapAcqRel(false, true) {
		return ErrEventLockFailed
	}
	e.payload = v
	e.payloadLock.StoreRelease(false)
	return nil
}

// Post links the node into the runtime LIFO if it is not already posted.
// A second Post while a previous post is still unconsumed is a silent
// no-op: posts coalesce onto the single pending node.
func (e *Event[D]) Post() {
	if !e.posted.CompareAndSwapAcqRel(false, true) {
		return
	}
	e.rt.post(&e.self)
}

// runCallback clears the posted flag before taking the payload and invoking
// the user callback, so the callback is free to re-post the same node. The
// payload is taken under the payload lock, spinning while a concurrent
// TrySetData holds it.
func (e *Event[D]) runCallback() {
	e.posted.StoreRelease(false)
	sw := spin.Wait{}
	for !e.payloadLock.CompareAndSwapAcqRel(false, true) {
		sw.Once()
	}
	v := e.payload
	e.payloadLock.StoreRelease(false)
	e.callback(v)
}

// VoidEvent is an Event without a payload: posting it carries only the
// signal that the callback should run.
type VoidEvent struct {
	rt     *Runtime
	posted atomix.Bool
	cb     func()
	self   runtimeNode
}

// NewVoidEvent constructs a VoidEvent bound to rt, invoking cb on drain.
func NewVoidEvent(rt *Runtime, cb func()) *VoidEvent {
	e := &VoidEvent{rt: rt, cb: cb}
	e.self.run = e.runCallback
	return e
}

// Post links the node into the runtime LIFO if it is not already posted.
func (e *VoidEvent) Post() {
	if !e.posted.CompareAndSwapAcqRel(false, true) {
		return
	}
	e.rt.post(&e.self)
}

func (e *VoidEvent) runCallback() {
	e.posted.StoreRelease(false)
	e.cb()
}
