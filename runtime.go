// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// runtimeNode is the intrusive stack link shared by every event node posted
// into a Runtime. next holds the encoded successor, valid only while the
// node is linked into the LIFO; it is written solely by whichever goroutine
// currently owns the CAS retry in Post, never by a second writer
// concurrently, because the posted flag in Event.Post and VoidEvent.Post
// lets only one post of a node through until it is drained.
//
// A node's lifetime is owned by whatever embeds it (Event, VoidEvent, an
// EventSet slot): the Runtime only ever holds an encoded uintptr to it, so
// the embedding value must stay reachable through a normal Go reference for
// as long as the node might be linked into the LIFO.
type runtimeNode struct {
	next uintptr
	run  func()
}

// Runtime holds a LIFO of posted event nodes and drains them in FIFO order
// on demand. It implements the producer/consumer protocol from §4.3: any
// number of goroutines may call post concurrently (the "ISR" role); exactly
// one goroutine at a time should call RunAvailable (the "foreground" role).
type Runtime struct {
	head atomix.Uintptr
}

// NewRuntime constructs an empty Runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// post links n onto the head of the LIFO with a strong CAS retry loop. It
// cannot fail: a node already on-list is never passed here twice, since
// callers (Event.Post, VoidEvent.Post) gate entry with their own posted flag.
func (rt *Runtime) post(n *runtimeNode) {
	np := uintptr(unsafe.Pointer(n))
	sw := spin.Wait{}
	for {
		old := rt.head.LoadAcquire()
		n.next = old
		if rt.head.CompareAndSwapAcqRel(old, np) {
			return
		}
		sw.Once()
	}
}

// exchangeHeadToNil atomically swaps head for 0 and returns the prior value.
// atomix exposes compare-and-swap primitives but no bare atomic exchange, so
// the exchange is built the same way every FAA-based queue in package queue
// builds its own retry-until-success operations: loop a CAS against the
// observed value until one succeeds.
func (rt *Runtime) exchangeHeadToNil() uintptr {
	sw := spin.Wait{}
	for {
		old := rt.head.LoadAcquire()
		if old == 0 {
			return 0
		}
		if rt.head.CompareAndSwapAcqRel(old, 0) {
			return old
		}
		sw.Once()
	}
}

// RunAvailable drains every node posted strictly before this call, in FIFO
// order, invoking each node's callback exactly once. Nodes posted while
// RunAvailable is running are left for the next call. RunAvailable must only
// be called from the single foreground context; concurrent calls race on
// which goroutine's drain observes which nodes, which is unsupported.
func (rt *Runtime) RunAvailable() {
	h := rt.exchangeHeadToNil()
	if h == 0 {
		return
	}
	h = reverseList(h)
	for h != 0 {
		cur := (*runtimeNode)(unsafe.Pointer(h))
		h = cur.next
		cur.next = 0
		cur.run()
	}
}

// reverseList reverses the singly-linked chain rooted at head (encoded as a
// uintptr) and returns the new root, turning publication order (most recent
// post first) into FIFO order (oldest post first).
func reverseList(head uintptr) uintptr {
	var prev uintptr
	cur := head
	for cur != 0 {
		n := (*runtimeNode)(unsafe.Pointer(cur))
		next := n.next
		n.next = prev
		prev = cur
		cur = next
	}
	return prev
}
