// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package softevent provides a two-list (active/pending) intrusive
// scheduler for observers notified from the foreground context rather than
// a hardware interrupt — the substrate deadline timers are built on.
package softevent

import "code.hybscloud.com/irqrt"

// Listener is an intrusive doubly-linked list node, always a member of a
// circular list with a sentinel root. A Listener sits in at most one List
// at a time; Unlink restores it to the detached state and is safe to call
// whether or not it is currently linked, and without knowing which List (if
// any) holds it — in a circular list the neighbors alone carry enough
// information to detach a node correctly.
//
// A Listener must not be copied once linked: a List's internal pointers
// reference the node's address directly, mirroring the borrowed-node model
// of the original intrusive list (see DESIGN.md).
type Listener struct {
	prev, next *Listener
	// Notify is invoked by Service.NotifyActive for every listener whose
	// predicate matched. The listener is detached before Notify runs.
	Notify func()
	// Value lets a caller recover the struct a Listener is embedded or
	// held by, from inside a NotifyActive/PromotePending predicate —
	// the same role container/list.Element.Value plays for list nodes.
	Value any
}

// Linked reports whether l currently sits in a List.
func (l *Listener) Linked() bool { return l.next != nil }

// Unlink detaches l from whichever List holds it. A no-op if l is not
// currently linked.
func (l *Listener) Unlink() {
	if l.next == nil {
		return
	}
	l.prev.next = l.next
	l.next.prev = l.prev
	l.prev, l.next = nil, nil
}

// List is a FIFO of *Listener nodes arranged as a circular list around a
// sentinel root node, so Push/Pop/Unlink never need a separate tail field
// that could go stale when a node moves between lists. The zero value is
// ready to use.
type List struct {
	root Listener
}

func (ls *List) init() {
	if ls.root.next == nil {
		ls.root.next = &ls.root
		ls.root.prev = &ls.root
	}
}

// Empty reports whether the list currently holds no listeners.
func (ls *List) Empty() bool {
	ls.init()
	return ls.root.next == &ls.root
}

// Push appends l to the back of the list, first unlinking it from wherever
// it currently sits.
func (ls *List) Push(l *Listener) {
	ls.init()
	l.Unlink()
	last := ls.root.prev
	l.prev = last
	l.next = &ls.root
	last.next = l
	ls.root.prev = l
}

// Pop removes and returns the front listener, or nil if the list is empty.
func (ls *List) Pop() *Listener {
	ls.init()
	l := ls.root.next
	if l == &ls.root {
		return nil
	}
	l.Unlink()
	return l
}

// MoveAllTo splices every node in ls onto the front of dst, leaving ls
// empty. It matches soft_event_list::move_to_front_of.
func (ls *List) MoveAllTo(dst *List) {
	ls.init()
	dst.init()
	if ls.Empty() {
		return
	}
	first, last := ls.root.next, ls.root.prev
	dstFirst := dst.root.next

	dst.root.next = first
	first.prev = &dst.root
	last.next = dstFirst
	dstFirst.prev = last

	ls.root.next = &ls.root
	ls.root.prev = &ls.root
}

// Service is a scheduler over two Listener lists, active and pending,
// driven by a single void wakeup event. AddListener stages new listeners
// onto pending and posts wakeup unless a notification is already in
// progress; NotifyActive and PromotePending are meant to be called from
// wakeup's callback, on the foreground context only.
type Service struct {
	active, pending List
	// notifying is a plain bool by design: it is read and written only
	// from the consumer context (wakeup's callback, AddListener's
	// reentrant calls during that callback), never concurrently.
	notifying bool
	wakeup    *irqrt.VoidEvent
}

// NewService constructs a Service whose wakeup event runs cb on the
// runtime's foreground drain.
func NewService(rt *irqrt.Runtime, cb func()) *Service {
	s := &Service{}
	s.wakeup = irqrt.NewVoidEvent(rt, cb)
	return s
}

// Wakeup posts the service's wakeup event directly, without touching
// either list. It is the hook an external driver (a hardware clock's
// interrupt callback, in the deadline-timer case) uses to trigger a drain
// on its own schedule rather than in response to a new listener.
func (s *Service) Wakeup() { s.wakeup.Post() }

// PushPending appends l to the pending list without posting the wakeup
// event. For drivers that already guarantee a drain by some other means —
// a timer task that posts its own wakeup once per batch of staged arm
// requests, say — this avoids the redundant self-post AddListener would
// otherwise trigger when called from inside that very drain.
func (s *Service) PushPending(l *Listener) { s.pending.Push(l) }

// AddListener appends l to the pending list. Unless a notification is
// already in progress on this goroutine, it posts the wakeup event so a
// future drain picks l up via PromotePending.
func (s *Service) AddListener(l *Listener) {
	s.pending.Push(l)
	if !s.notifying {
		s.wakeup.Post()
	}
}

// NotifyActive moves every active listener through predicate once: a true
// result detaches and notifies the listener, a false result re-stages it
// onto active for the next pass. Must be called only from the consumer
// context.
func (s *Service) NotifyActive(predicate func(*Listener) bool) {
	var local List
	s.active.MoveAllTo(&local)
	s.notifying = true
	for l := local.Pop(); l != nil; l = local.Pop() {
		if predicate(l) {
			if l.Notify != nil {
				l.Notify()
			}
		} else {
			s.active.Push(l)
		}
	}
	s.notifying = false
}

// PromotePending moves every pending listener through predicate once: a
// true result moves it to active, a false result re-stages it onto
// pending. Must be called only from the consumer context.
func (s *Service) PromotePending(predicate func(*Listener) bool) {
	var local List
	s.pending.MoveAllTo(&local)
	for l := local.Pop(); l != nil; l = local.Pop() {
		if predicate(l) {
			s.active.Push(l)
		} else {
			s.pending.Push(l)
		}
	}
}
