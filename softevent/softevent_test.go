// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package softevent_test

import (
	"testing"

	"code.hybscloud.com/irqrt"
	"code.hybscloud.com/irqrt/softevent"
)

func TestListPushPopFIFO(t *testing.T) {
	var ls softevent.List
	a, b, c := &softevent.Listener{}, &softevent.Listener{}, &softevent.Listener{}
	ls.Push(a)
	ls.Push(b)
	ls.Push(c)

	if got := ls.Pop(); got != a {
		t.Fatalf("Pop: got %p, want a", got)
	}
	if got := ls.Pop(); got != b {
		t.Fatalf("Pop: got %p, want b", got)
	}
	if got := ls.Pop(); got != c {
		t.Fatalf("Pop: got %p, want c", got)
	}
	if got := ls.Pop(); got != nil {
		t.Fatalf("Pop on empty: got %p, want nil", got)
	}
}

func TestListPushReunlinksFromSameList(t *testing.T) {
	var ls softevent.List
	a, b := &softevent.Listener{}, &softevent.Listener{}
	ls.Push(a)
	ls.Push(b)
	ls.Push(a) // re-push a: should move to the back, not duplicate

	if got := ls.Pop(); got != b {
		t.Fatalf("Pop: got %p, want b", got)
	}
	if got := ls.Pop(); got != a {
		t.Fatalf("Pop: got %p, want a", got)
	}
	if got := ls.Pop(); got != nil {
		t.Fatalf("Pop on empty: got %p, want nil", got)
	}
}

func TestListMoveAllToPreservesOrder(t *testing.T) {
	var src, dst softevent.List
	a, b := &softevent.Listener{}, &softevent.Listener{}
	src.Push(a)
	src.Push(b)

	src.MoveAllTo(&dst)

	if got := src.Pop(); got != nil {
		t.Fatalf("src after move: got %p, want nil (empty)", got)
	}
	if got := dst.Pop(); got != a {
		t.Fatalf("dst: got %p, want a", got)
	}
	if got := dst.Pop(); got != b {
		t.Fatalf("dst: got %p, want b", got)
	}
}

func TestServiceAddListenerPostsWakeupOnce(t *testing.T) {
	rt := irqrt.NewRuntime()
	wakeups := 0
	s := softevent.NewService(rt, func() { wakeups++ })

	s.AddListener(&softevent.Listener{})
	s.AddListener(&softevent.Listener{})
	rt.RunAvailable()

	if wakeups != 1 {
		t.Fatalf("wakeups: got %d, want 1", wakeups)
	}
}

func TestServiceNotifyActiveSplitsOnPredicate(t *testing.T) {
	rt := irqrt.NewRuntime()
	s := softevent.NewService(rt, func() {})

	var notified []string
	makeListener := func(name string) *softevent.Listener {
		l := &softevent.Listener{}
		l.Notify = func() { notified = append(notified, name) }
		return l
	}

	ready := makeListener("ready")
	notReady := makeListener("not-ready")

	// Stage both through pending -> active via PromotePending(always true),
	// matching how Task would drive this service.
	s.AddListener(ready)
	s.AddListener(notReady)
	s.PromotePending(func(*softevent.Listener) bool { return true })

	s.NotifyActive(func(l *softevent.Listener) bool { return l == ready })

	if len(notified) != 1 || notified[0] != "ready" {
		t.Fatalf("notified: got %v, want [ready]", notified)
	}

	// notReady must still be active: a second pass that always matches
	// should notify it.
	s.NotifyActive(func(*softevent.Listener) bool { return true })
	if len(notified) != 2 || notified[1] != "not-ready" {
		t.Fatalf("notified after second pass: got %v, want [ready not-ready]", notified)
	}
}

func TestServicePromotePendingRetainsNonMatching(t *testing.T) {
	rt := irqrt.NewRuntime()
	s := softevent.NewService(rt, func() {})

	var notified []string
	stay := &softevent.Listener{Notify: func() { notified = append(notified, "stay") }}
	go_ := &softevent.Listener{Notify: func() { notified = append(notified, "go") }}

	s.AddListener(stay)
	s.AddListener(go_)

	// Only promote go_.
	s.PromotePending(func(l *softevent.Listener) bool { return l == go_ })
	s.NotifyActive(func(*softevent.Listener) bool { return true })

	if len(notified) != 1 || notified[0] != "go" {
		t.Fatalf("notified: got %v, want [go]", notified)
	}

	// stay is still pending; promote it now.
	s.PromotePending(func(*softevent.Listener) bool { return true })
	s.NotifyActive(func(*softevent.Listener) bool { return true })

	if len(notified) != 2 || notified[1] != "stay" {
		t.Fatalf("notified after promoting stay: got %v, want [go stay]", notified)
	}
}

func TestServiceReentrantAddListenerDuringNotifySuppressesWakeup(t *testing.T) {
	rt := irqrt.NewRuntime()
	wakeups := 0
	var s *softevent.Service
	s = softevent.NewService(rt, func() { wakeups++ })

	first := &softevent.Listener{}
	var second *softevent.Listener
	first.Notify = func() {
		second = &softevent.Listener{}
		s.AddListener(second) // reentrant add during notification
	}

	s.AddListener(first)
	s.PromotePending(func(*softevent.Listener) bool { return true })
	rt.RunAvailable() // consumes the wakeup posted by the first AddListener

	s.NotifyActive(func(*softevent.Listener) bool { return true })
	rt.RunAvailable() // would run a second wakeup had the reentrant add posted one

	if wakeups != 1 {
		t.Fatalf("wakeups: got %d, want 1 (reentrant add must not re-post)", wakeups)
	}
	if second == nil {
		t.Fatal("reentrant listener was never created")
	}
}
