// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package timer multiplexes many logical deadline timers onto a single
// hardware one-shot clock, using softevent's active/pending scheduler.
package timer

import (
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/irqrt"
	"code.hybscloud.com/irqrt/queue"
	"code.hybscloud.com/irqrt/softevent"
)

// Clock is the one-shot facade a Task multiplexes logical timers onto.
// Start arms a one-shot: fn must be called once after timeoutMs
// milliseconds, unless Stop returns first. Stop cancels the pending arm
// and returns the number of milliseconds elapsed since Start, or 0 if
// Start was never called.
type Clock interface {
	Start(fn func(), timeoutMs int64)
	Stop() (elapsedMs int64)
}

// Timer is a single logical deadline timer, owned by exactly one Task.
// The zero value is not usable; construct with NewTimer.
type Timer struct {
	node         softevent.Listener
	untilTimeout time.Duration
	callback     func(*Timer)
}

// NewTimer constructs a Timer with no handler and no pending wait.
func NewTimer() *Timer {
	t := &Timer{}
	t.node.Value = t
	t.node.Notify = func() {
		if t.callback != nil {
			t.callback(t)
		}
	}
	return t
}

// SetHandler changes the callback without arming a wait.
func (t *Timer) SetHandler(cb func(*Timer)) { t.callback = cb }

// Cancel detaches the timer from its Task without running its callback.
// The caller must be on the Task's consumer context, or a context
// synchronized with it — matching the shared-resource policy the rest of
// this package follows for anything touching the active/pending lists
// directly (see softevent.Service's doc comment).
func (t *Timer) Cancel() { t.node.Unlink() }

// armRequest is what AsyncWait stages through a Task's queue so it is safe
// to call from any goroutine, not just the Task's consumer context.
type armRequest struct {
	timer   *Timer
	timeout time.Duration
}

// Task drives a set of Timers: it owns the soft-event service, the
// hardware clock facade, and a staging queue so AsyncWait is producer-safe
// without touching the service's lists directly from an arbitrary context.
type Task struct {
	clk Clock
	svc *softevent.Service
	arm *queue.MPSC[armRequest]
}

// NewTask constructs a Task bound to rt and driven by clk. Unlike the
// original's process-wide timer_task::init singleton, Task is an explicit
// value: nothing about multiplexing timers onto one clock requires
// process-wide scope, and an explicit value is easier to test (see
// DESIGN.md).
func NewTask(rt *irqrt.Runtime, clk Clock) *Task {
	tk := &Task{clk: clk, arm: queue.NewMPSC[armRequest](64)}
	tk.svc = softevent.NewService(rt, tk.onWakeup)
	return tk
}

// AsyncWait arms t to fire cb after timeout, clamping a zero timeout up to
// one millisecond. Safe to call from any goroutine; the request is staged
// and applied on the Task's next drain. The same timer may be re-armed
// from its own callback.
func (tk *Task) AsyncWait(t *Timer, cb func(*Timer), timeout time.Duration) {
	t.SetHandler(cb)
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	req := armRequest{timer: t, timeout: timeout}
	backoff := iox.Backoff{}
	for tk.arm.Enqueue(&req) != nil {
		// Staging queue is bounded; a full queue means the consumer is
		// behind. There is no backpressure signal to return to the
		// caller here, so retry with backoff instead.
		backoff.Wait()
	}
	// Wakeup only touches the wakeup event's own CAS-guarded posted flag,
	// so it is safe to call from any goroutine even though the pending
	// list itself is not touched until the drain this triggers runs.
	tk.svc.Wakeup()
}

// onWakeup is the soft-event service's wakeup callback. It runs entirely
// on the consumer context: first it drains every staged arm request, then
// runs a two-pass drain over active and pending timers — decrement and
// notify expired timers, then unconditionally promote every pending timer
// to active at its original deadline (see DESIGN.md for why that second
// pass is intentionally not elapsed-aware).
func (tk *Task) onWakeup() {
	elapsed := time.Duration(tk.clk.Stop()) * time.Millisecond

	// Runs on the single foreground goroutine, so each call drains the
	// staging queue to empty: iox.IsWouldBlock is the only stopping
	// condition, never a transient one here. Called twice below — once
	// up front, once again right after NotifyActive — so a timer rearmed
	// from its own expiry callback is promoted to active in this same
	// drain rather than waiting for one more external wakeup.
	drainArm := func() {
		for {
			req, err := tk.arm.Dequeue()
			if iox.IsWouldBlock(err) {
				break
			}
			req.timer.untilTimeout = req.timeout
			tk.svc.PushPending(&req.timer.node)
		}
	}
	drainArm()

	var next time.Duration
	hasNext := false
	maybeUpdateNext := func(d time.Duration) {
		if d == 0 {
			return
		}
		if !hasNext || d < next {
			next, hasNext = d, true
		}
	}

	tk.svc.NotifyActive(func(l *softevent.Listener) bool {
		t := l.Value.(*Timer)
		if elapsed > t.untilTimeout {
			t.untilTimeout = 0
		} else {
			t.untilTimeout -= elapsed
		}
		maybeUpdateNext(t.untilTimeout)
		return t.untilTimeout == 0
	})

	drainArm()

	// Every pending listener promotes unconditionally, keeping its
	// originally supplied deadline rather than accounting for elapsed:
	// it missed this tick entirely (see DESIGN.md).
	tk.svc.PromotePending(func(l *softevent.Listener) bool {
		t := l.Value.(*Timer)
		maybeUpdateNext(t.untilTimeout)
		return true
	})

	if hasNext {
		tk.clk.Start(tk.onClockFired, next.Milliseconds())
	}
}

func (tk *Task) onClockFired() {
	tk.svc.Wakeup()
}
