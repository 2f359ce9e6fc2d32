// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt_test

import (
	"testing"

	"code.hybscloud.com/irqrt"
)

// TestEventSecondSetOverwritesBeforePost confirms TrySetData followed by a
// second TrySetData before Post overwrites the pending payload: only one
// Post is in flight, so only the latest value survives to the callback.
func TestEventSecondSetOverwritesBeforePost(t *testing.T) {
	rt := irqrt.NewRuntime()
	var got int
	e := irqrt.NewEvent(rt, func(v int) { got = v })

	if err := e.TrySetData(1); err != nil {
		t.Fatalf("TrySetData(1): %v", err)
	}
	if err := e.TrySetData(2); err != nil {
		t.Fatalf("TrySetData(2): %v", err)
	}
	e.Post()
	rt.RunAvailable()

	if got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

// TestEventPostWithoutDataRunsZeroValue covers the degenerate path where a
// publisher posts without ever calling TrySetData: the callback still runs,
// receiving the zero value.
func TestEventPostWithoutDataRunsZeroValue(t *testing.T) {
	rt := irqrt.NewRuntime()
	ran := false
	var got string
	e := irqrt.NewEvent(rt, func(v string) {
		ran = true
		got = v
	})

	e.Post()
	rt.RunAvailable()

	if !ran {
		t.Fatal("callback did not run")
	}
	if got != "" {
		t.Fatalf("got %q, want zero value", got)
	}
}

// TestEventCallbackMayRePostWithNewData confirms a callback that re-posts
// its own event with fresh data is picked up cleanly by the next drain.
func TestEventCallbackMayRePostWithNewData(t *testing.T) {
	rt := irqrt.NewRuntime()
	var e *irqrt.Event[int]
	var log []int
	e = irqrt.NewEvent(rt, func(v int) {
		log = append(log, v)
		if v < 3 {
			if err := e.TrySetData(v + 1); err != nil {
				t.Fatalf("TrySetData(%d): %v", v+1, err)
			}
			e.Post()
		}
	})

	if err := e.TrySetData(1); err != nil {
		t.Fatalf("TrySetData(1): %v", err)
	}
	e.Post()

	for i := 0; i < 3; i++ {
		rt.RunAvailable()
	}

	want := []int{1, 2, 3}
	if len(log) != len(want) {
		t.Fatalf("log: got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log: got %v, want %v", log, want)
		}
	}
}
