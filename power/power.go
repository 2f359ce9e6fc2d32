// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package power tracks which power modes the rest of the process currently
// requires, so a platform's idle loop can pick the deepest sleep mode still
// compatible with every outstanding request.
package power

import "code.hybscloud.com/atomix"

// Mode identifies one power mode a caller can request a minimum of.
type Mode int

const (
	Mode1 Mode = iota
	Mode2
	Mode3
	Mode4
	modeCount
)

// DefaultMode is returned by Requested when nothing currently holds a
// request.
const DefaultMode = Mode2

var requests [modeCount]atomix.Int32

// Handle is an outstanding request for a minimum power mode. Call Release
// exactly once when the request no longer applies; Release is idempotent
// against repeated calls, standing in for the C++ destructor's single
// decrement.
type Handle struct {
	mode     Mode
	released atomix.Bool
}

// Request increments mode's refcount and returns a Handle that must be
// released once the request no longer holds.
func Request(mode Mode) *Handle {
	requests[mode].Add(1)
	return &Handle{mode: mode}
}

// Mode reports which power mode this handle is holding a request for.
func (h *Handle) Mode() Mode { return h.mode }

// Release decrements the refcount for h's mode. Safe to call more than
// once; only the first call has any effect.
func (h *Handle) Release() {
	if h.released.CompareAndSwapAcqRel(false, true) {
		requests[h.mode].Add(-1)
	}
}

// Reassign moves h's request from its current mode to mode, decrementing
// the old mode's refcount and incrementing the new one. A no-op if mode
// equals h's current mode. Matches power_request's copy-assignment
// upgrade/downgrade behavior.
func (h *Handle) Reassign(mode Mode) {
	if h.mode == mode {
		return
	}
	requests[h.mode].Add(-1)
	h.mode = mode
	requests[mode].Add(1)
}

// Requested returns the lowest-indexed mode with at least one outstanding
// request, or DefaultMode if none is held.
func Requested() Mode {
	for m := Mode(0); m < modeCount; m++ {
		if requests[m].Load() > 0 {
			return m
		}
	}
	return DefaultMode
}
