// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt

import "errors"

// ErrEventSetFull is returned by EventSet.Post when the free list has no
// spare slot. The caller may retry once a slot has been drained.
var ErrEventSetFull = errors.New("irqrt: event set full")

// ErrEventLockFailed is returned by Event.TrySetData (and, internally, by
// EventSet.Post's second step) when the payload lock is already held. The
// caller may retry.
var ErrEventLockFailed = errors.New("irqrt: failed to set event data")
