// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fault installs a process-wide handler invoked before the module's
// own programming-error paths diverge, the same role poly::panic_handler
// plays for the original runtime.
package fault

import "sync/atomic"

var handler atomic.Pointer[func(any)]

// SetHandler installs fn as the process-wide panic handler. SetHandler is
// itself safe to call concurrently with Panic; the most recently installed
// handler wins. Passing nil clears the handler.
func SetHandler(fn func(any)) {
	if fn == nil {
		handler.Store(nil)
		return
	}
	handler.Store(&fn)
}

// Panic invokes the installed handler, if any, with reason, then diverges
// via the runtime's own panic. Unlike poly::panic(), which falls back to
// std::terminate() or an infinite spin when no handler is installed, Go
// already has a divergence mechanism of its own, so Panic always ends by
// calling the builtin panic — the installed handler gets a chance to log,
// flush, or otherwise react first, but cannot prevent the divergence.
func Panic(reason any) {
	if p := handler.Load(); p != nil {
		(*p)(reason)
	}
	panic(reason)
}
