// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package irqrt provides a lock-free ISR-to-foreground dispatch runtime: a
// LIFO of posted event nodes drained in FIFO order, the single- and
// multi-slot event holders built on top of it, and the Result sum type that
// threads through the rest of this module.
//
// # Roles, Not Interrupts
//
// There is no real interrupt context on a hosted Go runtime. "ISR" and
// "foreground" are two roles a goroutine plays, not two execution modes:
// any number of goroutines may call Event.Post and Event.TrySetData
// concurrently; EventSet.Post takes its slot from a single-consumer free
// list, so one goroutine at a time may call it on a given set; exactly one
// goroutine at a time should call Runtime.RunAvailable, the drain that runs
// every posted callback.
//
// # Quick Start
//
//	rt := irqrt.NewRuntime()
//
//	ev := irqrt.NewEvent(rt, func(v int) {
//	    fmt.Println("got", v)
//	})
//	ev.TrySetData(42)
//	ev.Post()
//
//	rt.RunAvailable() // prints "got 42"
//
// # Event Sets
//
// Event wraps a single reusable node: a second Post while the first is
// still unconsumed silently coalesces. EventSet instead multiplexes N
// nodes behind a free list, so up to N distinct payloads can be pending at
// once; once the free list is empty, Post returns ErrEventSetFull.
//
// # Errors
//
// ErrEventSetFull and ErrEventLockFailed are plain sentinel errors, checked
// with errors.Is. Both are recoverable — the caller decides whether and how
// to retry.
//
// # Result
//
// Result[T, E] carries the success(T)/failure(E) discipline used across this
// module's own error handling. Go disallows method-level type parameters,
// so combinators that introduce a new type parameter (Map, MapErr,
// MapOrElse, AndThen, OrElse) are package-level functions over the
// method-receiver core (IsOk, Unwrap, UnwrapOr, MaybeValue, and so on).
package irqrt
