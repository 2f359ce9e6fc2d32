// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides bounded FIFO queue implementations used as the
// staging and free-list infrastructure for the irqrt event runtime.
//
// The package offers multiple queue variants optimized for different
// producer/consumer patterns:
//
//   - SPSC: Single-Producer Single-Consumer
//   - MPSC: Multi-Producer Single-Consumer
//   - SPMC: Single-Producer Multi-Consumer
//   - MPMC: Multi-Producer Multi-Consumer
//
// # Quick Start
//
// Construct the variant that matches your producer/consumer pattern directly:
//
//	q := queue.NewSPSC[Event](1024)
//	q := queue.NewMPMC[*Request](4096)
//
// # Basic Usage
//
// All queues share the same interface for enqueueing and dequeueing:
//
//	// Create a queue
//	q := queue.NewMPMC[int](1024)
//
//	// Enqueue (non-blocking)
//	value := 42
//	err := q.Enqueue(&value)
//	if queue.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if queue.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Consumers Within irqrt
//
// This package is not a standalone general-purpose library within this
// module. Its free-list and staging-queue variants back the following
// components:
//
//   - irqrt.EventSet (C5): SPSCIndirect as the slot free list.
//   - timer.Task (C7): MPSC staging the arm requests that arrive from
//     outside the goroutine that owns the timer lists.
//   - frame.Dispatcher: SPMC carrying decoded frames to a single router
//     goroutine, SPSC as each worker's own inbox.
//   - cmd/irqdemo: MPMC as the demo's job submission queue.
//
// # Common Patterns
//
// Each pattern below has a direct consumer elsewhere in this module;
// they are not abstract examples.
//
// Pipeline Stage (SPSC) — used per-worker in frame.Dispatcher, where a
// single fan-out goroutine feeds a single worker goroutine's inbox:
//
//	// Stage 1 → Queue → Stage 2
//	q := queue.NewSPSC[Data](1024)
//
//	go func() { // Producer (Stage 1)
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.Enqueue(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    backoff := iox.Backoff{}
//	    for {
//	        data, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(data)
//	    }
//	}()
//
// Event Aggregation (MPSC) — used by timer.Task to stage arm requests
// from arbitrary caller goroutines into the single goroutine
// that owns the deadline-timer lists:
//
//	// Multiple event sources → Single processor
//	q := queue.NewMPSC[Event](4096)
//
//	// Multiple producers (event sources)
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(sensor)
//	}
//
//	// Single consumer (aggregator)
//	go func() {
//	    for {
//	        ev, err := q.Dequeue()
//	        if err == nil {
//	            aggregate(ev)
//	        }
//	    }
//	}()
//
// Work Distribution (SPMC) — used by frame.Dispatcher to hand decoded
// frames from the single deframer goroutine to its router goroutine, the
// queue's one consumer, which forwards each frame to a worker's SPSC inbox:
//
//	// Single dispatcher → Multiple workers
//	q := queue.NewSPMC[Task](1024)
//
//	// Single producer (dispatcher)
//	go func() {
//	    backoff := iox.Backoff{}
//	    for task := range tasks {
//	        for q.Enqueue(&task) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	// Multiple consumers (workers)
//	for range numWorkers {
//	    go func() {
//	        for {
//	            task, err := q.Dequeue()
//	            if err == nil {
//	                task.Execute()
//	            }
//	        }
//	    }()
//	}
//
// Worker Pool (MPMC) — used by cmd/irqdemo's job submission path, where
// any goroutine may submit work and any worker in the pool may pick it up:
//
//	// Multiple submitters → Multiple workers
//	q := queue.NewMPMC[Job](4096)
//
//	// Workers
//	for range numWorkers {
//	    go func() {
//	        for {
//	            job, err := q.Dequeue()
//	            if err == nil {
//	                job.Run()
//	            }
//	        }
//	    }()
//	}
//
//	// Submit jobs from anywhere
//	func Submit(j Job) error {
//	    return q.Enqueue(&j)
//	}
//
// # Indirect Queues
//
// NewSPSCIndirect passes uintptr values instead of copying T — useful for
// pool indices and other handle-based free lists, such as irqrt.EventSet's
// slot free list.
//
// When to use Indirect:
//
//	// Buffer pool with index-based access
//	pool := make([][]byte, 1024)
//	freeList := queue.NewSPSCIndirect(1024)
//
//	// Initialize free list with buffer indices
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	// Allocate: get index from free list
//	idx, err := freeList.Dequeue()
//	buf := pool[idx]
//
//	// Free: return index to free list
//	freeList.Enqueue(idx)
//
// # Error Handling
//
// Queues return [ErrWouldBlock] when operations cannot proceed. This error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency.
//
//	// Retry loop with backoff
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !queue.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	queue.IsWouldBlock(err)  // true if queue full/empty
//	queue.IsSemantic(err)    // true if control flow signal
//	queue.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Capacity and Length
//
// Capacity rounds up to the next power of 2:
//
//	q := queue.NewMPMC[int](3)     // Actual capacity: 4
//	q := queue.NewMPMC[int](4)     // Actual capacity: 4
//	q := queue.NewMPMC[int](1000)  // Actual capacity: 1024
//	q := queue.NewMPMC[int](1024)  // Actual capacity: 1024
//
// Minimum capacity is 2 (already a power of 2). Panic if capacity < 2.
//
// Length is intentionally not provided because accurate counts in lock-free
// algorithms require expensive cross-core synchronization. Track counts in
// application logic when needed.
//
// # Thread Safety
//
// All queue operations are thread-safe within their access pattern constraints:
//
//   - SPSC: One producer goroutine, one consumer goroutine
//   - MPSC: Multiple producer goroutines, one consumer goroutine
//   - SPMC: One producer goroutine, multiple consumer goroutines
//   - MPMC: Multiple producer and consumer goroutines
//
// Violating these constraints (e.g., multiple producers on SPSC) causes
// undefined behavior including data corruption and races.
//
// # Graceful Shutdown
//
// The FAA-based MPMC queue includes a threshold mechanism to prevent
// livelock. This mechanism may cause Dequeue to return [ErrWouldBlock] even
// when items remain, waiting for producer activity to reset the threshold.
// MPMC exposes [Drainer] to bypass it. MPSC also implements [Drainer], but
// its Dequeue has no threshold, so Drain does not change what it returns;
// SPMC does not implement [Drainer].
//
// For graceful shutdown scenarios where producers have finished but consumers
// need to drain remaining items, use the [Drainer] interface:
//
//	// Producer goroutines finish
//	prodWg.Wait()
//
//	// Signal no more enqueues will occur
//	if d, ok := q.(queue.Drainer); ok {
//	    d.Drain()
//	}
//
//	// Consumers can now drain all remaining items
//	// without threshold blocking
//
// After Drain is called, Dequeue skips threshold checks, allowing consumers
// to fully drain the queue. Drain is a hint — the caller must ensure no
// further Enqueue calls will be made.
//
// SPSC and SPMC do not implement [Drainer]; the type assertion naturally
// handles this case.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// The race detector tracks explicit synchronization primitives (mutex, channels,
// WaitGroup) but cannot observe happens-before relationships established through
// atomic memory orderings (acquire-release semantics).
//
// Lock-free queues use sequence numbers with acquire-release semantics to
// protect non-atomic data fields. These algorithms are correct, but the race
// detector may report false positives because it cannot track synchronization
// provided by atomic operations on separate variables.
//
// For lock-free algorithm correctness verification, use:
//   - Formal verification tools (TLA+, SPIN)
//   - Stress testing without race detector
//   - Memory model analysis
//
// Tests incompatible with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package queue
