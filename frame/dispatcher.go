// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/irqrt/queue"
)

// Frame is one successfully decoded payload, handed from the Dispatcher's
// feeder to a worker.
type Frame struct {
	Payload []byte
}

// ErrorHandler is called for each frame-level error surfaced while feeding
// bytes into a Dispatcher: a bad CRC, bad framing, or bad byte-stuffing.
type ErrorHandler func(err error)

// Dispatcher wires a Decoder to a fixed pool of worker goroutines. One
// feeder goroutine calls Write with raw bytes as they arrive; completed
// frames land on a shared backlog queue, and a router goroutine round-robins
// them out to each worker's own inbox, so a slow worker only ever backs up
// its own queue rather than head-of-line blocking the others.
type Dispatcher struct {
	dec     *Decoder
	backlog *queue.SPMC[Frame]
	inboxes []*queue.SPSC[Frame]
	handler func(Frame)
	onError ErrorHandler
	wg      sync.WaitGroup
	done    chan struct{}

	buf []byte
}

// NewDispatcher constructs a Dispatcher with the given worker count and
// queue capacity, decoding with opts. handler runs on a worker goroutine
// for every successfully decoded frame; onError (if non-nil) runs on the
// feeder goroutine for every frame-level error.
func NewDispatcher(workers, queueCapacity int, handler func(Frame), onError ErrorHandler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		dec:     NewDecoder(opts...),
		backlog: queue.NewSPMC[Frame](queueCapacity),
		inboxes: make([]*queue.SPSC[Frame], workers),
		handler: handler,
		onError: onError,
		done:    make(chan struct{}),
	}
	for i := range d.inboxes {
		d.inboxes[i] = queue.NewSPSC[Frame](queueCapacity)
	}

	d.wg.Add(1 + workers)
	go d.route()
	for _, inbox := range d.inboxes {
		go d.work(inbox)
	}
	return d
}

// route is the Dispatcher's single backlog consumer: it drains completed
// frames off the shared SPMC queue and round-robins each one onto a
// worker's own SPSC inbox.
func (d *Dispatcher) route() {
	defer d.wg.Done()
	backoff := iox.Backoff{}
	next := 0
	for {
		frame, err := d.backlog.Dequeue()
		if err == nil {
			backoff.Reset()
			inbox := d.inboxes[next]
			next = (next + 1) % len(d.inboxes)
			for inbox.Enqueue(&frame) != nil {
				backoff.Wait()
			}
			continue
		}
		select {
		case <-d.done:
			return
		default:
		}
		backoff.Wait()
	}
}

func (d *Dispatcher) work(inbox *queue.SPSC[Frame]) {
	defer d.wg.Done()
	backoff := iox.Backoff{}
	for {
		frame, err := inbox.Dequeue()
		if err == nil {
			backoff.Reset()
			d.handler(frame)
			continue
		}
		select {
		case <-d.done:
			return
		default:
		}
		backoff.Wait()
	}
}

// Write feeds raw bytes into the underlying Decoder. Must be called only
// from the feeder goroutine; the Dispatcher has exactly one producer.
// Completed frames are enqueued onto the backlog; frame-level errors are
// reported to onError rather than stopping the feed.
func (d *Dispatcher) Write(data []byte) {
	backoff := iox.Backoff{}
	for _, fb := range d.dec.WriteBytes(data) {
		switch {
		case fb.Err != nil:
			if d.onError != nil {
				d.onError(fb.Err)
			}
			d.buf = d.buf[:0]
		case fb.HasByte:
			d.buf = append(d.buf, fb.Byte)
		case fb.Done:
			payload := append([]byte(nil), d.buf...)
			d.buf = d.buf[:0]
			frame := Frame{Payload: payload}
			for d.backlog.Enqueue(&frame) != nil {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}
}

// Close stops the router and every worker once their current dequeue
// attempt gives up, and waits for all of them to return. Outstanding queued
// frames are dropped.
func (d *Dispatcher) Close() {
	close(d.done)
	d.wg.Wait()
}
