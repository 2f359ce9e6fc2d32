// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command irqdemo is a runnable walkthrough of the whole module: goroutines
// standing in for interrupt handlers post events and timer deadlines onto a
// Runtime, a single foreground loop drains them, and the resulting work is
// handed off to a worker pool and a frame dispatcher. It is the live
// counterpart to the package-level Example tests, promoted to a main because
// this system's story is an end-to-end one.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/irqrt"
	"code.hybscloud.com/irqrt/fault"
	"code.hybscloud.com/irqrt/frame"
	"code.hybscloud.com/irqrt/power"
	"code.hybscloud.com/irqrt/queue"
	"code.hybscloud.com/irqrt/timer"
)

func main() {
	duration := flag.Duration("duration", 3*time.Second, "how long to run the demo before shutting down")
	flag.Parse()

	fault.SetHandler(func(reason any) {
		logger().Error("unrecoverable fault", "reason", reason)
	})

	rt := irqrt.NewRuntime()

	// Hold the deepest mode that still tolerates the demo's periodic I/O for
	// the whole run; a platform idle loop would read power.Requested() to
	// pick an actual sleep state.
	powerHandle := power.Request(power.Mode1)
	defer powerHandle.Release()

	jobs, stopWorkers, workerWG := startWorkerPool(4)
	submit := func(job func()) {
		backoff := iox.Backoff{}
		for jobs.Enqueue(&job) != nil {
			backoff.Wait()
		}
	}

	var samples atomix.Int64
	sensor := irqrt.NewEvent[uint32](rt, func(v uint32) {
		n := samples.Add(1)
		submit(func() { logger().Info("sensor sample", "seq", n, "value", v) })
	})
	stopSensor := make(chan struct{})
	var isrWG sync.WaitGroup
	isrWG.Add(1)
	go runSensorISR(sensor, stopSensor, &isrWG)

	var setItems atomix.Int64
	events := irqrt.NewEventSet[string](rt, 4, func(v string) {
		n := setItems.Add(1)
		submit(func() { logger().Info("event set item", "seq", n, "payload", v) })
	})
	stopEvents := make(chan struct{})
	var eventsMu sync.Mutex
	for id := range 3 {
		isrWG.Add(1)
		go runEventSetISR(id, events, &eventsMu, stopEvents, &isrWG)
	}

	clk := &wallClock{}
	tk := timer.NewTask(rt, clk)
	heartbeat := timer.NewTimer()
	var beats atomix.Int32
	var armHeartbeat func()
	armHeartbeat = func() {
		tk.AsyncWait(heartbeat, func(*timer.Timer) {
			n := beats.Add(1)
			submit(func() { logger().Info("heartbeat", "tick", n) })
			armHeartbeat()
		}, 400*time.Millisecond)
	}
	armHeartbeat()

	disp := frame.NewDispatcher(2, 64, func(f frame.Frame) {
		submit(func() { logger().Info("frame decoded", "payload", string(f.Payload)) })
	}, func(err error) {
		logger().Warn("frame decode error", "err", err)
	})
	for _, payload := range []string{"hello", "irqrt"} {
		disp.Write(encodeFrame([]byte(payload)))
	}

	logger().Info("demo running", "duration", duration.String())
	deadline := time.Now().Add(*duration)
	drainBackoff := iox.Backoff{}
	for time.Now().Before(deadline) {
		rt.RunAvailable()
		drainBackoff.Wait()
	}

	close(stopSensor)
	close(stopEvents)
	isrWG.Wait()
	heartbeat.Cancel()
	rt.RunAvailable() // pick up whatever the ISR goroutines posted right before they stopped

	disp.Close()
	close(stopWorkers)
	workerWG.Wait()

	logger().Info("demo complete",
		"sensor_samples", samples.Load(),
		"event_set_items", setItems.Load(),
		"heartbeats", beats.Load(),
		"power_mode", power.Requested(),
	)
}

// startWorkerPool wires a queue.MPMC job-submission queue, the pattern
// queue/doc.go names this command as the consumer of: any goroutine may
// submit a job, and any of the pool's workers may pick it up.
func startWorkerPool(numWorkers int) (jobs *queue.MPMC[func()], stop chan struct{}, wg *sync.WaitGroup) {
	jobs = queue.NewMPMC[func()](256)
	stop = make(chan struct{})
	wg = &sync.WaitGroup{}

	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			backoff := iox.Backoff{}
			for {
				job, err := jobs.Dequeue()
				if err == nil {
					backoff.Reset()
					job()
					continue
				}
				select {
				case <-stop:
					return
				default:
				}
				backoff.Wait()
			}
		}()
	}
	return jobs, stop, wg
}

// runSensorISR stands in for a single-source hardware interrupt: its posts
// coalesce onto sensor's one pending slot, same as irq_with_data's producer.
func runSensorISR(sensor *irqrt.Event[uint32], stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	backoff := iox.Backoff{}
	for {
		select {
		case <-stop:
			return
		default:
		}
		if err := sensor.TrySetData(uint32(rand.Int31())); err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		sensor.Post()
		time.Sleep(100 * time.Millisecond)
	}
}

// runEventSetISR stands in for one of several concurrent interrupt sources
// sharing a capacity-limited event set, same as irq_set_with_data's demo.
// EventSet.Post takes one goroutine at a time, so the sources serialize
// their posts through mu.
func runEventSetISR(id int, events *irqrt.EventSet[string], mu *sync.Mutex, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	backoff := iox.Backoff{}
	for i := 0; ; i++ {
		select {
		case <-stop:
			return
		default:
		}
		mu.Lock()
		err := events.Post(fmt.Sprintf("producer-%d-item-%d", id, i))
		mu.Unlock()
		if err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		time.Sleep(150 * time.Millisecond)
	}
}

// encodeFrame wraps payload in a complete STX/ETX frame using the default
// byte-stuffing dialect.
func encodeFrame(payload []byte) []byte {
	var buf []byte
	enc := frame.NewEncoder(func(b byte) { buf = append(buf, b) })
	enc.WriteBytes(payload)
	enc.Finish()
	return buf
}

// wallClock is the demo's stand-in for the hardware one-shot clock timer.Task
// multiplexes onto; Start/Stop are only ever called from the single
// foreground goroutine driving rt.RunAvailable, so no locking is needed.
type wallClock struct {
	timer     *time.Timer
	startedAt time.Time
}

func (c *wallClock) Start(fn func(), timeoutMs int64) {
	c.startedAt = time.Now()
	c.timer = time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, fn)
}

func (c *wallClock) Stop() (elapsedMs int64) {
	if c.timer == nil {
		return 0
	}
	c.timer.Stop()
	return time.Since(c.startedAt).Milliseconds()
}
