package main

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joshuapare/memkit/mem"
)

// workload churns the shim from background goroutines so the dashboard
// has live traffic to display. Worker count and pause state change at
// runtime from key handlers.
type workload struct {
	max    int
	paused atomic.Bool

	mu    sync.Mutex
	stops []chan struct{}
	next  uint64
	wg    sync.WaitGroup
}

func newWorkload(max, workers int) *workload {
	w := &workload{max: max}
	w.setWorkers(workers)
	return w
}

// workers returns the current worker count.
func (w *workload) workers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.stops)
}

// setWorkers grows or shrinks the worker pool to n goroutines.
func (w *workload) setWorkers(n int) {
	if n < 0 {
		n = 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.stops) < n {
		stop := make(chan struct{})
		w.stops = append(w.stops, stop)
		w.next++
		w.wg.Add(1)
		go w.run(w.next, stop)
	}
	for len(w.stops) > n {
		last := len(w.stops) - 1
		close(w.stops[last])
		w.stops = w.stops[:last]
	}
}

// setPaused suspends or resumes all workers.
func (w *workload) setPaused(p bool) { w.paused.Store(p) }

// stop terminates all workers and waits for them to drain.
func (w *workload) stop() {
	w.setWorkers(0)
	w.wg.Wait()
}

func (w *workload) run(id uint64, stop <-chan struct{}) {
	defer w.wg.Done()
	r := rand.New(rand.NewPCG(id, id))
	for {
		select {
		case <-stop:
			return
		default:
		}
		if w.paused.Load() {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		w.churn(r)
		time.Sleep(time.Duration(1+r.IntN(4)) * time.Millisecond)
	}
}

// churn allocates a small batch, touches it, and frees it. Under
// contention some requests fail, and those captured failures are
// exactly the traffic the failure counters exist to show.
func (w *workload) churn(r *rand.Rand) {
	batch := 1 + r.IntN(3)
	_ = mem.TryCatch(func() error {
		blocks := make([][]byte, 0, batch)
		defer func() {
			for _, b := range blocks {
				_ = mem.Free(b, mem.Layout{Size: len(b), Align: 8})
			}
		}()
		for i := 0; i < batch; i++ {
			size := 1 + r.IntN(w.max)
			b := mem.MustAlloc(mem.Layout{Size: size, Align: 8})
			blocks = append(blocks, b)
			b[0] = 1
			b[len(b)-1] = 1
		}
		return nil
	})
}
