package cli

import (
	"sync"
	"time"
)

// debouncer runs the last triggered callback once no trigger arrived for
// interval. After Stop no callback starts and Stop waits for a running one.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

// Trigger schedules fn, replacing any callback still pending.
func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.running.Add(1)
	d.timer = time.AfterFunc(d.interval, func() {
		defer d.running.Done()
		fn()
	})
}

// Stop cancels a pending callback and waits for one already running.
func (d *debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.mu.Unlock()

	d.running.Wait()
}
