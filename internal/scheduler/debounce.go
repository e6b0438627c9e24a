// Package scheduler holds the cancellable delayed work used by the dashboard.
package scheduler

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer runs only the most recent of a burst of triggered tasks, once
// the delay has passed with no newer trigger.
type Debouncer struct {
	clock clock.Clock
	delay time.Duration

	mu    sync.Mutex
	timer *clock.Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer. A nil clock uses the system clock.
func NewDebouncer(c clock.Clock, delay time.Duration) *Debouncer {
	if c == nil {
		c = clock.New()
	}
	return &Debouncer{clock: c, delay: delay}
}

// Trigger cancels any pending task and schedules f.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen

	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		// a timer may have fired just before a newer Trigger stopped it
		if current {
			f()
		}
	})
}

// Stop cancels the pending task, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a task is scheduled and has not run yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
