package listing

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window before a search is sent
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces bursts of Schedule calls into one callback. It owns a
// single timer slot; scheduling replaces whatever was pending.
//
// Each Schedule call gets a generation number. The callback receives it so the
// event loop can check Current before acting: a timer may fire while a newer
// Schedule is already on its way.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	gen    uint64
	closed bool
}

// NewDebouncer creates a debouncer with a fixed delay
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiescence window
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels any pending callback and arms a new one. Returns the new
// generation, or 0 once the debouncer is stopped.
func (d *Debouncer) Schedule(fn func(gen uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		live := !d.closed && d.gen == gen
		if live {
			d.timer = nil
		}
		d.mu.Unlock()

		if live {
			fn(gen)
		}
	})
	return gen
}

// Current reports whether gen is the latest generation and the debouncer is live
func (d *Debouncer) Current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed && gen != 0 && gen == d.gen
}

// Pending reports whether a callback is armed and has not fired yet
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending callback. Later Schedule calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
