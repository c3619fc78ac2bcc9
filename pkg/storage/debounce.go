package storage

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of key events: of N events for the same key
// arriving within the window, only the latest is emitted, after the window
// has elapsed without another arrival. Editors and atomic renames produce
// several filesystem events per logical write; consumers want one.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

type pendingEvent struct {
	timer *time.Timer
	event KeyEvent
	emit  func(KeyEvent)
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules e for emission after the window. A newer event for the same
// key supersedes the pending one and restarts the window; the older event is
// dropped, never queued for replay.
func (d *debouncer) add(e KeyEvent, emit func(KeyEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[e.Key]; ok {
		p.event = e
		p.emit = emit
		p.timer.Reset(d.window)
		return
	}

	p := &pendingEvent{event: e, emit: emit}
	d.pending[e.Key] = p
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.window, func() {
		d.fire(e.Key)
	})
}

func (d *debouncer) fire(key string) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if !ok {
		return
	}
	defer d.wg.Done()
	p.emit(p.event)
}

// stopAndWait stops accepting new events and waits for in-flight timers to
// complete, up to the given timeout. Pending events that have not fired yet
// are cancelled.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			delete(d.pending, key)
			d.wg.Done()
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
