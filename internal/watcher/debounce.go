package watcher

import (
	"sync"
	"time"
)

// Change is one debounced note event.
type Change struct {
	Path    string
	Removed bool // the note was deleted or renamed away
}

// debouncer collapses bursts of events on the same path into a single
// change, emitted after a quiet period. Editors tend to fire several
// writes per save.
type debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending map[string]Change
	timer   *time.Timer
	out     chan []Change
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]Change),
		out:     make(chan []Change, 16),
	}
}

func (d *debouncer) add(c Change) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[c.Path] = c

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}

	batch := make([]Change, 0, len(d.pending))
	for _, c := range d.pending {
		batch = append(batch, c)
	}
	d.pending = make(map[string]Change)
	d.out <- batch
}
