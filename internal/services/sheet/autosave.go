package sheet

import (
	"sync"
	"time"
)

// autosaver debounces persistence: every schedule call restarts the quiet
// interval, so a burst of edits collapses to one write at quiescence.
// Last-write-wins; intermediate states are never persisted.
type autosaver struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	fire     func()
}

func newAutosaver(interval time.Duration, fire func()) *autosaver {
	return &autosaver{
		interval: interval,
		fire:     fire,
	}
}

// Schedule arms the timer, cancelling any pending write
func (a *autosaver) Schedule() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.interval, func() {
		a.mu.Lock()
		a.timer = nil
		a.mu.Unlock()
		a.fire()
	})
}

// Cancel stops any pending write without firing it
func (a *autosaver) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Pending reports whether a write is scheduled
func (a *autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}
